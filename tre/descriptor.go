package tre

import (
	"github.com/nitro-go/nitro/field"
)

// ElementKind discriminates the element variants a Descriptor walks.
type ElementKind uint8

const (
	KindField ElementKind = iota
	KindLoopStart
	KindLoopEnd
	KindIfStart
	KindIfEnd
	KindEnd
)

// LengthKind discriminates how a field element's byte width is
// determined.
type LengthKind uint8

const (
	// LengthLiteral: Length holds the literal byte width.
	LengthLiteral LengthKind = iota
	// LengthConditional: width is read from a previously parsed field
	// named by LengthRef.
	LengthConditional
	// LengthFunction: width is computed by LengthFunc given the fields
	// already parsed.
	LengthFunction
)

// LengthFunc computes a field's byte width from the fields already parsed
// in the current TRE instance, by dotted path.
type LengthFunc func(parsed FieldLookup) (int, error)

// FieldLookup is the read-only view the engine gives to LengthFunc,
// CountFunc, and condition relations: lookups by dotted field-path.
type FieldLookup interface {
	Field(dottedPath string) (*field.Field, bool)
}

// CountKind discriminates how a loop's iteration count is determined.
type CountKind uint8

const (
	// CountLiteral: Count holds the literal iteration count.
	CountLiteral CountKind = iota
	// CountFieldRef: iteration count is the integer value of a
	// previously parsed field, named by CountRef.
	CountFieldRef
	// CountFunction: iteration count is computed by CountFunc.
	CountFunction
	// CountExpr: iteration count is "<field> + <literal>" or
	// "<field> * <field>", per CountExprOp/CountRef/CountRef2/Count.
	CountExpr
)

// CountFunc computes a loop's iteration count from the fields already
// parsed.
type CountFunc func(parsed FieldLookup) (int, error)

// ExprOp is the operator in a CountExpr count specifier.
type ExprOp uint8

const (
	ExprAdd ExprOp = iota
	ExprMul
)

// Relation is the comparison operator in an if-start element.
type Relation uint8

const (
	RelEq Relation = iota
	RelNe
	RelLt
	RelGt
	RelMask // '&' mask-test: (field & Literal) != 0
)

// Element is one node of a Descriptor: a typed field, a loop/if
// start/end marker, or the terminal end marker.
type Element struct {
	Kind ElementKind

	// Field element data.
	Category   field.Category
	LongName   string
	ShortName  string // dotted-path component name
	LengthKind LengthKind
	Length     int // literal width, or (for LengthFunction) ignored
	LengthRef  string
	LengthFunc LengthFunc
	Default    string
	Validator  func(*field.Field) error

	// Loop-start element data.
	CountKind  CountKind
	Count      int
	CountRef   string
	CountRef2  string
	CountFunc  CountFunc
	CountExprOp ExprOp

	// If-start element data.
	CondFieldRef string
	CondRel      Relation
	CondLiteral  string
}

// FieldElement builds a literal-length typed field element.
func FieldElement(shortName, longName string, category field.Category, length int) Element {
	return Element{Kind: KindField, ShortName: shortName, LongName: longName, Category: category, LengthKind: LengthLiteral, Length: length}
}

// ConditionalLengthField builds a field element whose width is read from
// a previously parsed field.
func ConditionalLengthField(shortName, longName string, category field.Category, lengthRef string) Element {
	return Element{Kind: KindField, ShortName: shortName, LongName: longName, Category: category, LengthKind: LengthConditional, LengthRef: lengthRef}
}

// LoopStart builds a literal-count loop-start element. name becomes the
// loop-index path component ("name[iteration]") used to build nested
// dotted field names.
func LoopStart(name string, count int) Element {
	return Element{Kind: KindLoopStart, ShortName: name, CountKind: CountLiteral, Count: count}
}

// LoopStartFieldRef builds a loop-start element whose count is a
// previously parsed field's value.
func LoopStartFieldRef(name, ref string) Element {
	return Element{Kind: KindLoopStart, ShortName: name, CountKind: CountFieldRef, CountRef: ref}
}

// LoopStartExpr builds a loop-start element whose count is the arithmetic
// expression "<ref> + literal" (op=ExprAdd, Count=literal) or
// "<ref> * <ref2>" (op=ExprMul).
func LoopStartExpr(name, ref string, op ExprOp, literalOrRef2 any) Element {
	el := Element{Kind: KindLoopStart, ShortName: name, CountKind: CountExpr, CountRef: ref, CountExprOp: op}
	switch v := literalOrRef2.(type) {
	case int:
		el.Count = v
	case string:
		el.CountRef2 = v
	}

	return el
}

// LoopStartFunc builds a loop-start element whose count is computed by fn.
func LoopStartFunc(name string, fn CountFunc) Element {
	return Element{Kind: KindLoopStart, ShortName: name, CountKind: CountFunction, CountFunc: fn}
}

// LoopEnd closes the innermost open loop frame.
func LoopEnd() Element { return Element{Kind: KindLoopEnd} }

// IfStart builds a conditional-start element.
func IfStart(fieldRef string, rel Relation, literal string) Element {
	return Element{Kind: KindIfStart, CondFieldRef: fieldRef, CondRel: rel, CondLiteral: literal}
}

// IfEnd closes the innermost open conditional frame.
func IfEnd() Element { return Element{Kind: KindIfEnd} }

// End marks the terminal element of a Descriptor.
func End() Element { return Element{Kind: KindEnd} }

// Descriptor is the ordered element list a Registry resolves for a TRE
// tag+length.
type Descriptor []Element

// DescriptorSet pairs a Descriptor with the on-the-wire payload length
// it matches. ExpectedLength is
// ignored when Wildcard is true (the NO_LENGTH fallback, ordered last).
type DescriptorSet struct {
	Name           string
	ExpectedLength int
	Wildcard       bool
	Descriptor     Descriptor
}
