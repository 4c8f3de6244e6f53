package tre

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/field"
)

type loopFrame struct {
	name      string
	iteration int
	count     int
	bodyStart int
}

// Parse walks desc against data (the TRE's raw payload, excluding the
// 11-byte tag+length prefix) and returns a populated Instance.
func Parse(tag string, desc Descriptor, data []byte) (*Instance, error) {
	inst := NewInstance(tag)

	var stack []loopFrame

	cursor := 0
	i := 0

	for i < len(desc) {
		el := desc[i]

		switch el.Kind {
		case KindEnd:
			i++

		case KindField:
			length, err := resolveLength(el, inst)
			if err != nil {
				return nil, fmt.Errorf("tre: %s: resolving length of %s: %w", tag, el.ShortName, err)
			}

			if cursor+length > len(data) {
				return nil, fmt.Errorf("tre: %s: field %s needs %d bytes at offset %d, payload is %d: %w", tag, el.ShortName, length, cursor, len(data), errs.ErrParsing)
			}

			f := field.New(el.Category, length)
			if err := f.SetRaw(data[cursor : cursor+length]); err != nil {
				return nil, fmt.Errorf("tre: %s: field %s: %w", tag, el.ShortName, err)
			}

			if el.Validator != nil {
				if err := el.Validator(f); err != nil {
					return nil, fmt.Errorf("tre: %s: field %s failed validation: %w", tag, el.ShortName, err)
				}
			}

			inst.Set(dottedName(stack, el.ShortName), f)
			cursor += length
			i++

		case KindLoopStart:
			count, err := resolveCount(el, inst)
			if err != nil {
				return nil, fmt.Errorf("tre: %s: resolving loop count for %s: %w", tag, el.ShortName, err)
			}

			if count <= 0 {
				end, err := matchingEnd(desc, i+1, KindLoopStart, KindLoopEnd)
				if err != nil {
					return nil, err
				}

				i = end + 1

				continue
			}

			stack = append(stack, loopFrame{name: el.ShortName, iteration: 0, count: count, bodyStart: i + 1})
			i++

		case KindLoopEnd:
			if len(stack) == 0 {
				return nil, fmt.Errorf("tre: %s: loop-end with no open loop: %w", tag, errs.ErrParsing)
			}

			top := &stack[len(stack)-1]
			top.iteration++

			if top.iteration < top.count {
				i = top.bodyStart
			} else {
				stack = stack[:len(stack)-1]
				i++
			}

		case KindIfStart:
			ok, err := evalCondition(el, inst)
			if err != nil {
				return nil, fmt.Errorf("tre: %s: evaluating condition: %w", tag, err)
			}

			if ok {
				i++
			} else {
				end, err := matchingEnd(desc, i+1, KindIfStart, KindIfEnd)
				if err != nil {
					return nil, err
				}

				i = end + 1
			}

		case KindIfEnd:
			i++

		default:
			return nil, fmt.Errorf("tre: %s: unknown element kind %d: %w", tag, el.Kind, errs.ErrParsing)
		}
	}

	inst.Length = cursor

	return inst, nil
}

// Encode re-walks desc against a populated Instance, emitting bytes,
// the inverse of Parse. Missing required fields fail
// errs.ErrMissingRequired.
func Encode(tag string, desc Descriptor, inst *Instance) ([]byte, error) {
	var out []byte

	var stack []loopFrame

	i := 0

	for i < len(desc) {
		el := desc[i]

		switch el.Kind {
		case KindEnd:
			i++

		case KindField:
			name := dottedName(stack, el.ShortName)

			f, ok := inst.Get(name)
			if !ok {
				return nil, fmt.Errorf("tre: %s: field %s not populated: %w", tag, name, errs.ErrMissingRequired)
			}

			out = append(out, f.Bytes()...)
			i++

		case KindLoopStart:
			count, err := resolveCount(el, inst)
			if err != nil {
				return nil, fmt.Errorf("tre: %s: resolving loop count for %s: %w", tag, el.ShortName, err)
			}

			if count <= 0 {
				end, err := matchingEnd(desc, i+1, KindLoopStart, KindLoopEnd)
				if err != nil {
					return nil, err
				}

				i = end + 1

				continue
			}

			stack = append(stack, loopFrame{name: el.ShortName, iteration: 0, count: count, bodyStart: i + 1})
			i++

		case KindLoopEnd:
			if len(stack) == 0 {
				return nil, fmt.Errorf("tre: %s: loop-end with no open loop: %w", tag, errs.ErrParsing)
			}

			top := &stack[len(stack)-1]
			top.iteration++

			if top.iteration < top.count {
				i = top.bodyStart
			} else {
				stack = stack[:len(stack)-1]
				i++
			}

		case KindIfStart:
			ok, err := evalCondition(el, inst)
			if err != nil {
				return nil, fmt.Errorf("tre: %s: evaluating condition: %w", tag, err)
			}

			if ok {
				i++
			} else {
				end, err := matchingEnd(desc, i+1, KindIfStart, KindIfEnd)
				if err != nil {
					return nil, err
				}

				i = end + 1
			}

		case KindIfEnd:
			i++
		}
	}

	return out, nil
}

func dottedName(stack []loopFrame, shortName string) string {
	if len(stack) == 0 {
		return shortName
	}

	var sb strings.Builder
	for _, fr := range stack {
		sb.WriteString(fr.name)
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(fr.iteration + 1))
		sb.WriteString("].")
	}

	sb.WriteString(shortName)

	return sb.String()
}

// matchingEnd scans forward from i counting nested start/end pairs of the
// given kinds to find the element matching the currently-open start,
// returning its index.
func matchingEnd(desc Descriptor, i int, startKind, endKind ElementKind) (int, error) {
	depth := 1

	for i < len(desc) {
		switch desc[i].Kind {
		case startKind:
			depth++
		case endKind:
			depth--
			if depth == 0 {
				return i, nil
			}
		}

		i++
	}

	return 0, fmt.Errorf("tre: unterminated block: %w", errs.ErrParsing)
}

func resolveLength(el Element, lookup FieldLookup) (int, error) {
	switch el.LengthKind {
	case LengthLiteral:
		return el.Length, nil
	case LengthConditional:
		f, ok := lookup.Field(el.LengthRef)
		if !ok {
			return 0, fmt.Errorf("tre: length ref %q not parsed yet: %w", el.LengthRef, errs.ErrUnresolvedCount)
		}

		v, err := f.AsInt()
		if err != nil {
			return 0, err
		}

		return int(v), nil
	case LengthFunction:
		if el.LengthFunc == nil {
			return 0, fmt.Errorf("tre: LengthFunction with nil func: %w", errs.ErrUnresolvedCount)
		}

		return el.LengthFunc(lookup)
	default:
		return 0, fmt.Errorf("tre: unknown length kind: %w", errs.ErrUnresolvedCount)
	}
}

func resolveCount(el Element, lookup FieldLookup) (int, error) {
	switch el.CountKind {
	case CountLiteral:
		return el.Count, nil
	case CountFieldRef:
		f, ok := lookup.Field(el.CountRef)
		if !ok {
			return 0, fmt.Errorf("tre: count ref %q not parsed yet: %w", el.CountRef, errs.ErrUnresolvedCount)
		}

		v, err := f.AsInt()
		if err != nil {
			return 0, err
		}

		return int(v), nil
	case CountFunction:
		if el.CountFunc == nil {
			return 0, fmt.Errorf("tre: CountFunction with nil func: %w", errs.ErrUnresolvedCount)
		}

		return el.CountFunc(lookup)
	case CountExpr:
		f, ok := lookup.Field(el.CountRef)
		if !ok {
			return 0, fmt.Errorf("tre: count expr ref %q not parsed yet: %w", el.CountRef, errs.ErrUnresolvedCount)
		}

		lhs, err := f.AsInt()
		if err != nil {
			return 0, err
		}

		switch el.CountExprOp {
		case ExprAdd:
			return int(lhs) + el.Count, nil
		case ExprMul:
			f2, ok := lookup.Field(el.CountRef2)
			if !ok {
				return 0, fmt.Errorf("tre: count expr ref %q not parsed yet: %w", el.CountRef2, errs.ErrUnresolvedCount)
			}

			rhs, err := f2.AsInt()
			if err != nil {
				return 0, err
			}

			return int(lhs) * int(rhs), nil
		default:
			return 0, fmt.Errorf("tre: unknown expr op: %w", errs.ErrUnresolvedCount)
		}
	default:
		return 0, fmt.Errorf("tre: unknown count kind: %w", errs.ErrUnresolvedCount)
	}
}

func evalCondition(el Element, lookup FieldLookup) (bool, error) {
	f, ok := lookup.Field(el.CondFieldRef)
	if !ok {
		return false, fmt.Errorf("tre: condition ref %q not parsed yet: %w", el.CondFieldRef, errs.ErrUnresolvedCount)
	}

	lhs, err := f.AsString()
	if err != nil {
		return false, err
	}

	lhs = strings.TrimSpace(lhs)
	rhs := strings.TrimSpace(el.CondLiteral)

	switch el.CondRel {
	case RelEq:
		return lhs == rhs, nil
	case RelNe:
		return lhs != rhs, nil
	case RelLt, RelGt:
		lv, err1 := strconv.ParseFloat(lhs, 64)
		rv, err2 := strconv.ParseFloat(rhs, 64)

		if err1 != nil || err2 != nil {
			return false, fmt.Errorf("tre: relation %v requires numeric operands, got %q/%q: %w", el.CondRel, lhs, rhs, errs.ErrParsing)
		}

		if el.CondRel == RelLt {
			return lv < rv, nil
		}

		return lv > rv, nil
	case RelMask:
		lv, err1 := strconv.ParseInt(lhs, 0, 64)
		rv, err2 := strconv.ParseInt(rhs, 0, 64)

		if err1 != nil || err2 != nil {
			return false, fmt.Errorf("tre: mask relation requires integer operands, got %q/%q: %w", lhs, rhs, errs.ErrParsing)
		}

		return lv&rv != 0, nil
	default:
		return false, fmt.Errorf("tre: unknown relation %v: %w", el.CondRel, errs.ErrParsing)
	}
}
