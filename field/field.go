package field

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/nitro-go/nitro/endian"
	"github.com/nitro-go/nitro/errs"
)

// Category tags the encoding rule a Field's bytes follow.
type Category uint8

const (
	// BCSA is ASCII text, space-padded on the right.
	BCSA Category = iota
	// BCSN is ASCII numeric, zero-padded on the left.
	BCSN
	// Binary is raw bytes, conventionally a big-endian unsigned integer of
	// width 1, 2, 4, or 8.
	Binary
	// BCSAPlus is BCSA restricted to the stricter NITF "BCS-A+" character class
	// (upper-case letters, digits, space, and a small punctuation set).
	BCSAPlus
	// BCSNPlus is BCSN restricted to signed decimal digits only (no BCS-N
	// trailing sign conventions).
	BCSNPlus
)

func (c Category) String() string {
	switch c {
	case BCSA:
		return "BCS-A"
	case BCSN:
		return "BCS-N"
	case Binary:
		return "BINARY"
	case BCSAPlus:
		return "BCS-A+"
	case BCSNPlus:
		return "BCS-N+"
	default:
		return "UNKNOWN"
	}
}

const bcsAPlusAllowed = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 !\"%&'()*+,-./:;<=>?"

// Field is a fixed-size, type-tagged byte buffer. The zero value is not
// usable; construct with New.
type Field struct {
	category Category
	length   int
	data     []byte
}

// New creates a Field of the given category and fixed length, initialized
// to the category's default fill (space for BCS-A, '0' for BCS-N, zero
// bytes for BINARY).
func New(category Category, length int) *Field {
	f := &Field{category: category, length: length, data: make([]byte, length)}
	f.clear()

	return f
}

func (f *Field) clear() {
	switch f.category {
	case BCSA, BCSAPlus:
		for i := range f.data {
			f.data[i] = ' '
		}
	case BCSN, BCSNPlus:
		for i := range f.data {
			f.data[i] = '0'
		}
	case Binary:
		for i := range f.data {
			f.data[i] = 0
		}
	}
}

// Category returns the field's tagged category.
func (f *Field) Category() Category { return f.category }

// Len returns the fixed declared length of the field in bytes.
func (f *Field) Len() int { return f.length }

// SetRaw stores exactly n bytes when n <= L, left-aligned, padding the
// remainder with the category's default fill. Fails errs.ErrFieldTooLong
// when n > L.
func (f *Field) SetRaw(b []byte) error {
	if len(b) > f.length {
		return fmt.Errorf("field: set raw %d bytes into %d-byte %s field: %w", len(b), f.length, f.category, errs.ErrFieldTooLong)
	}

	f.clear()
	copy(f.data, b)

	return nil
}

// SetString left-justifies s for BCS-A (right-padding with space) and
// right-justifies s for BCS-N (left-padding with '0'). Fails
// errs.ErrFieldTooLong if s does not fit.
func (f *Field) SetString(s string) error {
	if len(s) > f.length {
		return fmt.Errorf("field: string %q exceeds %d-byte %s field: %w", s, f.length, f.category, errs.ErrFieldTooLong)
	}

	if f.category == BCSAPlus {
		for _, r := range s {
			if !strings.ContainsRune(bcsAPlusAllowed, r) {
				return fmt.Errorf("field: %q contains a rune outside BCS-A+ charset: %w", s, errs.ErrInvalidCategory)
			}
		}
	}

	if f.category == BCSNPlus {
		for i, r := range s {
			if (r < '0' || r > '9') && !(i == 0 && (r == '+' || r == '-')) {
				return fmt.Errorf("field: %q contains a rune outside BCS-N+ charset: %w", s, errs.ErrInvalidCategory)
			}
		}
	}

	switch f.category {
	case BCSA, BCSAPlus:
		copy(f.data, []byte(s))
		for i := len(s); i < f.length; i++ {
			f.data[i] = ' '
		}
	case BCSN, BCSNPlus:
		pad := f.length - len(s)
		for i := 0; i < pad; i++ {
			f.data[i] = '0'
		}
		copy(f.data[pad:], []byte(s))
	default:
		return fmt.Errorf("field: SetString not valid for %s: %w", f.category, errs.ErrInvalidCategory)
	}

	return nil
}

// SetUint renders v as a decimal string into L bytes (BCS-N) or as an
// L-byte big-endian unsigned integer (BINARY). Fails
// errs.ErrIntegerOverflow if the decimal rendering needs more than L bytes
// or v does not fit in an L-byte BINARY field, and errs.ErrInvalidCategory
// if L is not in {1,2,4,8} for BINARY.
func (f *Field) SetUint(engine endian.EndianEngine, v uint64) error {
	switch f.category {
	case BCSN, BCSNPlus:
		s := strconv.FormatUint(v, 10)
		if len(s) > f.length {
			return fmt.Errorf("field: uint %d needs %d digits, field is %d bytes: %w", v, len(s), f.length, errs.ErrIntegerOverflow)
		}

		return f.SetString(s)
	case Binary:
		switch f.length {
		case 1:
			if v > 0xFF {
				return fmt.Errorf("field: uint %d does not fit in 1-byte BINARY field: %w", v, errs.ErrIntegerOverflow)
			}
			f.data[0] = byte(v)
		case 2:
			if v > 0xFFFF {
				return fmt.Errorf("field: uint %d does not fit in 2-byte BINARY field: %w", v, errs.ErrIntegerOverflow)
			}
			engine.PutUint16(f.data, uint16(v))
		case 4:
			if v > 0xFFFFFFFF {
				return fmt.Errorf("field: uint %d does not fit in 4-byte BINARY field: %w", v, errs.ErrIntegerOverflow)
			}
			engine.PutUint32(f.data, uint32(v))
		case 8:
			engine.PutUint64(f.data, v)
		default:
			return fmt.Errorf("field: BINARY field width %d not in {1,2,4,8}: %w", f.length, errs.ErrInvalidCategory)
		}

		return nil
	default:
		return fmt.Errorf("field: SetUint not valid for %s: %w", f.category, errs.ErrInvalidCategory)
	}
}

// SetReal formats v with a printf-style verb ("%e" or "%f") padded to width
// L. If allowPlus is false, a rendering that starts with '+' is rejected.
func (f *Field) SetReal(v float64, verb string, allowPlus bool) error {
	s := fmt.Sprintf(verb, v)
	if strings.HasPrefix(s, "+") {
		if !allowPlus {
			return fmt.Errorf("field: leading '+' not allowed: %w", errs.ErrInvalidCategory)
		}
	}

	if len(s) > f.length {
		// Try shrinking fractional digits: L - sign_width - 1 - decimal_point_width.
		prec := f.precisionForWidth(s)
		if prec < 0 {
			return fmt.Errorf("field: real rendering %q exceeds %d-byte field: %w", s, f.length, errs.ErrFieldTooLong)
		}

		s = strconv.FormatFloat(v, 'f', prec, 64)
		if len(s) > f.length {
			return fmt.Errorf("field: real rendering %q exceeds %d-byte field: %w", s, f.length, errs.ErrFieldTooLong)
		}
	}

	return f.SetString(s)
}

func (f *Field) precisionForWidth(rendered string) int {
	signWidth := 0
	if strings.HasPrefix(rendered, "-") || strings.HasPrefix(rendered, "+") {
		signWidth = 1
	}

	decimalPointWidth := 0
	if strings.Contains(rendered, ".") {
		decimalPointWidth = 1
	}

	intDigits := strings.IndexByte(rendered, '.')
	if intDigits < 0 {
		intDigits = len(rendered)
	}

	intDigits -= signWidth

	prec := f.length - signWidth - decimalPointWidth - intDigits
	if prec < 0 {
		return -1
	}

	return prec
}

// SetDateTime formats t using a strftime-style layout (e.g. "%Y%m%d%H%M%S",
// the canonical NITF file-datetime layout) and stores the result as BCS-N.
func (f *Field) SetDateTime(t time.Time, layout string) error {
	fm, err := strftime.New(layout)
	if err != nil {
		return fmt.Errorf("field: invalid strftime layout %q: %w", layout, err)
	}

	s := fm.FormatString(t)

	return f.SetString(s)
}

// AsString returns the field contents as a string: BCS-A/BCS-A+ with
// trailing spaces trimmed, BCS-N/BCS-N+ exactly as stored. BINARY fields
// fail errs.ErrInvalidCategory.
func (f *Field) AsString() (string, error) {
	switch f.category {
	case BCSA, BCSAPlus:
		return strings.TrimRight(string(f.data), " "), nil
	case BCSN, BCSNPlus:
		return string(f.data), nil
	default:
		return "", fmt.Errorf("field: AsString not valid for %s: %w", f.category, errs.ErrInvalidCategory)
	}
}

// AsUint parses the canonical text form back to an unsigned integer
// (BCS-N) or decodes the big-endian BINARY bytes. Rejects ambiguous
// leading/trailing whitespace in BCS-N fields.
func (f *Field) AsUint(engine endian.EndianEngine) (uint64, error) {
	switch f.category {
	case BCSN, BCSNPlus:
		s := string(f.data)
		if strings.TrimSpace(s) != s {
			return 0, fmt.Errorf("field: %q has ambiguous whitespace: %w", s, errs.ErrAmbiguousWhitespace)
		}

		trimmed := strings.TrimLeft(s, "0")
		if trimmed == "" {
			return 0, nil
		}

		v, err := strconv.ParseUint(trimmed, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("field: parsing %q: %w", s, errs.ErrParsing)
		}

		return v, nil
	case Binary:
		switch f.length {
		case 1:
			return uint64(f.data[0]), nil
		case 2:
			return uint64(engine.Uint16(f.data)), nil
		case 4:
			return uint64(engine.Uint32(f.data)), nil
		case 8:
			return engine.Uint64(f.data), nil
		default:
			return 0, fmt.Errorf("field: BINARY field width %d not in {1,2,4,8}: %w", f.length, errs.ErrInvalidCategory)
		}
	default:
		return 0, fmt.Errorf("field: AsUint not valid for %s: %w", f.category, errs.ErrInvalidCategory)
	}
}

// AsInt parses the canonical text form back to a signed integer.
func (f *Field) AsInt() (int64, error) {
	s, err := f.AsString()
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("field: parsing %q as int: %w", s, errs.ErrParsing)
	}

	return v, nil
}

// AsReal parses the canonical text form back to a float64.
func (f *Field) AsReal() (float64, error) {
	s, err := f.AsString()
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("field: parsing %q as real: %w", s, errs.ErrParsing)
	}

	return v, nil
}

// AsDateTime parses the field's text using a strftime-style layout.
func (f *Field) AsDateTime(layout string) (time.Time, error) {
	s, err := f.AsString()
	if err != nil {
		return time.Time{}, err
	}

	goLayout, err := strftimeToGoLayout(layout)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(goLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("field: parsing %q with layout %q: %w", s, layout, errs.ErrParsing)
	}

	return t, nil
}

// AsRaw copies min(L, len(buf)) bytes into buf and returns the count
// copied.
func (f *Field) AsRaw(buf []byte) int {
	return copy(buf, f.data)
}

// Bytes returns the field's raw underlying bytes. Callers must not mutate
// the returned slice.
func (f *Field) Bytes() []byte {
	return f.data
}

// strftimeToGoLayout translates the small subset of strftime directives
// NITF actually uses into a time.Parse layout string. strftime's own
// library formats but does not parse, so parsing uses the standard
// library's reference-time layout instead.
func strftimeToGoLayout(layout string) (string, error) {
	replacer := strings.NewReplacer(
		"%Y", "2006",
		"%m", "01",
		"%d", "02",
		"%H", "15",
		"%M", "04",
		"%S", "05",
		"%j", "002",
	)

	return replacer.Replace(layout), nil
}
