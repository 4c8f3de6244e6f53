package tre

import (
	"fmt"

	"github.com/nitro-go/nitro/endian"
	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/field"
)

// TagLength is the fixed 11-byte on-the-wire prefix preceding every TRE
// payload: a 6-byte space-padded tag, and a 5-byte zero-padded payload
// length. The length counts payload bytes only, excluding the prefix
// itself.
const TagLength = 11

// ReadOne reads a single tag+length+payload TRE from data at offset,
// returning the raw tag, payload bytes, and the offset just past the
// TRE's data.
func ReadOne(data []byte, offset int) (tag string, payload []byte, next int, err error) {
	if offset+TagLength > len(data) {
		return "", nil, 0, fmt.Errorf("tre: truncated TRE prefix at offset %d: %w", offset, errs.ErrParsing)
	}

	tagField := field.New(field.BCSA, 6)
	if err := tagField.SetRaw(data[offset : offset+6]); err != nil {
		return "", nil, 0, err
	}

	tag, err = tagField.AsString()
	if err != nil {
		return "", nil, 0, err
	}

	lenField := field.New(field.BCSN, 5)
	if err := lenField.SetRaw(data[offset+6 : offset+11]); err != nil {
		return "", nil, 0, err
	}

	length, err := lenField.AsUint(endian.GetBigEndianEngine())
	if err != nil {
		return "", nil, 0, err
	}

	start := offset + TagLength
	end := start + int(length)

	if end > len(data) {
		return "", nil, 0, fmt.Errorf("tre: %s: declared length %d exceeds remaining buffer: %w", tag, length, errs.ErrParsing)
	}

	return tag, data[start:end], end, nil
}

// WriteOne emits the 11-byte tag+length prefix followed by payload.
func WriteOne(tag string, payload []byte) ([]byte, error) {
	tagField := field.New(field.BCSA, 6)
	if err := tagField.SetString(tag); err != nil {
		return nil, fmt.Errorf("tre: tag %q: %w", tag, err)
	}

	lenField := field.New(field.BCSN, 5)
	if err := lenField.SetUint(endian.GetBigEndianEngine(), uint64(len(payload))); err != nil {
		return nil, fmt.Errorf("tre: %s: payload length %d: %w", tag, len(payload), err)
	}

	out := make([]byte, 0, TagLength+len(payload))
	out = append(out, tagField.Bytes()...)
	out = append(out, lenField.Bytes()...)
	out = append(out, payload...)

	return out, nil
}
