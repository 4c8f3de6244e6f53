package cphd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nitro-go/nitro/errs"
)

// VersionV03 and VersionV10 are the two CPHD product-version strings the
// format recognizes, one per family generation.
const (
	VersionV03 = "CPHD/0.3"
	VersionV10 = "CPHD/1.0"
)

// sectionTerminator is the form-feed-plus-newline sequence that ends the
// key-value block.
var sectionTerminator = []byte("\f\n")

// Key names recognized in the CPHD text header.
const (
	KeyXMLDataSize    = "XML_DATA_SIZE"
	KeyXMLByteOffset  = "XML_BYTE_OFFSET"
	KeyVBDataSize     = "VB_DATA_SIZE"
	KeyVBByteOffset   = "VB_BYTE_OFFSET"
	KeyCPHDDataSize   = "CPHD_DATA_SIZE"
	KeyCPHDByteOffset = "CPHD_BYTE_OFFSET"
	KeyClassification = "CLASSIFICATION"
	KeyReleaseInfo    = "RELEASE_INFO"
)

var requiredKeys = []string{
	KeyXMLDataSize, KeyXMLByteOffset,
	KeyVBDataSize, KeyVBByteOffset,
	KeyCPHDDataSize, KeyCPHDByteOffset,
}

// Header is the parsed CPHD text header: the product-version line plus
// the recognized key-value pairs, each either a byte count/offset
// (numeric keys) or free text (CLASSIFICATION, RELEASE_INFO).
type Header struct {
	Version string

	XMLDataSize    int64
	XMLByteOffset  int64
	VBDataSize     int64
	VBByteOffset   int64
	CPHDDataSize   int64
	CPHDByteOffset int64

	Classification string
	ReleaseInfo    string

	// Extra holds any additional KEY := VALUE pairs present in the
	// header that are not among the keys this package interprets,
	// preserved verbatim for round-trip fidelity.
	Extra map[string]string

	// extraOrder remembers first-seen order of Extra keys so Emit is
	// deterministic.
	extraOrder []string

	seen map[string]bool
}

// NewHeader returns a Header defaulted to version.
func NewHeader(version string) *Header {
	return &Header{Version: version, Extra: map[string]string{}, seen: map[string]bool{}}
}

// ParseHeader reads a CPHD text header from r: the product-version
// line, then `KEY := VALUE` lines until the `\f\n` terminator. The
// returned offset is the byte position immediately after the
// terminator, where the XML payload begins.
func ParseHeader(r io.Reader) (*Header, int64, error) {
	br := bufio.NewReader(r)
	var consumed int64

	versionLine, terminated, err := readLine(br, &consumed)
	if err != nil {
		return nil, 0, fmt.Errorf("cphd: reading version line: %w", errs.ErrInvalidObject)
	}

	version := strings.TrimSpace(versionLine)
	if version != VersionV03 && version != VersionV10 {
		return nil, 0, fmt.Errorf("cphd: unrecognized product version %q: %w", version, errs.ErrUnknownVersion)
	}

	h := NewHeader(version)

	for !terminated {
		var line string

		line, terminated, err = readLine(br, &consumed)
		if err != nil {
			return nil, 0, fmt.Errorf("cphd: reading header line: %w", errs.ErrInvalidObject)
		}

		if terminated || line == "" {
			continue
		}

		key, value, err := splitKeyValue(line)
		if err != nil {
			return nil, 0, err
		}

		if err := h.set(key, value); err != nil {
			return nil, 0, err
		}
	}

	for _, key := range requiredKeys {
		if !h.hasKey(key) {
			return nil, 0, fmt.Errorf("cphd: header missing required key %s: %w", key, errs.ErrMissingElement)
		}
	}

	return h, consumed, nil
}

// readLine reads one '\n'-terminated line, stripping the terminator and
// any trailing '\r', and tracks bytes consumed so callers can compute the
// header's total length. terminated reports whether the line read was the
// lone form-feed byte that signals the end of the header.
func readLine(br *bufio.Reader, consumed *int64) (line string, terminated bool, err error) {
	raw, err := br.ReadString('\n')
	if err != nil && raw == "" {
		return "", false, err
	}

	*consumed += int64(len(raw))

	trimmed := strings.TrimRight(raw, "\r\n")
	if trimmed == "\f" {
		return "", true, nil
	}

	return trimmed, false, nil
}

func splitKeyValue(line string) (key, value string, err error) {
	idx := strings.Index(line, ":=")
	if idx < 0 {
		return "", "", fmt.Errorf("cphd: header line %q is not KEY := VALUE: %w", line, errs.ErrInvalidObject)
	}

	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+2:])

	return key, value, nil
}

func (h *Header) hasKey(key string) bool {
	if h.seen[key] {
		return true
	}

	_, ok := h.Extra[key]

	return ok
}

func (h *Header) set(key, value string) error {
	if h.seen == nil {
		h.seen = map[string]bool{}
	}

	h.seen[key] = true

	switch key {
	case KeyXMLDataSize:
		return h.setInt(&h.XMLDataSize, key, value)
	case KeyXMLByteOffset:
		return h.setInt(&h.XMLByteOffset, key, value)
	case KeyVBDataSize:
		return h.setInt(&h.VBDataSize, key, value)
	case KeyVBByteOffset:
		return h.setInt(&h.VBByteOffset, key, value)
	case KeyCPHDDataSize:
		return h.setInt(&h.CPHDDataSize, key, value)
	case KeyCPHDByteOffset:
		return h.setInt(&h.CPHDByteOffset, key, value)
	case KeyClassification:
		h.Classification = value
		return nil
	case KeyReleaseInfo:
		h.ReleaseInfo = value
		return nil
	default:
		if _, ok := h.Extra[key]; !ok {
			h.extraOrder = append(h.extraOrder, key)
		}

		h.Extra[key] = value

		return nil
	}
}

func (h *Header) setInt(dst *int64, key, value string) error {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("cphd: key %s has non-numeric value %q: %w", key, value, errs.ErrInvalidObject)
	}

	*dst = n

	return nil
}

// Emit renders the header in its canonical on-disk form: the
// product-version line, then one `KEY := VALUE` line per recognized key
// in fixed order, then Extra entries in first-seen order, then the
// `\f\n` terminator.
func (h *Header) Emit() []byte {
	var buf bytes.Buffer

	buf.WriteString(h.Version)
	buf.WriteByte('\n')

	writeKV(&buf, KeyXMLDataSize, strconv.FormatInt(h.XMLDataSize, 10))
	writeKV(&buf, KeyXMLByteOffset, strconv.FormatInt(h.XMLByteOffset, 10))
	writeKV(&buf, KeyVBDataSize, strconv.FormatInt(h.VBDataSize, 10))
	writeKV(&buf, KeyVBByteOffset, strconv.FormatInt(h.VBByteOffset, 10))
	writeKV(&buf, KeyCPHDDataSize, strconv.FormatInt(h.CPHDDataSize, 10))
	writeKV(&buf, KeyCPHDByteOffset, strconv.FormatInt(h.CPHDByteOffset, 10))

	if h.Classification != "" {
		writeKV(&buf, KeyClassification, h.Classification)
	}

	if h.ReleaseInfo != "" {
		writeKV(&buf, KeyReleaseInfo, h.ReleaseInfo)
	}

	for _, k := range h.extraOrder {
		writeKV(&buf, k, h.Extra[k])
	}

	buf.Write(sectionTerminator)

	return buf.Bytes()
}

func writeKV(buf *bytes.Buffer, key, value string) {
	buf.WriteString(key)
	buf.WriteString(" := ")
	buf.WriteString(value)
	buf.WriteByte('\n')
}

// ComputeOffsets sets XMLByteOffset, VBByteOffset, and CPHDByteOffset
// from headerLength (the byte length of Emit's own output) and the
// three data-size fields. Sections follow the header in fixed order:
// XML, then per-vector block, then wideband signal array.
func (h *Header) ComputeOffsets(headerLength int64) {
	h.XMLByteOffset = headerLength
	h.VBByteOffset = h.XMLByteOffset + h.XMLDataSize
	h.CPHDByteOffset = h.VBByteOffset + h.VBDataSize
}
