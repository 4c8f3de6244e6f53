package six

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"

	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/internal/options"
)

// rootNamespace extracts the xmlns attribute value of the document's
// root element without fully decoding it, so callers can pick a
// version-specific target type before unmarshaling.
func rootNamespace(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	for {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("six: reading root element: %w", errs.ErrInvalidXML)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if start.Name.Space != "" {
			return start.Name.Space, nil
		}

		for _, attr := range start.Attr {
			if attr.Name.Local == "xmlns" {
				return attr.Value, nil
			}
		}

		return "", fmt.Errorf("six: root element %s declares no namespace: %w", start.Name.Local, errs.ErrUnknownVersion)
	}
}

// DetectVersion returns the Family and Version the document's root
// element namespace declares, without fully decoding the product tree.
func DetectVersion(data []byte) (Family, Version, error) {
	uri, err := rootNamespace(data)
	if err != nil {
		return FamilyUnknown, Version{}, err
	}

	return ParseNamespace(uri)
}

// Unmarshal decodes data into a new SICD, SIDD, or CPHD object,
// dispatching on the root element's declared namespace.
func Unmarshal(data []byte, opts ...TranscodeOption) (Product, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	family, version, err := DetectVersion(data)
	if err != nil {
		return nil, err
	}

	if err := validate(data, family, version, cfg); err != nil {
		return nil, err
	}

	switch family {
	case FamilySICD:
		var product SICD
		if err := xml.Unmarshal(data, &product); err != nil {
			return nil, fmt.Errorf("six: unmarshaling SICD: %w", errs.ErrInvalidXML)
		}

		product.Version = version

		return &product, nil
	case FamilySIDD:
		var product SIDD
		if err := xml.Unmarshal(data, &product); err != nil {
			return nil, fmt.Errorf("six: unmarshaling SIDD: %w", errs.ErrInvalidXML)
		}

		product.Version = version

		return &product, nil
	case FamilyCPHD:
		var product CPHD
		if err := xml.Unmarshal(data, &product); err != nil {
			return nil, fmt.Errorf("six: unmarshaling CPHD: %w", errs.ErrInvalidXML)
		}

		product.Version = version

		return &product, nil
	default:
		return nil, fmt.Errorf("six: unrecognized product family %s: %w", family, errs.ErrUnknownVersion)
	}
}

// Marshal encodes a Product back to XML, stamping the root element's
// namespace from p.Family()/p.ProductVersion(). It is the inverse of
// Unmarshal.
func Marshal(p Product, opts ...TranscodeOption) ([]byte, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var (
		body []byte
		err  error
	)

	switch v := p.(type) {
	case *SICD:
		body, err = xml.MarshalIndent(v, "", "  ")
	case *SIDD:
		body, err = xml.MarshalIndent(v, "", "  ")
	case *CPHD:
		body, err = xml.MarshalIndent(v, "", "  ")
	default:
		return nil, fmt.Errorf("six: unsupported product type %T: %w", p, errs.ErrUnknownVersion)
	}

	if err != nil {
		return nil, fmt.Errorf("six: marshaling %s: %w", p.Family(), errs.ErrInvalidXML)
	}

	body = stampNamespace(body, Namespace(p.Family(), p.ProductVersion()))

	if err := validate(body, p.Family(), p.ProductVersion(), cfg); err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), body...), nil
}

// stampNamespace injects an xmlns attribute into the root element's
// opening tag. encoding/xml has no first-class "default namespace on
// this element only" output mode for a type without an xml.Name field
// carrying Space, so Marshal stamps it textually.
func stampNamespace(body []byte, uri string) []byte {
	idx := bytes.IndexByte(body, '>')
	if idx < 0 {
		return body
	}

	if bytes.Contains(body[:idx], []byte("xmlns")) {
		return body
	}

	attr := []byte(fmt.Sprintf(" xmlns=%q", uri))

	out := make([]byte, 0, len(body)+len(attr))
	out = append(out, body[:idx]...)
	out = append(out, attr...)
	out = append(out, body[idx:]...)

	return out
}

// validate runs schema-path resolution when a path is configured or
// resolvable from SIX_SCHEMA_PATH. No XSD validator is bundled;
// validate confirms a schema directory would be resolvable and, under
// WithStrictValidation, fails when it is not. The document itself is not
// checked against any schema.
func validate(_ []byte, family Family, version Version, cfg *config) error {
	path := cfg.schemaPath
	if path == "" {
		path = os.Getenv("SIX_SCHEMA_PATH")
	}

	if path == "" {
		if cfg.strict {
			return fmt.Errorf("six: no schema path configured for %s %s under strict validation: %w", family, version, errs.ErrSchemaValidation)
		}

		return nil
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("six: schema path %q: %w", path, errs.ErrSchemaValidation)
	}

	return nil
}
