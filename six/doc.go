// Package six implements the SAR product-metadata transcoder: the
// in-memory SICD/SIDD/CPHD object model, XML marshal/unmarshal keyed by
// namespace version, the version updater, and the NITF DES binding that
// carries the XML payload.
//
// Schema handling is limited to the schema path: when one is configured or
// SIX_SCHEMA_PATH is set, Marshal and Unmarshal check that the directory
// exists. No XSD validation of the document is performed. Under
// WithStrictValidation a missing or unresolvable path is an error.
package six
