// Package field implements the NITF Field primitive: a fixed-width,
// type-tagged byte buffer with parse/format conversions.
//
// A Field never owns more bytes than its declared length; every setter
// either fits the value into that width or returns an error from package
// errs. Fields are normally owned by the subheader struct that declares
// them (see package record); a resizable variant exists only during TRE
// assembly (see package tre), where a descriptor's computed-length fields
// are not known until they are written once.
package field
