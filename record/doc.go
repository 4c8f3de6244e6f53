// Package record implements the NITF Record model: the in-memory tree of
// file header, image/graphic/text/DES/RES subheaders, and the invariants
// between a subheader's declared lengths and the file header's
// segment-count and length arrays.
//
// A Record is constructor-only-valid: NewRecord initializes the file
// header with version-fixed defaults and empty segment vectors, and every
// mutator (NewImageSegment, RemoveTextSegment, ...) keeps the file
// header's counts in lockstep with the segment vectors it owns. Nothing
// in this package touches a byte channel directly; reading and writing a
// whole file is package nitro's job, which uses package field for
// individual Field parse/format and package tre for the Extensions
// sections this package's subheaders carry.
package record
