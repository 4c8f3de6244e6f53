// Package cphd implements the CPHD side-car container's text header. A
// CPHD file is not an NITF file, but it reuses the same conceptual
// layout: a header describing the offsets and sizes of the sections
// that follow it (XML metadata, a per-vector parameter block, and the
// wideband signal array). This package covers the header parse/emit and
// offset arithmetic only; the wideband bytes are passed through
// uninterpreted.
package cphd
