// Package endian provides byte order utilities for binary encoding and decoding.
//
// NITF is a big-endian wire format end to end: the file header, every
// subheader Field, TRE payload, and block-mask table is big-endian. This
// package exists anyway (rather than calling encoding/binary.BigEndian
// directly everywhere) so that in-memory byte-channel implementations used
// in tests, and the CPHD per-vector parameter block (which carries no
// endianness guarantee of its own across producers), can plug in an
// alternate engine without touching call sites.
//
// # Basic usage
//
//	engine := endian.GetBigEndianEngine()
//	f := field.New(field.Binary, 4)
//	f.SetUint(engine, 0x0000002A)
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine.
//
// This is the engine every NITF Field, subheader, and TRE payload uses on
// the wire; field and record operations default to it unless a caller
// explicitly overrides it.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
