package compress

// Code names a general-purpose byte codec the compression plugin
// registry can hand an image segment for a block-compression scheme
// that has no NITF-native IC code of its own: the CPHD wideband
// pass-through compressor and the TRE_OVERFLOW DES compressor both
// select a Code rather than an NITF image-compression identifier.
type Code uint8

const (
	CodeNone Code = 0x1
	CodeZstd Code = 0x2
	CodeS2   Code = 0x3
	CodeLZ4  Code = 0x4
)

func (c Code) String() string {
	switch c {
	case CodeNone:
		return "None"
	case CodeZstd:
		return "Zstd"
	case CodeS2:
		return "S2"
	case CodeLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
