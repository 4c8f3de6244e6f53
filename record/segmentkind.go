package record

// SegmentKind identifies one of the five NITF segment families, each of
// which has its own width for the file header's segment-count field and
// its (subheader-length, data-length) descriptor pair.
type SegmentKind uint8

const (
	Image SegmentKind = iota
	Graphic
	Text
	DES
	RES
)

func (k SegmentKind) String() string {
	switch k {
	case Image:
		return "Image"
	case Graphic:
		return "Graphic"
	case Text:
		return "Text"
	case DES:
		return "DES"
	case RES:
		return "RES"
	default:
		return "Unknown"
	}
}

// segmentWidths holds the per-kind field widths from MIL-STD-2500C: the
// 3-digit segment count, and the (subheader-length, data-length) pair
// width for each segment of that kind.
type segmentWidths struct {
	count         int
	subheaderLen  int
	dataLen       int
}

var widthsByKind = map[SegmentKind]segmentWidths{
	Image:   {count: 3, subheaderLen: 6, dataLen: 10},
	Graphic: {count: 3, subheaderLen: 4, dataLen: 6},
	Text:    {count: 3, subheaderLen: 4, dataLen: 5},
	DES:     {count: 3, subheaderLen: 4, dataLen: 9},
	RES:     {count: 3, subheaderLen: 4, dataLen: 7},
}

// MaxSegmentCount is the per-kind segment cap, set by MIL-STD-2500C's
// 3-digit NUMx count fields. Appending a segment past it fails with
// errs.ErrSegmentCountOverflow; no overflow DES is created for the excess.
const MaxSegmentCount = 999
