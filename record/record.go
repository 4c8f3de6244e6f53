package record

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/nitro-go/nitro/endian"
	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/tre"
)

// ImageSegment pairs an image subheader with its pixel data. NITRO leaves
// pixel data encoding to the imageio package; Record only tracks the raw
// bytes it is handed (compressed or not) for offset bookkeeping.
type ImageSegment struct {
	Subheader *ImageSubheader
	Data      []byte
}

// GraphicSegment pairs a graphic subheader with its CGM metafile bytes.
type GraphicSegment struct {
	Subheader *GraphicSubheader
	Data      []byte
}

// TextSegment pairs a text subheader with its text body bytes.
type TextSegment struct {
	Subheader *TextSubheader
	Data      []byte
}

// DESegment pairs a DES subheader with its DESDATA bytes (or, when the
// subheader's TypeID is TREOverflowTypeID, a framed sequence of TREs).
type DESegment struct {
	Subheader *DESubheader
	Data      []byte
}

// RESegment pairs an RES subheader with its RESDATA bytes.
type RESegment struct {
	Subheader *RESubheader
	Data      []byte
}

// Record is the in-memory model of an entire NITF file: the file header
// plus every segment of every kind, in file order. A Record is only ever
// valid-by-construction: NewRecord returns one with an empty,
// self-consistent FileHeader, and every mutator keeps the FileHeader's
// counts/length arrays and the segment slices in lockstep.
type Record struct {
	FileHeader *FileHeader

	Images   []*ImageSegment
	Graphics []*GraphicSegment
	Texts    []*TextSegment
	DES      []*DESegment
	RES      []*RESegment

	registry *tre.Registry
}

// NewRecord creates an empty Record. registry resolves TRE descriptors for
// every segment's Extensions section; a nil registry gets a fresh
// NewRegistry(nil) (static-only, no bundled descriptors registered).
func NewRecord(registry *tre.Registry) *Record {
	if registry == nil {
		registry = tre.NewRegistry(nil)
	}

	return &Record{
		FileHeader: NewFileHeader(),
		registry:   registry,
	}
}

// Registry returns the TRE registry this Record resolves Extensions
// against.
func (r *Record) Registry() *tre.Registry {
	return r.registry
}

// NewImageSegment appends a new, default-initialized image segment and
// returns it. Fails errs.ErrSegmentCountOverflow past MaxSegmentCount.
func (r *Record) NewImageSegment() (*ImageSegment, error) {
	if err := r.FileHeader.appendSegment(Image); err != nil {
		return nil, err
	}

	seg := &ImageSegment{Subheader: NewImageSubheader()}
	r.Images = append(r.Images, seg)

	return seg, nil
}

// RemoveImageSegment deletes the image segment at index.
func (r *Record) RemoveImageSegment(index int) error {
	if index < 0 || index >= len(r.Images) {
		return fmt.Errorf("record: image segment index %d out of range [0,%d): %w", index, len(r.Images), errs.ErrSegmentIndexRange)
	}

	if err := r.FileHeader.removeSegment(Image, index); err != nil {
		return err
	}

	r.Images = append(r.Images[:index], r.Images[index+1:]...)

	return nil
}

// NewGraphicSegment appends a new, default-initialized graphic segment.
func (r *Record) NewGraphicSegment() (*GraphicSegment, error) {
	if err := r.FileHeader.appendSegment(Graphic); err != nil {
		return nil, err
	}

	seg := &GraphicSegment{Subheader: NewGraphicSubheader()}
	r.Graphics = append(r.Graphics, seg)

	return seg, nil
}

// RemoveGraphicSegment deletes the graphic segment at index.
func (r *Record) RemoveGraphicSegment(index int) error {
	if index < 0 || index >= len(r.Graphics) {
		return fmt.Errorf("record: graphic segment index %d out of range [0,%d): %w", index, len(r.Graphics), errs.ErrSegmentIndexRange)
	}

	if err := r.FileHeader.removeSegment(Graphic, index); err != nil {
		return err
	}

	r.Graphics = append(r.Graphics[:index], r.Graphics[index+1:]...)

	return nil
}

// NewTextSegment appends a new, default-initialized text segment.
func (r *Record) NewTextSegment() (*TextSegment, error) {
	if err := r.FileHeader.appendSegment(Text); err != nil {
		return nil, err
	}

	seg := &TextSegment{Subheader: NewTextSubheader()}
	r.Texts = append(r.Texts, seg)

	return seg, nil
}

// RemoveTextSegment deletes the text segment at index.
func (r *Record) RemoveTextSegment(index int) error {
	if index < 0 || index >= len(r.Texts) {
		return fmt.Errorf("record: text segment index %d out of range [0,%d): %w", index, len(r.Texts), errs.ErrSegmentIndexRange)
	}

	if err := r.FileHeader.removeSegment(Text, index); err != nil {
		return err
	}

	r.Texts = append(r.Texts[:index], r.Texts[index+1:]...)

	return nil
}

// NewDataExtensionSegment appends a new, default-initialized DES.
func (r *Record) NewDataExtensionSegment() (*DESegment, error) {
	if err := r.FileHeader.appendSegment(DES); err != nil {
		return nil, err
	}

	seg := &DESegment{Subheader: NewDESubheader()}
	r.DES = append(r.DES, seg)

	return seg, nil
}

// RemoveDataExtensionSegment deletes the DES at index.
func (r *Record) RemoveDataExtensionSegment(index int) error {
	if index < 0 || index >= len(r.DES) {
		return fmt.Errorf("record: DES index %d out of range [0,%d): %w", index, len(r.DES), errs.ErrSegmentIndexRange)
	}

	if err := r.FileHeader.removeSegment(DES, index); err != nil {
		return err
	}

	r.DES = append(r.DES[:index], r.DES[index+1:]...)

	return nil
}

// NewReservedExtensionSegment appends a new, default-initialized RES.
func (r *Record) NewReservedExtensionSegment() (*RESegment, error) {
	if err := r.FileHeader.appendSegment(RES); err != nil {
		return nil, err
	}

	seg := &RESegment{Subheader: NewRESubheader()}
	r.RES = append(r.RES, seg)

	return seg, nil
}

// RemoveReservedExtensionSegment deletes the RES at index.
func (r *Record) RemoveReservedExtensionSegment(index int) error {
	if index < 0 || index >= len(r.RES) {
		return fmt.Errorf("record: RES index %d out of range [0,%d): %w", index, len(r.RES), errs.ErrSegmentIndexRange)
	}

	if err := r.FileHeader.removeSegment(RES, index); err != nil {
		return err
	}

	r.RES = append(r.RES[:index], r.RES[index+1:]...)

	return nil
}

// CreateOverflowDES allocates a new DES with TypeID TREOverflowTypeID to
// carry the Extensions that overflowed from the segment of kind at index,
// encodes those TREs into the new DES's data, and records the back-link on
// the source Extensions. TRE_OVERFLOW routing is caller-driven rather than
// automatic, since only the caller knows the target subheader's
// extension-length budget.
func (r *Record) CreateOverflowDES(kind SegmentKind, index int, overflowed *Extensions) (*DESegment, error) {
	des, err := r.NewDataExtensionSegment()
	if err != nil {
		return nil, err
	}

	_ = des.Subheader.TypeID.SetString(TREOverflowTypeID)
	_ = des.Subheader.OverflowedHeader.SetString(kind.String())
	_ = des.Subheader.OverflowedItem.SetUint(endian.GetBigEndianEngine(), uint64(index+1))

	payload, err := overflowed.Bytes(r.registry)
	if err != nil {
		return nil, err
	}

	des.Data = payload
	overflowed.Overflow = &OverflowRef{DESIndex: len(r.DES) - 1}

	return des, nil
}

// OverflowExtensions returns the DES a segment's Extensions overflowed
// into, if any.
func (r *Record) OverflowExtensions(ext *Extensions) (*DESegment, bool) {
	if ext == nil || ext.Overflow == nil {
		return nil, false
	}

	idx := ext.Overflow.DESIndex
	if idx < 0 || idx >= len(r.DES) {
		return nil, false
	}

	return r.DES[idx], true
}

// ComputeOffsets recomputes every segment's (subheader-length,
// data-length) descriptor pair and the file header's overall
// FileLength/HeaderLength fields from the segments' current contents: a
// prefix-sum pass any writer or in-place editor calls before
// serializing, since callers may freely mutate segment contents between
// Record construction and write.
func (r *Record) ComputeOffsets() error {
	engine := endian.GetBigEndianEngine()

	headerLen := len(r.FileHeader.Bytes(engine))
	total := int64(headerLen)

	apply := func(kind SegmentKind, i int, subheaderLen, dataLen int) error {
		if err := r.FileHeader.SetSegmentLengths(kind, i, subheaderLen, dataLen); err != nil {
			return err
		}

		total += int64(subheaderLen) + int64(dataLen)

		return nil
	}

	for i, seg := range r.Images {
		b, err := seg.Subheader.Bytes(r.registry)
		if err != nil {
			return err
		}

		if err := apply(Image, i, len(b), len(seg.Data)); err != nil {
			return err
		}
	}

	for i, seg := range r.Graphics {
		b, err := seg.Subheader.Bytes(r.registry)
		if err != nil {
			return err
		}

		if err := apply(Graphic, i, len(b), len(seg.Data)); err != nil {
			return err
		}
	}

	for i, seg := range r.Texts {
		b, err := seg.Subheader.Bytes(r.registry)
		if err != nil {
			return err
		}

		if err := apply(Text, i, len(b), len(seg.Data)); err != nil {
			return err
		}
	}

	for i, seg := range r.DES {
		b, err := seg.Subheader.Bytes()
		if err != nil {
			return err
		}

		if err := apply(DES, i, len(b), len(seg.Data)); err != nil {
			return err
		}
	}

	for i, seg := range r.RES {
		b, err := seg.Subheader.Bytes()
		if err != nil {
			return err
		}

		if err := apply(RES, i, len(b), len(seg.Data)); err != nil {
			return err
		}
	}

	_ = r.FileHeader.HeaderLength.SetUint(engine, uint64(headerLen))
	_ = r.FileHeader.FileLength.SetUint(engine, uint64(total))

	return nil
}

// Fixed (non-TRE) byte widths of each subheader kind's scalar fields.
// Tests cross-check these against the serialized subheader lengths so a
// field-width drift is caught without a fixture file.
const (
	imageSubheaderFixedLen   = 10 + 14 + 42 + SecurityBlockSize + 1 + 8 + 8 + 3 + 8 + 8 + 2 + 1 + 1 + 60 + 2 + 1 + 1 + 4 + 4 + 4 + 4 + 2 + 3 + 3 + 5 + 5 + 4 + 5
	graphicSubheaderFixedLen = 10 + 20 + SecurityBlockSize + 1 + 1 + 3 + 3 + 5 + 5 + 5 + 5 + 5 + 5 + 4
	textSubheaderFixedLen    = 7 + 3 + 14 + 80 + SecurityBlockSize + 1 + 3 + 5
	desSubheaderFixedLen     = 25 + 2 + SecurityBlockSize + 6 + 3 + 4
	resSubheaderFixedLen     = 25 + 2 + SecurityBlockSize + 4
)

// Fingerprint returns a fast content hash of every segment's recorded
// (subheader-length, data-length) pair, for round-trip identity checks, following the
// same xxhash-backed cache key pattern as tre.Registry's cacheKey. It is
// not a cryptographic digest and says nothing about segment content
// beyond size and placement.
func (r *Record) Fingerprint() (uint64, error) {
	h := xxhash.New()

	write := func(kind SegmentKind, count int) error {
		for i := 0; i < count; i++ {
			subheaderLen, dataLen, err := r.FileHeader.SegmentLengths(kind, i)
			if err != nil {
				return err
			}

			var buf [16]byte
			endian.GetBigEndianEngine().PutUint64(buf[0:8], uint64(subheaderLen))
			endian.GetBigEndianEngine().PutUint64(buf[8:16], uint64(dataLen))
			_, _ = h.Write(buf[:])
		}

		return nil
	}

	if err := write(Image, len(r.Images)); err != nil {
		return 0, err
	}

	if err := write(Graphic, len(r.Graphics)); err != nil {
		return 0, err
	}

	if err := write(Text, len(r.Texts)); err != nil {
		return 0, err
	}

	if err := write(DES, len(r.DES)); err != nil {
		return 0, err
	}

	if err := write(RES, len(r.RES)); err != nil {
		return 0, err
	}

	return h.Sum64(), nil
}

// Clone returns a deep, independently-owned copy of the entire Record. The
// clone shares the same *tre.Registry (registries are read-mostly
// descriptor catalogs, not per-Record state).
func (r *Record) Clone() (*Record, error) {
	clone := &Record{
		FileHeader: r.FileHeader.Clone(),
		registry:   r.registry,
	}

	for _, seg := range r.Images {
		sh, err := seg.Subheader.Clone(r.registry)
		if err != nil {
			return nil, err
		}

		clone.Images = append(clone.Images, &ImageSegment{Subheader: sh, Data: append([]byte(nil), seg.Data...)})
	}

	for _, seg := range r.Graphics {
		sh, err := seg.Subheader.Clone(r.registry)
		if err != nil {
			return nil, err
		}

		clone.Graphics = append(clone.Graphics, &GraphicSegment{Subheader: sh, Data: append([]byte(nil), seg.Data...)})
	}

	for _, seg := range r.Texts {
		sh, err := seg.Subheader.Clone(r.registry)
		if err != nil {
			return nil, err
		}

		clone.Texts = append(clone.Texts, &TextSegment{Subheader: sh, Data: append([]byte(nil), seg.Data...)})
	}

	for _, seg := range r.DES {
		sh, err := seg.Subheader.Clone(r.registry)
		if err != nil {
			return nil, err
		}

		clone.DES = append(clone.DES, &DESegment{Subheader: sh, Data: append([]byte(nil), seg.Data...)})
	}

	for _, seg := range r.RES {
		sh, err := seg.Subheader.Clone(r.registry)
		if err != nil {
			return nil, err
		}

		clone.RES = append(clone.RES, &RESegment{Subheader: sh, Data: append([]byte(nil), seg.Data...)})
	}

	return clone, nil
}
