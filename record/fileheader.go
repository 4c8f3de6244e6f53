package record

import (
	"fmt"
	"time"

	"github.com/nitro-go/nitro/endian"
	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/field"
)

// DefaultFileProfile and DefaultFileVersion are the version-fixed defaults
// a fresh Record carries.
const (
	DefaultFileProfile = "NITF"
	DefaultFileVersion = "02.10"
	DefaultComplexity  = "03"
	DefaultSystemType  = "BF01"
)

// FileHeader is the fixed-width prefix of a NITF file, per MIL-STD-2500C.
type FileHeader struct {
	FileProfile       *field.Field // FHDR, 4
	FileVersion       *field.Field // FVER, 5
	Complexity        *field.Field // CLEVEL, 2
	SystemType        *field.Field // STYPE, 4
	OriginatingStation *field.Field // OSTAID, 10
	FileDateTime      *field.Field // FDT, 14
	FileTitle         *field.Field // FTITLE, 80
	Security          *Security    // 167
	EncryptionFlag    *field.Field // ENCRYP, 1
	BackgroundColor   *field.Field // FBKGC, 3 binary
	OriginatorName    *field.Field // ONAME, 24
	OriginatorPhone   *field.Field // OPHONE, 18
	FileLength        *field.Field // FL, 12
	HeaderLength      *field.Field // HL, 6

	counts  map[SegmentKind]int
	lengths map[SegmentKind][][2]int // [subheader-length, data-length] per segment
}

// NewFileHeader constructs a FileHeader with the version-fixed defaults.
func NewFileHeader() *FileHeader {
	fh := &FileHeader{
		FileProfile:        field.New(field.BCSA, 4),
		FileVersion:        field.New(field.BCSA, 5),
		Complexity:         field.New(field.BCSN, 2),
		SystemType:         field.New(field.BCSA, 4),
		OriginatingStation: field.New(field.BCSA, 10),
		FileDateTime:       field.New(field.BCSN, 14),
		FileTitle:          field.New(field.BCSA, 80),
		Security:           NewSecurity(),
		EncryptionFlag:     field.New(field.BCSN, 1),
		BackgroundColor:    field.New(field.Binary, 3),
		OriginatorName:     field.New(field.BCSA, 24),
		OriginatorPhone:    field.New(field.BCSA, 18),
		FileLength:         field.New(field.BCSN, 12),
		HeaderLength:       field.New(field.BCSN, 6),
		counts:             make(map[SegmentKind]int),
		lengths:            make(map[SegmentKind][][2]int),
	}

	_ = fh.FileProfile.SetString(DefaultFileProfile)
	_ = fh.FileVersion.SetString(DefaultFileVersion)
	_ = fh.Complexity.SetString(DefaultComplexity)
	_ = fh.SystemType.SetString(DefaultSystemType)
	_ = fh.EncryptionFlag.SetString("0")
	_ = fh.FileDateTime.SetDateTime(time.Now().UTC(), "%Y%m%d%H%M%S")

	for _, kind := range []SegmentKind{Image, Graphic, Text, DES, RES} {
		fh.counts[kind] = 0
		fh.lengths[kind] = nil
	}

	return fh
}

// Count returns the number of segments of kind declared in the file
// header.
func (fh *FileHeader) Count(kind SegmentKind) int {
	return fh.counts[kind]
}

// appendSegment grows the descriptor arrays for kind by one entry and
// increments its count. Called only by Record's mutators so the file
// header and the Record's subheader vectors never drift apart.
func (fh *FileHeader) appendSegment(kind SegmentKind) error {
	if fh.counts[kind]+1 > MaxSegmentCount {
		return fmt.Errorf("record: %s segment count would exceed %d: %w", kind, MaxSegmentCount, errs.ErrSegmentCountOverflow)
	}

	fh.counts[kind]++
	fh.lengths[kind] = append(fh.lengths[kind], [2]int{0, 0})

	return nil
}

// removeSegment removes index's descriptor entry for kind and decrements
// its count.
func (fh *FileHeader) removeSegment(kind SegmentKind, index int) error {
	entries := fh.lengths[kind]
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("record: %s segment index %d out of range [0,%d): %w", kind, index, len(entries), errs.ErrSegmentIndexRange)
	}

	fh.lengths[kind] = append(entries[:index], entries[index+1:]...)
	fh.counts[kind]--

	return nil
}

// SetSegmentLengths records the (subheader-length, data-length) pair for
// segment index of kind, overwriting whatever ComputeOffsets last
// wrote there.
func (fh *FileHeader) SetSegmentLengths(kind SegmentKind, index, subheaderLen, dataLen int) error {
	entries := fh.lengths[kind]
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("record: %s segment index %d out of range: %w", kind, index, errs.ErrSegmentIndexRange)
	}

	entries[index] = [2]int{subheaderLen, dataLen}

	return nil
}

// SegmentLengths returns the recorded (subheader-length, data-length) pair
// for segment index of kind.
func (fh *FileHeader) SegmentLengths(kind SegmentKind, index int) (subheaderLen, dataLen int, err error) {
	entries := fh.lengths[kind]
	if index < 0 || index >= len(entries) {
		return 0, 0, fmt.Errorf("record: %s segment index %d out of range: %w", kind, index, errs.ErrSegmentIndexRange)
	}

	return entries[index][0], entries[index][1], nil
}

// Bytes serializes the fixed-width prefix fields and the per-kind
// count+length arrays in file order. It does not include subheaders or
// segment data.
func (fh *FileHeader) Bytes(engine endian.EndianEngine) []byte {
	out := make([]byte, 0, 512)
	out = append(out, fh.FileProfile.Bytes()...)
	out = append(out, fh.FileVersion.Bytes()...)
	out = append(out, fh.Complexity.Bytes()...)
	out = append(out, fh.SystemType.Bytes()...)
	out = append(out, fh.OriginatingStation.Bytes()...)
	out = append(out, fh.FileDateTime.Bytes()...)
	out = append(out, fh.FileTitle.Bytes()...)
	out = append(out, fh.Security.Bytes()...)
	out = append(out, fh.EncryptionFlag.Bytes()...)
	out = append(out, fh.BackgroundColor.Bytes()...)
	out = append(out, fh.OriginatorName.Bytes()...)
	out = append(out, fh.OriginatorPhone.Bytes()...)
	out = append(out, fh.FileLength.Bytes()...)
	out = append(out, fh.HeaderLength.Bytes()...)

	for _, kind := range []SegmentKind{Image, Graphic, Text, DES, RES} {
		w := widthsByKind[kind]
		count := field.New(field.BCSN, w.count)
		_ = count.SetUint(engine, uint64(fh.counts[kind]))
		out = append(out, count.Bytes()...)

		for _, pair := range fh.lengths[kind] {
			sh := field.New(field.BCSN, w.subheaderLen)
			_ = sh.SetUint(engine, uint64(pair[0]))
			out = append(out, sh.Bytes()...)

			dl := field.New(field.BCSN, w.dataLen)
			_ = dl.SetUint(engine, uint64(pair[1]))
			out = append(out, dl.Bytes()...)
		}
	}

	return out
}

// Parse reads the fixed-width file header prefix from the front of data:
// the scalar fields, the security block, and the per-kind
// count+(subheader-length, data-length) arrays. It returns the number of
// bytes consumed, i.e. the file's declared header length.
func (fh *FileHeader) Parse(data []byte, engine endian.EndianEngine) (int, error) {
	offset := 0

	readField := func(f *field.Field) error {
		if offset+f.Len() > len(data) {
			return fmt.Errorf("record: file header truncated at offset %d: %w", offset, errs.ErrInvalidHeaderSize)
		}

		if err := f.SetRaw(data[offset : offset+f.Len()]); err != nil {
			return err
		}

		offset += f.Len()

		return nil
	}

	for _, f := range []*field.Field{
		fh.FileProfile, fh.FileVersion, fh.Complexity, fh.SystemType,
		fh.OriginatingStation, fh.FileDateTime, fh.FileTitle,
	} {
		if err := readField(f); err != nil {
			return 0, err
		}
	}

	if offset+SecurityBlockSize > len(data) {
		return 0, fmt.Errorf("record: file header truncated at security block: %w", errs.ErrInvalidHeaderSize)
	}

	if err := fh.Security.Parse(data[offset : offset+SecurityBlockSize]); err != nil {
		return 0, err
	}

	offset += SecurityBlockSize

	for _, f := range []*field.Field{
		fh.EncryptionFlag, fh.BackgroundColor, fh.OriginatorName, fh.OriginatorPhone,
		fh.FileLength, fh.HeaderLength,
	} {
		if err := readField(f); err != nil {
			return 0, err
		}
	}

	fh.counts = make(map[SegmentKind]int)
	fh.lengths = make(map[SegmentKind][][2]int)

	for _, kind := range []SegmentKind{Image, Graphic, Text, DES, RES} {
		w := widthsByKind[kind]

		count := field.New(field.BCSN, w.count)
		if err := readField(count); err != nil {
			return 0, err
		}

		n, err := count.AsUint(engine)
		if err != nil {
			return 0, err
		}

		fh.counts[kind] = int(n)
		entries := make([][2]int, 0, n)

		for i := uint64(0); i < n; i++ {
			sh := field.New(field.BCSN, w.subheaderLen)
			if err := readField(sh); err != nil {
				return 0, err
			}

			dl := field.New(field.BCSN, w.dataLen)
			if err := readField(dl); err != nil {
				return 0, err
			}

			shVal, err := sh.AsUint(engine)
			if err != nil {
				return 0, err
			}

			dlVal, err := dl.AsUint(engine)
			if err != nil {
				return 0, err
			}

			entries = append(entries, [2]int{int(shVal), int(dlVal)})
		}

		fh.lengths[kind] = entries
	}

	return offset, nil
}

// Clone returns a deep, independently-owned copy of the file header.
func (fh *FileHeader) Clone() *FileHeader {
	clone := NewFileHeader()
	_ = clone.FileProfile.SetRaw(fh.FileProfile.Bytes())
	_ = clone.FileVersion.SetRaw(fh.FileVersion.Bytes())
	_ = clone.Complexity.SetRaw(fh.Complexity.Bytes())
	_ = clone.SystemType.SetRaw(fh.SystemType.Bytes())
	_ = clone.OriginatingStation.SetRaw(fh.OriginatingStation.Bytes())
	_ = clone.FileDateTime.SetRaw(fh.FileDateTime.Bytes())
	_ = clone.FileTitle.SetRaw(fh.FileTitle.Bytes())
	clone.Security = fh.Security.Clone()
	_ = clone.EncryptionFlag.SetRaw(fh.EncryptionFlag.Bytes())
	_ = clone.BackgroundColor.SetRaw(fh.BackgroundColor.Bytes())
	_ = clone.OriginatorName.SetRaw(fh.OriginatorName.Bytes())
	_ = clone.OriginatorPhone.SetRaw(fh.OriginatorPhone.Bytes())
	_ = clone.FileLength.SetRaw(fh.FileLength.Bytes())
	_ = clone.HeaderLength.SetRaw(fh.HeaderLength.Bytes())

	clone.counts = make(map[SegmentKind]int, len(fh.counts))
	clone.lengths = make(map[SegmentKind][][2]int, len(fh.lengths))

	for kind, n := range fh.counts {
		clone.counts[kind] = n
	}

	for kind, entries := range fh.lengths {
		cloned := make([][2]int, len(entries))
		copy(cloned, entries)
		clone.lengths[kind] = cloned
	}

	return clone
}
