// Package nitro is the root façade over NITRO's NITF container engine:
// it drives a whole file through the lower-level record/tre/imageio
// packages rather than making callers assemble the file header, every
// subheader, and every segment's Extensions by hand.
//
// # Basic usage
//
//	rec, err := nitro.ReadFile("input.ntf")
//	rec.FileHeader.FileTitle.SetString("NEW TITLE")
//	err = nitro.WriteFile("output.ntf", rec)
package nitro

import (
	"fmt"
	"io"
	"os"

	"github.com/nitro-go/nitro/endian"
	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/iostream"
	"github.com/nitro-go/nitro/record"
	"github.com/nitro-go/nitro/tre"
)

// NewRegistry returns a TRE registry pre-loaded with NITRO's bundled
// descriptors, backed by an empty static provider. No environment
// variable is read and no plugin directory is searched.
func NewRegistry() *tre.Registry {
	provider := iostream.NewStaticProvider()
	reg := tre.NewRegistry(provider)
	tre.RegisterBundled(reg)

	return reg
}

// Create returns an empty, version-defaulted Record backed by a fresh
// bundled registry.
func Create() *record.Record {
	return record.NewRecord(NewRegistry())
}

// Read parses an entire NITF file from ch: the file header, then each
// declared segment's subheader and data block in file order. registry
// resolves each segment's Extensions section; pass nil to get a fresh
// NewRegistry().
func Read(ch iostream.Channel, registry *tre.Registry) (*record.Record, error) {
	if registry == nil {
		registry = NewRegistry()
	}

	size, err := ch.Size()
	if err != nil {
		return nil, fmt.Errorf("nitro: stat: %w", err)
	}

	buf := make([]byte, size)
	if _, err := ch.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("nitro: seeking to start: %w", errs.ErrSeeking)
	}

	if _, err := io.ReadFull(ch, buf); err != nil {
		return nil, fmt.Errorf("nitro: reading file: %w", errs.ErrReadingFromFile)
	}

	engine := endian.GetBigEndianEngine()

	rec := record.NewRecord(registry)

	headerLen, err := rec.FileHeader.Parse(buf, engine)
	if err != nil {
		return nil, err
	}

	offset := headerLen

	// Segments are appended directly rather than through the Record's
	// New*Segment mutators: the parsed file header already carries the
	// counts and length tables, and the mutators would grow them again.
	for i := 0; i < rec.FileHeader.Count(record.Image); i++ {
		subheaderLen, dataLen, err := rec.FileHeader.SegmentLengths(record.Image, i)
		if err != nil {
			return nil, err
		}

		sh, consumed, err := record.ParseImageSubheader(buf[offset:offset+subheaderLen], registry)
		if err != nil {
			return nil, fmt.Errorf("nitro: image segment %d subheader: %w", i, err)
		}

		if consumed != subheaderLen {
			return nil, fmt.Errorf("nitro: image segment %d subheader declared %d bytes, parsed %d: %w", i, subheaderLen, consumed, errs.ErrInvalidHeaderSize)
		}

		offset += subheaderLen
		data := append([]byte(nil), buf[offset:offset+dataLen]...)
		offset += dataLen

		rec.Images = append(rec.Images, &record.ImageSegment{Subheader: sh, Data: data})
	}

	for i := 0; i < rec.FileHeader.Count(record.Graphic); i++ {
		subheaderLen, dataLen, err := rec.FileHeader.SegmentLengths(record.Graphic, i)
		if err != nil {
			return nil, err
		}

		sh, _, err := record.ParseGraphicSubheader(buf[offset:offset+subheaderLen], registry)
		if err != nil {
			return nil, fmt.Errorf("nitro: graphic segment %d subheader: %w", i, err)
		}

		offset += subheaderLen
		data := append([]byte(nil), buf[offset:offset+dataLen]...)
		offset += dataLen

		rec.Graphics = append(rec.Graphics, &record.GraphicSegment{Subheader: sh, Data: data})
	}

	for i := 0; i < rec.FileHeader.Count(record.Text); i++ {
		subheaderLen, dataLen, err := rec.FileHeader.SegmentLengths(record.Text, i)
		if err != nil {
			return nil, err
		}

		sh, _, err := record.ParseTextSubheader(buf[offset:offset+subheaderLen], registry)
		if err != nil {
			return nil, fmt.Errorf("nitro: text segment %d subheader: %w", i, err)
		}

		offset += subheaderLen
		data := append([]byte(nil), buf[offset:offset+dataLen]...)
		offset += dataLen

		rec.Texts = append(rec.Texts, &record.TextSegment{Subheader: sh, Data: data})
	}

	for i := 0; i < rec.FileHeader.Count(record.DES); i++ {
		subheaderLen, dataLen, err := rec.FileHeader.SegmentLengths(record.DES, i)
		if err != nil {
			return nil, err
		}

		sh, _, err := record.ParseDESubheader(buf[offset : offset+subheaderLen])
		if err != nil {
			return nil, fmt.Errorf("nitro: DES %d subheader: %w", i, err)
		}

		offset += subheaderLen
		data := append([]byte(nil), buf[offset:offset+dataLen]...)
		offset += dataLen

		rec.DES = append(rec.DES, &record.DESegment{Subheader: sh, Data: data})
	}

	for i := 0; i < rec.FileHeader.Count(record.RES); i++ {
		subheaderLen, dataLen, err := rec.FileHeader.SegmentLengths(record.RES, i)
		if err != nil {
			return nil, err
		}

		sh, _, err := record.ParseRESubheader(buf[offset : offset+subheaderLen])
		if err != nil {
			return nil, fmt.Errorf("nitro: RES %d subheader: %w", i, err)
		}

		offset += subheaderLen
		data := append([]byte(nil), buf[offset:offset+dataLen]...)
		offset += dataLen

		rec.RES = append(rec.RES, &record.RESegment{Subheader: sh, Data: data})
	}

	return rec, nil
}

// Write serializes rec's entire contents to ch in NITF file order: it
// recomputes every segment's recorded lengths and the file header's
// FileLength/HeaderLength via Record.ComputeOffsets, then streams the
// file header, each subheader, and each segment's data.
func Write(ch iostream.Channel, rec *record.Record) error {
	if err := rec.ComputeOffsets(); err != nil {
		return err
	}

	engine := endian.GetBigEndianEngine()
	registry := rec.Registry()

	if _, err := ch.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("nitro: seeking to start: %w", errs.ErrSeeking)
	}

	write := func(b []byte) error {
		if _, err := ch.Write(b); err != nil {
			return fmt.Errorf("nitro: writing: %w", errs.ErrWritingToFile)
		}

		return nil
	}

	if err := write(rec.FileHeader.Bytes(engine)); err != nil {
		return err
	}

	for _, seg := range rec.Images {
		b, err := seg.Subheader.Bytes(registry)
		if err != nil {
			return err
		}

		if err := write(b); err != nil {
			return err
		}

		if err := write(seg.Data); err != nil {
			return err
		}
	}

	for _, seg := range rec.Graphics {
		b, err := seg.Subheader.Bytes(registry)
		if err != nil {
			return err
		}

		if err := write(b); err != nil {
			return err
		}

		if err := write(seg.Data); err != nil {
			return err
		}
	}

	for _, seg := range rec.Texts {
		b, err := seg.Subheader.Bytes(registry)
		if err != nil {
			return err
		}

		if err := write(b); err != nil {
			return err
		}

		if err := write(seg.Data); err != nil {
			return err
		}
	}

	for _, seg := range rec.DES {
		b, err := seg.Subheader.Bytes()
		if err != nil {
			return err
		}

		if err := write(b); err != nil {
			return err
		}

		if err := write(seg.Data); err != nil {
			return err
		}
	}

	for _, seg := range rec.RES {
		b, err := seg.Subheader.Bytes()
		if err != nil {
			return err
		}

		if err := write(b); err != nil {
			return err
		}

		if err := write(seg.Data); err != nil {
			return err
		}
	}

	return nil
}

// ReadFile opens path and parses it as a NITF file using a fresh bundled
// registry.
func ReadFile(path string) (*record.Record, error) {
	ch, err := iostream.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("nitro: opening %s: %w", path, errs.ErrReadingFromFile)
	}
	defer ch.Close()

	return Read(ch, nil)
}

// WriteFile serializes rec to a newly created file at path.
func WriteFile(path string, rec *record.Record) error {
	ch, err := iostream.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("nitro: creating %s: %w", path, errs.ErrWritingToFile)
	}
	defer ch.Close()

	return Write(ch, rec)
}
