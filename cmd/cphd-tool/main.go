// Command cphd-tool inspects and round-trips a CPHD side-car file: it
// parses the text header, optionally dumps it,
// and can re-emit the header and copy the XML/vector-block/wideband
// sections through to a new file with freshly computed byte offsets.
//
// Usage:
//
//	cphd-tool dump <input.cphd>
//	cphd-tool roundtrip <input.cphd> <output.cphd>
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nitro-go/nitro/cphd"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s dump <input.cphd>\n       %s roundtrip <input.cphd> <output.cphd>\n", os.Args[0], os.Args[0])
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	var err error

	switch flag.Arg(0) {
	case "dump":
		if flag.NArg() != 2 {
			flag.Usage()
			os.Exit(1)
		}

		err = dump(flag.Arg(1))
	case "roundtrip":
		if flag.NArg() != 3 {
			flag.Usage()
			os.Exit(1)
		}

		err = roundtrip(flag.Arg(1), flag.Arg(2))
	default:
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "cphd-tool: %v\n", err)
		os.Exit(1)
	}
}

func dump(inputPath string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer f.Close()

	h, _, err := cphd.ParseHeader(f)
	if err != nil {
		return fmt.Errorf("parsing header: %w", err)
	}

	fmt.Printf("Version:        %s\n", h.Version)
	fmt.Printf("XML:            %d bytes @ %d\n", h.XMLDataSize, h.XMLByteOffset)
	fmt.Printf("VectorBlock:    %d bytes @ %d\n", h.VBDataSize, h.VBByteOffset)
	fmt.Printf("Wideband:       %d bytes @ %d\n", h.CPHDDataSize, h.CPHDByteOffset)

	if h.Classification != "" {
		fmt.Printf("Classification: %s\n", h.Classification)
	}

	if h.ReleaseInfo != "" {
		fmt.Printf("ReleaseInfo:    %s\n", h.ReleaseInfo)
	}

	for k, v := range h.Extra {
		fmt.Printf("%s: %s\n", k, v)
	}

	return nil
}

// roundtrip re-emits a CPHD file's header and copies its XML, per-vector
// parameter block, and wideband signal array through unmodified, then
// recomputes the header's byte offsets against the new header length.
// The three sections follow the header in fixed order.
func roundtrip(inputPath, outputPath string) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer in.Close()

	h, headerLen, err := cphd.ParseHeader(in)
	if err != nil {
		return fmt.Errorf("parsing header: %w", err)
	}

	// ParseHeader reads through a buffered reader whose readahead is
	// discarded, so reposition to the first byte past the header before
	// copying the sections out.
	if _, err := in.Seek(headerLen, io.SeekStart); err != nil {
		return fmt.Errorf("seeking past header: %w", err)
	}

	xmlData := make([]byte, h.XMLDataSize)
	if _, err := io.ReadFull(in, xmlData); err != nil {
		return fmt.Errorf("reading XML section: %w", err)
	}

	vbData := make([]byte, h.VBDataSize)
	if _, err := io.ReadFull(in, vbData); err != nil {
		return fmt.Errorf("reading vector block section: %w", err)
	}

	wbData := make([]byte, h.CPHDDataSize)
	if _, err := io.ReadFull(in, wbData); err != nil {
		return fmt.Errorf("reading wideband section: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer out.Close()

	// The header's own length depends on the recomputed offsets (their
	// decimal rendering can gain a digit), so iterate to the fixed point.
	for {
		l := int64(len(h.Emit()))
		h.ComputeOffsets(l)

		if int64(len(h.Emit())) == l {
			break
		}
	}

	if _, err := out.Write(h.Emit()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if _, err := out.Write(xmlData); err != nil {
		return fmt.Errorf("writing XML section: %w", err)
	}

	if _, err := out.Write(vbData); err != nil {
		return fmt.Errorf("writing vector block section: %w", err)
	}

	if _, err := out.Write(wbData); err != nil {
		return fmt.Errorf("writing wideband section: %w", err)
	}

	return nil
}
