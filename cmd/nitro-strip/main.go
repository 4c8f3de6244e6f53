// Command nitro-strip removes every image segment whose IREP field is
// NODISPLY from a NITF file, aborting rather than writing a file with
// zero remaining images.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nitro-go/nitro"
	"github.com/nitro-go/nitro/errs"
)

const nonDisplayRepresentation = "NODISPLY"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <input.ntf> <output.ntf>\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	inputPath, outputPath := flag.Arg(0), flag.Arg(1)

	rec, err := nitro.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nitro-strip: reading %s: %v\n", inputPath, err)
		os.Exit(1)
	}

	var keep int

	for i := 0; i < len(rec.Images); i++ {
		rep, err := rec.Images[i].Subheader.Representation.AsString()
		if err != nil {
			fmt.Fprintf(os.Stderr, "nitro-strip: reading IREP: %v\n", err)
			os.Exit(1)
		}

		if rep == nonDisplayRepresentation {
			if err := rec.RemoveImageSegment(i); err != nil {
				fmt.Fprintf(os.Stderr, "nitro-strip: removing image segment %d: %v\n", i, err)
				os.Exit(1)
			}

			i--

			continue
		}

		keep++
	}

	if keep == 0 {
		fmt.Fprintf(os.Stderr, "nitro-strip: %v\n", errs.ErrAllSegmentsRemoved)
		os.Exit(1)
	}

	if err := nitro.WriteFile(outputPath, rec); err != nil {
		fmt.Fprintf(os.Stderr, "nitro-strip: writing %s: %v\n", outputPath, err)
		os.Exit(1)
	}
}
