// Command nitro-title rewrites a NITF file's FTITLE field, replacing
// every space with an asterisk, and writes the result to a new file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nitro-go/nitro"
)

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
		fmt.Fprintf(os.Stderr, "nitro-title: reading %s: %v\n", inputPath, err)
		os.Exit(1)
	}

	title, err := rec.FileHeader.FileTitle.AsString()
	if err != nil {
		fmt.Fprintf(os.Stderr, "nitro-title: reading FTITLE: %v\n", err)
		os.Exit(1)
	}

	if err := rec.FileHeader.FileTitle.SetString(strings.ReplaceAll(title, " ", "*")); err != nil {
		fmt.Fprintf(os.Stderr, "nitro-title: setting FTITLE: %v\n", err)
		os.Exit(1)
	}

	if err := nitro.WriteFile(outputPath, rec); err != nil {
		fmt.Fprintf(os.Stderr, "nitro-title: writing %s: %v\n", outputPath, err)
		os.Exit(1)
	}
}
