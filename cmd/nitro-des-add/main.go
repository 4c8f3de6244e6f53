// Command nitro-des-add appends a TEST_DES data extension segment to a
// NITF file: a fixed type-id/version/security triple, a three-field
// user-defined subheader, and a 16-byte literal payload, written back
// to a new file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nitro-go/nitro"
)

const (
	testDESTypeID  = "TEST_DES"
	testDESVersion = "01"
	testDESPayload = "123456789ABCDEF0"
)

// testDESFields lays out the "TEST DES" user-defined subheader as three
// fixed-width ASCII fields, concatenated in declaration order with no
// separators: COUNT (2), START (3), INCREMENT (2).
var testDESFields = []struct {
	name  string
	width int
	value string
}{
	{"TEST_DES_COUNT", 2, "16"},
	{"TEST_DES_START", 3, "065"},
	{"TEST_DES_INCREMENT", 2, "01"},
}

func encodeTestDESFields() []byte {
	var out []byte
	for _, f := range testDESFields {
		out = append(out, []byte(f.value)...)
	}

	return out
}

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
		fmt.Fprintf(os.Stderr, "nitro-des-add: reading %s: %v\n", inputPath, err)
		os.Exit(1)
	}

	seg, err := rec.NewDataExtensionSegment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "nitro-des-add: adding DES: %v\n", err)
		os.Exit(1)
	}

	_ = seg.Subheader.TypeID.SetString(testDESTypeID)
	_ = seg.Subheader.Version.SetString(testDESVersion)
	_ = seg.Subheader.Security.Classification.SetString("U")
	seg.Subheader.UserDefinedSubheaderFields = encodeTestDESFields()
	seg.Data = []byte(testDESPayload)

	if err := nitro.WriteFile(outputPath, rec); err != nil {
		fmt.Fprintf(os.Stderr, "nitro-des-add: writing %s: %v\n", outputPath, err)
		os.Exit(1)
	}
}
