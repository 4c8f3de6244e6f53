package tre

import "github.com/nitro-go/nitro/field"

// RegisterBundled registers the small set of TRE descriptors NITRO
// ships in-process: IOMAPA (4 length variants) and PATCHA (2 length
// variants), the two tags whose wire format forces variant selection by
// payload length.
//
// Real NITF deployments carry dozens of registered TREs (ACFTB, STREOB,
// CSEXRA, ...); NITRO's bundle is intentionally small. Further descriptors
// are added with RegisterStatic; no environment variable or plugin
// directory is consulted for them.
func RegisterBundled(r *Registry) {
	r.RegisterStatic("IOMAPA", iomapaVariants()...)
	r.RegisterStatic("PATCHA", patchaVariants()...)
}

// iomapaVariants builds IOMAPA's four length variants: 6, 16, 91, and
// 8202 bytes. Each is NO_OF_SEGMENTS (2-byte BCS-N) followed
// by one 1-byte PARAM field per segment, so the variant's total length
// always equals 2 + NO_OF_SEGMENTS.
func iomapaVariants() []DescriptorSet {
	build := func() Descriptor {
		return Descriptor{
			FieldElement("NO_OF_SEGMENTS", "Number of segments", field.BCSN, 2),
			LoopStartFieldRef("SEGMENTS", "NO_OF_SEGMENTS"),
			FieldElement("PARAM", "Segment parameter", field.BCSA, 1),
			LoopEnd(),
			End(),
		}
	}

	lengths := []int{6, 16, 91, 8202}
	sets := make([]DescriptorSet, 0, len(lengths))

	for _, l := range lengths {
		sets = append(sets, DescriptorSet{
			Name:           "IOMAPA",
			ExpectedLength: l,
			Descriptor:     build(),
		})
	}

	return sets
}

// patchaVariants builds PATCHA's two length variants: 74 and 115
// bytes. Each is PATCH_NO (4-byte BCS-N) followed by an opaque
// PATCH_DATA fill field sized to make up the remainder.
func patchaVariants() []DescriptorSet {
	build := func(totalLen int) Descriptor {
		return Descriptor{
			FieldElement("PATCH_NO", "Patch number", field.BCSN, 4),
			FieldElement("PATCH_DATA", "Patch payload", field.BCSA, totalLen-4),
			End(),
		}
	}

	lengths := []int{74, 115}
	sets := make([]DescriptorSet, 0, len(lengths))

	for _, l := range lengths {
		sets = append(sets, DescriptorSet{
			Name:           "PATCHA",
			ExpectedLength: l,
			Descriptor:     build(l),
		})
	}

	return sets
}
