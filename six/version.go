package six

import (
	"fmt"
	"strings"

	"github.com/nitro-go/nitro/errs"
)

// Family identifies which of the three product families a namespace URI
// names.
type Family int

const (
	FamilyUnknown Family = iota
	FamilySICD
	FamilySIDD
	FamilyCPHD
)

func (f Family) String() string {
	switch f {
	case FamilySICD:
		return "SICD"
	case FamilySIDD:
		return "SIDD"
	case FamilyCPHD:
		return "CPHD"
	default:
		return "Unknown"
	}
}

// Version is a three-component product schema version, ordered the way
// the version updater steps through migrations.
type Version struct {
	Major, Minor, Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Less reports whether v sorts before o, used by the version updater to
// walk migrations in order.
func (v Version) Less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Patch < o.Patch
}

// namespacePrefixes maps a known family's URI prefix to its Family, the
// table ParseNamespace consults.
var namespacePrefixes = map[string]Family{
	"urn:SICD:": FamilySICD,
	"urn:SIDD:": FamilySIDD,
	"urn:CPHD:": FamilyCPHD,
}

// ParseNamespace extracts the product Family and Version a root-element
// namespace URI declares, e.g. "urn:SICD:1.2.1" -> (FamilySICD,
// {1,2,1}). Returns errs.ErrUnknownVersion when the URI matches no known
// family prefix or its version suffix does not parse as three dotted
// integers.
func ParseNamespace(uri string) (Family, Version, error) {
	for prefix, family := range namespacePrefixes {
		if !strings.HasPrefix(uri, prefix) {
			continue
		}

		v, err := parseVersionSuffix(strings.TrimPrefix(uri, prefix))
		if err != nil {
			return FamilyUnknown, Version{}, fmt.Errorf("six: parsing version in namespace %q: %w", uri, err)
		}

		return family, v, nil
	}

	return FamilyUnknown, Version{}, fmt.Errorf("six: unrecognized product namespace %q: %w", uri, errs.ErrUnknownVersion)
}

func parseVersionSuffix(suffix string) (Version, error) {
	parts := strings.Split(suffix, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("six: version suffix %q is not three dotted integers: %w", suffix, errs.ErrUnknownVersion)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := parseNonNegativeInt(p)
		if err != nil {
			return Version{}, fmt.Errorf("six: version suffix %q: %w", suffix, errs.ErrUnknownVersion)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func parseNonNegativeInt(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty component")
	}

	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit %q", r)
		}
		n = n*10 + int(r-'0')
	}

	return n, nil
}

// Namespace renders the canonical namespace URI for f at version v, the
// inverse of ParseNamespace, used by emitters to stamp the root element.
func Namespace(f Family, v Version) string {
	switch f {
	case FamilySICD:
		return "urn:SICD:" + v.String()
	case FamilySIDD:
		return "urn:SIDD:" + v.String()
	case FamilyCPHD:
		return "urn:CPHD:" + v.String()
	default:
		return ""
	}
}
