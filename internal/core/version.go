package core

import (
	"strconv"
	"strings"
)

// LatestToken resolves to whatever is the single greatest version
// available for a dependency at scan time.
const LatestToken = "LATEST"

// VersionSpec is a parsed dependency version constraint. A constraint is
// a dot-separated sequence of components, optionally terminated by "+"
// ("this value or any greater value"), or the literal LATEST token.
//
// The open-ended form is prefix-unbounded: "1.2.3+" accepts any version
// >= 1.2.3 including higher majors, so against {1.2.3, 1.2.4, 1.3.0} the
// best match is 1.3.0.
type VersionSpec struct {
	Raw        string
	Components []string
	OpenEnded  bool
	Latest     bool
}

// ParseVersionSpec parses a constraint string. It never fails: malformed
// components are carried through and compare below any well-formed one.
func ParseVersionSpec(text string) VersionSpec {
	raw := strings.TrimSpace(text)
	spec := VersionSpec{Raw: raw}
	if raw == LatestToken {
		spec.Latest = true
		return spec
	}
	base := raw
	if strings.HasSuffix(base, "+") {
		spec.OpenEnded = true
		base = strings.TrimSuffix(base, "+")
		base = strings.TrimSuffix(base, ".")
	}
	if base != "" {
		spec.Components = strings.Split(base, ".")
	}
	return spec
}

// Base returns the constraint without its open-ended marker,
// e.g. "1.2.+" -> "1.2".
func (s VersionSpec) Base() string {
	return strings.Join(s.Components, ".")
}

func (s VersionSpec) String() string {
	return s.Raw
}

// Satisfies reports whether a concrete version satisfies this
// constraint. Exact constraints match component-wise with implied
// trailing zeros; open-ended constraints accept anything not below the
// base. LATEST accepts every version, the maximum being selected at the
// dependency level.
func (s VersionSpec) Satisfies(candidate string) bool {
	if s.Latest {
		return true
	}
	cmp := compareComponents(splitVersion(candidate), s.Components)
	if s.OpenEnded {
		return cmp >= 0
	}
	return cmp == 0
}

// CompareVersions orders two concrete version strings, returning -1, 0,
// or 1. Comparison is component-wise: a component pair is compared
// numerically when both sides parse as integers and ordinally otherwise;
// missing trailing components count as zero.
func CompareVersions(a string, b string) int {
	return compareComponents(splitVersion(a), splitVersion(b))
}

func splitVersion(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return strings.Split(value, ".")
}

func compareComponents(a []string, b []string) int {
	length := len(a)
	if len(b) > length {
		length = len(b)
	}
	for i := 0; i < length; i++ {
		left := "0"
		if i < len(a) {
			left = a[i]
		}
		right := "0"
		if i < len(b) {
			right = b[i]
		}
		if cmp := compareComponent(left, right); cmp != 0 {
			return cmp
		}
	}
	return 0
}

// compareComponent compares one component pair. Both numeric compares
// numerically, both non-numeric compares ordinally. In a mixed pair the
// non-numeric side orders below the numeric one, so malformed or
// qualifier components sit deterministically under plain numbers.
func compareComponent(a string, b string) int {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		if an < bn {
			return -1
		}
		if an > bn {
			return 1
		}
		return 0
	case aerr == nil:
		return 1
	case berr == nil:
		return -1
	default:
		return strings.Compare(a, b)
	}
}
