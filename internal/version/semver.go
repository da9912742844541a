package version

import (
	"github.com/Masterminds/semver/v3"
)

// SemVer is a validated semantic version: major.minor.patch with optional
// pre-release and build metadata.
type SemVer struct {
	v *semver.Version
}

// Validate parses input as a strict semantic version. A leading "v", missing
// components or extra components are rejected.
func Validate(input string) (SemVer, error) {
	v, err := semver.StrictNewVersion(input)
	if err != nil {
		return SemVer{}, &InvalidVersionFormatError{Value: input, Wrapped: err}
	}
	return SemVer{v: v}, nil
}

// MustValidate is like Validate but panics on error. Intended for constants in tests.
func MustValidate(input string) SemVer {
	s, err := Validate(input)
	if err != nil {
		panic(err)
	}
	return s
}

// Major returns the major version.
func (s SemVer) Major() uint64 {
	return s.v.Major()
}

// Minor returns the minor version.
func (s SemVer) Minor() uint64 {
	return s.v.Minor()
}

// Patch returns the patch version.
func (s SemVer) Patch() uint64 {
	return s.v.Patch()
}

// Prerelease returns the pre-release component, if any.
func (s SemVer) Prerelease() string {
	return s.v.Prerelease()
}

// IsZero reports whether s was never set by Validate or Next.
func (s SemVer) IsZero() bool {
	return s.v == nil
}

// Compare returns -1, 0 or 1 as s orders before, equal to or after o.
// Build metadata is ignored.
func (s SemVer) Compare(o SemVer) int {
	return s.v.Compare(o.v)
}

// String returns the canonical x.y.z[-pre][+build] form.
func (s SemVer) String() string {
	if s.v == nil {
		return ""
	}
	return s.v.String()
}

// Next returns the version following current for the given part.
// Pre-release and build metadata are dropped. A pre-release that already sits
// on the boundary of the requested part is released rather than incremented:
// 2.0.0-beta -> 2.0.0 (major), 1.3.0-beta -> 1.3.0 (minor), 1.2.4-0 -> 1.2.4 (patch).
func Next(current string, part Part) (SemVer, error) {
	cur, err := Validate(current)
	if err != nil {
		return SemVer{}, err
	}

	v := cur.v
	pre := v.Prerelease() != ""
	var next semver.Version
	switch part {
	case PartMajor:
		if pre && v.Minor() == 0 && v.Patch() == 0 {
			next = *semver.New(v.Major(), 0, 0, "", "")
		} else {
			next = v.IncMajor()
		}
	case PartMinor:
		if pre && v.Patch() == 0 {
			next = *semver.New(v.Major(), v.Minor(), 0, "", "")
		} else {
			next = v.IncMinor()
		}
	case PartPatch:
		next = v.IncPatch()
	default:
		return SemVer{}, &InvalidBumpPartError{Value: string(part)}
	}
	return SemVer{v: &next}, nil
}
