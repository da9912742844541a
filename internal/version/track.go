// Package version decides version numbers for the zoi release tracks.
package version

import (
	"fmt"
	"strings"
)

// Track is one of the two independent release lines recorded in the status file.
type Track string

const (
	TrackProd Track = "prod"
	TrackDev  Track = "dev"
)

// ParseTrack converts a command line token into a Track.
func ParseTrack(s string) (Track, error) {
	switch Track(s) {
	case TrackProd, TrackDev:
		return Track(s), nil
	default:
		return "", &InvalidTrackError{Value: s}
	}
}

// Key returns the status file key for the track.
func (t Track) Key() string {
	if t == TrackProd {
		return "production"
	}
	return "development"
}

// Branch returns the constants-file branch name matching the track.
func (t Track) Branch() Branch {
	if t == TrackProd {
		return Production
	}
	return Development
}

// Part is the component of a semantic version to increment.
type Part string

const (
	PartMajor Part = "major"
	PartMinor Part = "minor"
	PartPatch Part = "patch"
)

// ParsePart converts a command line token into a Part.
func ParsePart(s string) (Part, error) {
	switch Part(s) {
	case PartMajor, PartMinor, PartPatch:
		return Part(s), nil
	default:
		return "", &InvalidBumpPartError{Value: s}
	}
}

// Branch is the branch name compiled into the product binary.
type Branch string

const (
	Production  Branch = "Production"
	Development Branch = "Development"
)

// ParseBranchToken maps the short command line token (prod, dev) to a Branch.
func ParseBranchToken(s string) (Branch, error) {
	switch Track(s) {
	case TrackProd:
		return Production, nil
	case TrackDev:
		return Development, nil
	default:
		return "", &InvalidBranchTokenError{Value: s}
	}
}

// ParseBranch validates a full branch name as read back from the constants file.
func ParseBranch(s string) (Branch, error) {
	switch Branch(s) {
	case Production, Development:
		return Branch(s), nil
	default:
		return "", &InvalidBranchError{Value: s}
	}
}

// Track returns the release track the branch publishes to.
func (b Branch) Track() Track {
	if b == Production {
		return TrackProd
	}
	return TrackDev
}

// Short returns the abbreviation used in release tags.
func (b Branch) Short() string {
	if b == Production {
		return "Prod"
	}
	return "Dev"
}

// ManifestVersion builds the composite version written to the release manifest,
// e.g. 1.3.0-beta-prod.
func ManifestVersion(number SemVer, status string, t Track) string {
	return fmt.Sprintf("%s-%s-%s", number, strings.ToLower(status), t)
}

// PackageVersion builds the version advertised by package managers, e.g. 3.2.5-beta.
func PackageVersion(number SemVer, status string) string {
	return fmt.Sprintf("%s-%s", number, strings.ToLower(strings.Join(strings.Fields(status), "-")))
}

// ReleaseTag builds the name of the release tag whose downloads the Homebrew
// formula points at, e.g. Prod-Beta-3.2.5.
func ReleaseTag(b Branch, status string, number SemVer) string {
	return fmt.Sprintf("%s-%s-%s", b.Short(), strings.Join(strings.Fields(status), "-"), number)
}
