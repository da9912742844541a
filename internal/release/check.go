package release

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/zillowe/zoi-release/internal/manifest"
	"github.com/zillowe/zoi-release/internal/version"
)

// Report is the version information read back from every artifact.
type Report struct {
	ManifestVersion string
	Branch          version.Branch
	Status          string
	Number          version.SemVer
	Production      manifest.TrackStatus
	Development     manifest.TrackStatus
}

// Constants reads BRANCH, STATUS and NUMBER from the constants file.
func Constants(f *manifest.TextFile) (version.Branch, string, version.SemVer, error) {
	branchStr, ok := f.Lookup(manifest.ConstBranch)
	if !ok {
		return "", "", version.SemVer{}, &MissingDeclarationError{Path: f.Path, Field: string(manifest.FieldBranch)}
	}
	status, ok := f.Lookup(manifest.ConstStatus)
	if !ok {
		return "", "", version.SemVer{}, &MissingDeclarationError{Path: f.Path, Field: string(manifest.FieldStatus)}
	}
	numberStr, ok := f.Lookup(manifest.ConstNumber)
	if !ok {
		return "", "", version.SemVer{}, &MissingDeclarationError{Path: f.Path, Field: string(manifest.FieldNumber)}
	}

	branch, err := version.ParseBranch(branchStr)
	if err != nil {
		return "", "", version.SemVer{}, err
	}
	number, err := version.Validate(numberStr)
	if err != nil {
		return "", "", version.SemVer{}, err
	}
	return branch, status, number, nil
}

// Check reads every artifact and verifies that they describe the same release:
// the constants NUMBER equals the status file version of the track selected by
// the constants BRANCH, and the manifest version starts with that number.
func Check(st *manifest.State) (Report, error) {
	var cargo struct {
		Package struct {
			Version string `toml:"version"`
		} `toml:"package"`
	}
	if _, err := toml.Decode(string(st.Manifest.Bytes()), &cargo); err != nil {
		return Report{}, fmt.Errorf("%s is not valid TOML: %w", st.Manifest.Path, err)
	}

	branch, status, number, err := Constants(st.Constants)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		ManifestVersion: cargo.Package.Version,
		Branch:          branch,
		Status:          status,
		Number:          number,
		Production:      st.Status.Track(manifest.KeyProduction),
		Development:     st.Status.Track(manifest.KeyDevelopment),
	}

	var problems []string
	if r.ManifestVersion == "" {
		problems = append(problems, st.Manifest.Path+" has no package.version")
	} else if !strings.HasPrefix(r.ManifestVersion, number.String()+"-") && r.ManifestVersion != number.String() {
		problems = append(problems, fmt.Sprintf("%s version %s does not start with NUMBER %s",
			st.Manifest.Path, r.ManifestVersion, number))
	}

	track := branch.Track()
	tv := st.Status.Track(track.Key())
	if tv.Version != number.String() {
		problems = append(problems, fmt.Sprintf("%s %s version %s differs from NUMBER %s",
			st.Status.Path, track.Key(), tv.Version, number))
	}

	if len(problems) > 0 {
		return r, &InconsistentStateError{Problems: problems}
	}
	return r, nil
}
