// Package release keeps the version recorded in every release artifact in step.
package release

import (
	"log/slog"

	"github.com/zillowe/zoi-release/internal/formula"
	"github.com/zillowe/zoi-release/internal/manifest"
	"github.com/zillowe/zoi-release/internal/version"
)

// Artifacts needed by each operation.
var (
	BumpNeeds      = []manifest.Kind{manifest.KindManifest, manifest.KindConstants, manifest.KindStatus}
	SetBranchNeeds = []manifest.Kind{manifest.KindConstants}
	SetStatusNeeds = []manifest.Kind{manifest.KindConstants, manifest.KindStatus}
	SetNumberNeeds = []manifest.Kind{manifest.KindConstants}
	CheckNeeds     = []manifest.Kind{manifest.KindManifest, manifest.KindConstants, manifest.KindStatus}
	TagNeeds       = []manifest.Kind{manifest.KindConstants}
	FormulaNeeds   = []manifest.Kind{manifest.KindConstants, manifest.KindFormula}
)

// Syncer applies version operations to a loaded manifest.State. It never
// touches the disk; callers persist the state with manifest.Store.Save.
//
// A declaration that cannot be found is skipped. With strict set the skip is
// returned as a *manifest.UnmatchedFieldError instead of a warning.
type Syncer struct {
	logger *slog.Logger
	strict bool
}

func NewSyncer(l *slog.Logger, strict bool) *Syncer {
	return &Syncer{logger: l, strict: strict}
}

// Bump increments the version of track t and records it in the manifest (as the
// composite <version>-<status>-<track>), the constants NUMBER and the status file.
func (s *Syncer) Bump(st *manifest.State, t version.Track, part version.Part) (version.SemVer, error) {
	cur := st.Status.Track(t.Key())
	s.logger.Info("Current version for '" + t.Key() + "': " + cur.Version)

	next, err := version.Next(cur.Version, part)
	if err != nil {
		return version.SemVer{}, err
	}
	s.logger.Info("Bumping '"+string(part)+"' for '"+t.Key()+"'. New version: "+next.String(),
		"track", t, "part", part)

	var misses []manifest.Miss
	mv := version.ManifestVersion(next, cur.Status, t)
	misses = st.Manifest.Edit(manifest.ManifestVersion, mv, misses)
	misses = st.Constants.Edit(manifest.ConstNumber, next.String(), misses)
	if err = s.settle(misses); err != nil {
		return version.SemVer{}, err
	}
	if err = st.Status.SetVersion(t.Key(), next.String()); err != nil {
		return version.SemVer{}, err
	}

	s.logger.Info("Updated " + st.Manifest.Path + " to version " + mv)
	s.logger.Info("Updated constants in " + st.Constants.Path)
	s.logger.Info("Updated " + t.Key() + " data in " + st.Status.Path)
	return next, nil
}

// SetBranch writes the constants BRANCH only.
func (s *Syncer) SetBranch(st *manifest.State, b version.Branch) error {
	s.logger.Info("Setting branch to: " + string(b))
	misses := st.Constants.Edit(manifest.ConstBranch, string(b), nil)
	if err := s.settle(misses); err != nil {
		return err
	}
	s.logger.Info("Updated constants in " + st.Constants.Path)
	return nil
}

// SetStatus writes the constants STATUS and the status of both tracks. The
// status label applies to the whole tool, not to a single track.
func (s *Syncer) SetStatus(st *manifest.State, status string) error {
	s.logger.Info("Setting status to: " + status)
	misses := st.Constants.Edit(manifest.ConstStatus, status, nil)
	if err := s.settle(misses); err != nil {
		return err
	}
	for _, key := range []string{manifest.KeyProduction, manifest.KeyDevelopment} {
		if err := st.Status.SetStatus(key, status); err != nil {
			return err
		}
		s.logger.Info("Updated " + key + " data in " + st.Status.Path)
	}
	s.logger.Info("Updated constants in " + st.Constants.Path)
	return nil
}

// SetNumber writes the bare version to the constants NUMBER only. Unlike Bump it
// leaves the manifest and the status file alone.
func (s *Syncer) SetNumber(st *manifest.State, n version.SemVer) error {
	s.logger.Info("Setting version number to: " + n.String())
	misses := st.Constants.Edit(manifest.ConstNumber, n.String(), nil)
	if err := s.settle(misses); err != nil {
		return err
	}
	s.logger.Info("Updated constants in " + st.Constants.Path)
	return nil
}

// Formula points the Homebrew formula at the release described by the
// constants file. Archive checksums are refreshed from artifactsDir when set.
func (s *Syncer) Formula(st *manifest.State, artifactsDir string) (formula.Result, error) {
	branch, status, number, err := Constants(st.Constants)
	if err != nil {
		return formula.Result{}, err
	}
	u := formula.Update{
		Version:      version.PackageVersion(number, status),
		Tag:          version.ReleaseTag(branch, status, number),
		ArtifactsDir: artifactsDir,
	}
	s.logger.Info("Pointing " + st.Formula.Path + " at " + u.Tag)

	r, err := formula.Sync(st.Formula, u)
	if err != nil {
		return formula.Result{}, err
	}
	if err = s.settle(r.Misses); err != nil {
		return formula.Result{}, err
	}
	for name, sum := range r.Checksums {
		s.logger.Debug("updated checksum", "artifact", name, "sha512", sum)
	}
	for _, name := range r.Skipped {
		s.logger.Warn("artifact not found, checksum left unchanged", "artifact", name)
	}
	return r, nil
}

func (s *Syncer) settle(misses []manifest.Miss) error {
	if len(misses) == 0 {
		return nil
	}
	if s.strict {
		return &manifest.UnmatchedFieldError{Misses: misses}
	}
	for _, m := range misses {
		s.logger.Warn("declaration not found, file left unchanged", "path", m.Path, "field", m.Field)
	}
	return nil
}
