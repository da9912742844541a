package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zillowe/zoi-release/internal/formula"
	"github.com/zillowe/zoi-release/internal/manifest"
	"github.com/zillowe/zoi-release/internal/release"
	"github.com/zillowe/zoi-release/internal/repo"
	"github.com/zillowe/zoi-release/internal/version"
	"github.com/zillowe/zoi-release/internal/watch"
)

// Manager defines the release operations behind each command.
type Manager interface {
	Bump(ctx context.Context, t version.Track, part version.Part) (version.SemVer, error)
	SetBranch(ctx context.Context, b version.Branch) error
	SetStatus(ctx context.Context, status string) error
	SetNumber(ctx context.Context, n version.SemVer) error
	Check(ctx context.Context) (release.Report, error)
	Tag(ctx context.Context, push bool) (string, error)
	SyncFormula(ctx context.Context, artifactsDir string) (formula.Result, error)
	WatchCheck(ctx context.Context, onReport func(release.Report, error), readyChan chan<- struct{}) error
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation, allowing
// for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// PersistentPreRunE uses it to skip initialization when already configured (e.g., in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) Bump(ctx context.Context, t version.Track, part version.Part) (version.SemVer, error) {
	return l.check().Bump(ctx, t, part)
}

func (l *LazyManager) SetBranch(ctx context.Context, b version.Branch) error {
	return l.check().SetBranch(ctx, b)
}

func (l *LazyManager) SetStatus(ctx context.Context, status string) error {
	return l.check().SetStatus(ctx, status)
}

func (l *LazyManager) SetNumber(ctx context.Context, n version.SemVer) error {
	return l.check().SetNumber(ctx, n)
}

func (l *LazyManager) Check(ctx context.Context) (release.Report, error) {
	return l.check().Check(ctx)
}

func (l *LazyManager) Tag(ctx context.Context, push bool) (string, error) {
	return l.check().Tag(ctx, push)
}

func (l *LazyManager) SyncFormula(ctx context.Context, artifactsDir string) (formula.Result, error) {
	return l.check().SyncFormula(ctx, artifactsDir)
}

func (l *LazyManager) WatchCheck(ctx context.Context, onReport func(release.Report, error),
	readyChan chan<- struct{},
) error {
	return l.check().WatchCheck(ctx, onReport, readyChan)
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface. Every
// operation loads the artifacts it needs, applies the change in memory and only
// then writes.
type CLIManager struct {
	logger *slog.Logger
	store  *manifest.Store
	syncer *release.Syncer
	gitter repo.Gitter
}

func NewCLIManager(l *slog.Logger, s *manifest.Store, sy *release.Syncer, g repo.Gitter) *CLIManager {
	return &CLIManager{
		logger: l,
		store:  s,
		syncer: sy,
		gitter: g,
	}
}

func (m *CLIManager) Bump(_ context.Context, t version.Track, part version.Part) (version.SemVer, error) {
	m.logger.Debug("bumping version", "track", t, "part", part)

	st, err := m.store.Load(release.BumpNeeds...)
	if err != nil {
		return version.SemVer{}, err
	}
	next, err := m.syncer.Bump(st, t, part)
	if err != nil {
		return version.SemVer{}, err
	}
	return next, m.store.Save(st)
}

func (m *CLIManager) SetBranch(_ context.Context, b version.Branch) error {
	m.logger.Debug("setting branch", "branch", b)
	return m.apply(release.SetBranchNeeds, func(st *manifest.State) error {
		return m.syncer.SetBranch(st, b)
	})
}

func (m *CLIManager) SetStatus(_ context.Context, status string) error {
	m.logger.Debug("setting status", "status", status)
	return m.apply(release.SetStatusNeeds, func(st *manifest.State) error {
		return m.syncer.SetStatus(st, status)
	})
}

func (m *CLIManager) SetNumber(_ context.Context, n version.SemVer) error {
	m.logger.Debug("setting number", "number", n)
	return m.apply(release.SetNumberNeeds, func(st *manifest.State) error {
		return m.syncer.SetNumber(st, n)
	})
}

func (m *CLIManager) Check(_ context.Context) (release.Report, error) {
	m.logger.Debug("checking release artifacts")

	st, err := m.store.Load(release.CheckNeeds...)
	if err != nil {
		return release.Report{}, err
	}
	return release.Check(st)
}

func (m *CLIManager) Tag(ctx context.Context, push bool) (string, error) {
	m.logger.Debug("tagging release", "push", push)

	st, err := m.store.Load(release.TagNeeds...)
	if err != nil {
		return "", err
	}
	branch, status, number, err := release.Constants(st.Constants)
	if err != nil {
		return "", err
	}

	tag := version.ReleaseTag(branch, status, number)
	if err = m.gitter.TagRelease(ctx, tag, fmt.Sprintf("%s %s %s", branch, status, number)); err != nil {
		return "", err
	}
	m.logger.Info("Created tag " + tag)

	if !push {
		return tag, nil
	}
	if err = m.gitter.PushTag(ctx, repo.DefaultRemote, tag); err != nil {
		m.logger.Warn("tag was created but could not be pushed", "tag", tag)
		return tag, err
	}
	m.logger.Info("Pushed tag " + tag + " to " + repo.DefaultRemote)
	return tag, nil
}

func (m *CLIManager) SyncFormula(_ context.Context, artifactsDir string) (formula.Result, error) {
	m.logger.Debug("syncing formula", "artifacts", artifactsDir)

	st, err := m.store.Load(release.FormulaNeeds...)
	if err != nil {
		return formula.Result{}, err
	}
	r, err := m.syncer.Formula(st, artifactsDir)
	if err != nil {
		return formula.Result{}, err
	}
	return r, m.store.Save(st)
}

// WatchCheck re-runs Check whenever one of the checked artifacts changes and
// hands each result to onReport. If you want to know when the watcher is ready
// to start listening to changes, pass a non-nil readyChan to be notified.
func (m *CLIManager) WatchCheck(ctx context.Context, onReport func(release.Report, error),
	readyChan chan<- struct{},
) error {
	p := m.store.Paths()
	watcher := watch.New([]string{p.Manifest, p.Constants, p.Status}, m.logger)

	callback := func(event watch.Event) {
		m.logger.Info("Artifact changed: " + event.Path)
		onReport(m.Check(ctx))
	}

	// Forward watcher Ready signal if caller wants notification
	if readyChan != nil {
		go func() {
			select {
			case <-watcher.Ready:
				readyChan <- struct{}{}
			case <-ctx.Done():
			}
		}()
	}

	return watcher.Watch(ctx, callback)
}

func (m *CLIManager) apply(needs []manifest.Kind, op func(*manifest.State) error) error {
	st, err := m.store.Load(needs...)
	if err != nil {
		return err
	}
	if err = op(st); err != nil {
		return err
	}
	return m.store.Save(st)
}
