package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zillowe/zoi-release/internal/config"
	"github.com/zillowe/zoi-release/internal/formula"
	"github.com/zillowe/zoi-release/internal/manifest"
	"github.com/zillowe/zoi-release/internal/release"
	"github.com/zillowe/zoi-release/internal/version"
)

const testCargo = `[package]
name = "zoi"
version = "1.2.3-beta-prod"
edition = "2024"

[dependencies]
clap = { version = "4.5", features = ["derive"] }
`

const testConstants = `use clap::Parser;

const BRANCH: &str = "Production";
const STATUS: &str = "Beta";
const NUMBER: &str = "1.2.3";

fn main() {}
`

const testStatus = `{
  "latest": {
    "production": {
      "version": "1.2.3",
      "status": "beta"
    },
    "development": {
      "version": "1.5.0",
      "status": "alpha"
    }
  }
}
`

const testFormula = `class Zoi < Formula
  version "1.2.3-beta"
  _tag = "Prod-Beta-1.2.3"

  on_linux do
    url "https://gitlab.com/Zillowe/Zillwen/Zusty/Zoi/-/releases/#{_tag}/downloads/zoi-linux-amd64.tar.zst"
    sha512 "00"
  end
end
`

// writeRepo lays out a repository with every release artifact at its default location.
func writeRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		config.DefaultManifest:  testCargo,
		config.DefaultConstants: testConstants,
		config.DefaultStatus:    testStatus,
		config.DefaultFormula:   testFormula,
	}
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return dir
}

func readRepoFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

// newTestManager builds a CLIManager over dir whose log output is returned.
func newTestManager(t *testing.T, dir string, strict bool, g *MockGitter) (*CLIManager, *bytes.Buffer) {
	t.Helper()
	cfg, err := config.New(dir)
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	ll := &slog.LevelVar{}
	logger := slog.New(newConsoleHandler(logs, ll, false))
	if g == nil {
		g = &MockGitter{}
	}
	store := manifest.NewStore(cfg.ArtifactPaths(), logger)
	return NewCLIManager(logger, store, release.NewSyncer(logger, strict), g), logs
}

// execCmd runs a single command with the given arguments and returns its output.
func execCmd(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

type MockManager struct {
	mock.Mock
}

func (m *MockManager) Bump(ctx context.Context, t version.Track, part version.Part) (version.SemVer, error) {
	args := m.Called(ctx, t, part)
	v, _ := args.Get(0).(version.SemVer)
	return v, args.Error(1)
}

func (m *MockManager) SetBranch(ctx context.Context, b version.Branch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockManager) SetStatus(ctx context.Context, status string) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockManager) SetNumber(ctx context.Context, n version.SemVer) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockManager) Check(ctx context.Context) (release.Report, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(release.Report)
	return r, args.Error(1)
}

func (m *MockManager) Tag(ctx context.Context, push bool) (string, error) {
	args := m.Called(ctx, push)
	return args.String(0), args.Error(1)
}

func (m *MockManager) SyncFormula(ctx context.Context, artifactsDir string) (formula.Result, error) {
	args := m.Called(ctx, artifactsDir)
	r, _ := args.Get(0).(formula.Result)
	return r, args.Error(1)
}

func (m *MockManager) WatchCheck(ctx context.Context, onReport func(release.Report, error),
	readyChan chan<- struct{},
) error {
	args := m.Called(ctx, onReport, readyChan)
	return args.Error(0)
}

// MockGitter is a test mock for the repo.Gitter interface.
type MockGitter struct {
	TagExistsFunc  func(tag string) (bool, error)
	TagReleaseFunc func(tag, message string) error
	PushTagFunc    func(remote, tag string) error

	tagged []string
	pushed []string
}

func (m *MockGitter) TagExists(_ context.Context, tag string) (bool, error) {
	if m.TagExistsFunc != nil {
		return m.TagExistsFunc(tag)
	}
	return false, nil
}

func (m *MockGitter) TagRelease(_ context.Context, tag, message string) error {
	m.tagged = append(m.tagged, tag+": "+message)
	if m.TagReleaseFunc != nil {
		return m.TagReleaseFunc(tag, message)
	}
	return nil
}

func (m *MockGitter) PushTag(_ context.Context, remote, tag string) error {
	m.pushed = append(m.pushed, remote+" "+tag)
	if m.PushTagFunc != nil {
		return m.PushTagFunc(remote, tag)
	}
	return nil
}
