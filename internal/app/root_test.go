package app

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zillowe/zoi-release/internal/fs"
	"github.com/zillowe/zoi-release/internal/version"
)

func TestRootCmd(t *testing.T) {
	t.Parallel()

	setup := func() (*slog.LevelVar, *cobra.Command, *bytes.Buffer) {
		lazy := &LazyManager{inner: &MockManager{}}
		logLevel := &slog.LevelVar{}
		var out, stderr bytes.Buffer
		rootCmd := NewRootCmd(lazy, logLevel, &stderr, fs.MapEnvProvider{})
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		return logLevel, rootCmd, &out
	}

	t.Run("execute help", func(t *testing.T) {
		t.Parallel()
		_, rootCmd, out := setup()
		rootCmd.SetArgs([]string{"--help"})
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, out.String(), "Cargo.toml")
		for _, name := range []string{"bump", "set", "check", "tag", "formula", "init"} {
			assert.Contains(t, out.String(), name)
		}
	})

	t.Run("test version flag", func(t *testing.T) {
		t.Parallel()
		_, rootCmd, out := setup()
		rootCmd.SetArgs([]string{"--version"})
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, out.String(), Version)
	})

	t.Run("test debug flag", func(t *testing.T) {
		t.Parallel()
		logLevel, rootCmd, _ := setup()
		rootCmd.SetArgs([]string{"--debug"})
		require.NoError(t, rootCmd.Execute())
		assert.Equal(t, slog.LevelDebug, logLevel.Level())
	})

	t.Run("test completion subcommand skips manager init", func(t *testing.T) {
		t.Parallel()
		lazy := &LazyManager{}
		var stderr bytes.Buffer
		rootCmd := NewRootCmd(lazy, &slog.LevelVar{}, &stderr,
			fs.MapEnvProvider{fs.RootEnvVar: "/non/existent/path"})
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetArgs([]string{"completion", "zsh"})
		require.NoError(t, rootCmd.Execute())
		assert.False(t, lazy.HasInner(), "manager should not have been initialised")
	})

	t.Run("test init subcommand skips manager init", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		lazy := &LazyManager{}
		rootCmd := NewRootCmd(lazy, &slog.LevelVar{}, &bytes.Buffer{}, fs.MapEnvProvider{})
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetArgs([]string{"init", "--root", dir})
		require.NoError(t, rootCmd.Execute())
		assert.False(t, lazy.HasInner())
		assert.FileExists(t, filepath.Join(dir, ".zoi-release.yml"))
	})

	t.Run("test unknown command skips manager init", func(t *testing.T) {
		t.Parallel()
		lazy := &LazyManager{}
		var stderr, out bytes.Buffer
		rootCmd := NewRootCmd(lazy, &slog.LevelVar{}, &stderr,
			fs.MapEnvProvider{fs.RootEnvVar: "/non/existent/path"})
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&stderr)
		rootCmd.SetArgs([]string{"--nocolour", "publish"})
		require.NoError(t, rootCmd.Execute())
		assert.False(t, lazy.HasInner())
		assert.Equal(t, "Unknown command: 'publish'\n", stderr.String())
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("test alternate flag spellings", func(t *testing.T) {
		t.Parallel()
		variants := []string{"--nocolor", "--noColor", "--noColour", "-c"}
		for _, variant := range variants {
			t.Run(variant, func(t *testing.T) {
				t.Parallel()
				_, rootCmd, _ := setup()
				rootCmd.SetArgs([]string{"help", variant})
				require.NoError(t, rootCmd.Execute(), "Flag %s should be recognised", variant)
			})
		}
	})

	t.Run("test injected manager is used", func(t *testing.T) {
		t.Parallel()
		m := &MockManager{}
		m.On("SetBranch", mock.Anything, version.Production).Return(nil)
		rootCmd := NewRootCmd(&LazyManager{inner: m}, &slog.LevelVar{}, &bytes.Buffer{}, fs.MapEnvProvider{})
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"set", "branch", "prod"})
		require.NoError(t, rootCmd.Execute())
		assert.Equal(t, "branch is now Production\n", out.String())
		m.AssertExpectations(t)
	})

	t.Run("test hydration from the environment", func(t *testing.T) {
		t.Parallel()
		dir := writeRepo(t)
		logFile := filepath.Join(t.TempDir(), "release.log")
		lazy := &LazyManager{}
		var stderr bytes.Buffer
		rootCmd := NewRootCmd(lazy, &slog.LevelVar{}, &stderr,
			fs.MapEnvProvider{fs.RootEnvVar: dir, fs.LogFileEnvVar: logFile})
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"check"})
		require.NoError(t, rootCmd.Execute())
		assert.True(t, lazy.HasInner())
		assert.Contains(t, out.String(), "All release artifacts agree")
		assert.FileExists(t, logFile)
	})

	t.Run("test root flag wins over the environment", func(t *testing.T) {
		t.Parallel()
		dir := writeRepo(t)
		rootCmd := NewRootCmd(&LazyManager{}, &slog.LevelVar{}, &bytes.Buffer{},
			fs.MapEnvProvider{fs.RootEnvVar: "/non/existent/path", fs.LogFileEnvVar: filepath.Join(t.TempDir(), "l")})
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetArgs([]string{"--root", dir, "bump", "dev", "minor"})
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, readRepoFile(t, dir, "Cargo.toml"), `version = "1.6.0-alpha-dev"`)
	})
}
