package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0o600))
	return dir
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("missing file uses defaults", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		cfg, err := New(dir)
		require.NoError(t, err)
		assert.Equal(t, DefaultManifest, cfg.Manifest)
		assert.Equal(t, DefaultConstants, cfg.Constants)
		assert.Equal(t, DefaultStatus, cfg.Status)
		assert.Equal(t, DefaultFormula, cfg.Formula)
		assert.Equal(t, dir, cfg.RootDir)
	})

	t.Run("empty file uses defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := New(writeConfig(t, ""))
		require.NoError(t, err)
		assert.Equal(t, DefaultStatus, cfg.Status)
	})

	t.Run("default content round trips", func(t *testing.T) {
		t.Parallel()
		cfg, err := New(writeConfig(t, DefaultConfigContent))
		require.NoError(t, err)
		assert.Equal(t, DefaultManifest, cfg.Manifest)
		assert.Equal(t, DefaultFormula, cfg.Formula)
	})

	t.Run("overrides and partial defaults", func(t *testing.T) {
		t.Parallel()
		dir := writeConfig(t, "manifest: crates/zoi/Cargo.toml\nstatus: \"\"\n")

		cfg, err := New(dir)
		require.NoError(t, err)
		assert.Equal(t, "crates/zoi/Cargo.toml", cfg.Manifest)
		assert.Equal(t, DefaultStatus, cfg.Status)

		p := cfg.ArtifactPaths()
		assert.Equal(t, filepath.Join(dir, "crates", "zoi", "Cargo.toml"), p.Manifest)
		assert.Equal(t, filepath.Join(dir, "src", "main.rs"), p.Constants)
		assert.Equal(t, filepath.Join(dir, "app", "version.json"), p.Status)
		assert.Equal(t, filepath.Join(dir, "packages", "brew", "zoi.rb"), p.Formula)
	})

	errTests := []struct {
		name    string
		content string
		errStr  string
	}{
		{
			name:    "invalid yaml",
			content: "invalid: yaml: :",
			errStr:  ConfigFile + " is not a valid yaml document",
		},
		{
			name:    "unknown property",
			content: "manifest: Cargo.toml\nversion: 1.0.0\n",
			errStr:  "field version not found",
		},
		{
			name:    "wrong type",
			content: "manifest: [a, b]\n",
			errStr:  ConfigFile + " is not a valid yaml document",
		},
		{
			name:    "absolute path",
			content: "constants: /etc/passwd\n",
			errStr:  ConfigFile + " property constants has invalid path '/etc/passwd'",
		},
		{
			name:    "path escaping the root",
			content: "formula: ../zoi.rb\n",
			errStr:  ConfigFile + " property formula has invalid path '../zoi.rb'",
		},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errStr)
		})
	}

	t.Run("yaml error type", func(t *testing.T) {
		t.Parallel()
		_, err := New(writeConfig(t, "invalid: yaml: :"))
		var target *InvalidYAMLError
		require.ErrorAs(t, err, &target)
	})

	t.Run("unreadable config", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, ConfigFile), 0o755))
		_, err := New(dir)
		require.Error(t, err)
	})
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := WriteDefault(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigFile), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigContent, string(data))

	_, err = WriteDefault(dir)
	var target *ConfigExistsError
	require.ErrorAs(t, err, &target)
	assert.EqualError(t, err, path+" already exists")
}
