// Package formula keeps the Homebrew formula pointed at the current release.
package formula

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"github.com/zillowe/zoi-release/internal/manifest"
)

const FieldTag manifest.Field = "_tag"

var (
	// Version is the formula's `version "..."` stanza, e.g. 3.2.5-beta.
	Version = manifest.NewDecl(manifest.FieldVersion, `^\s*version "([^"]*)"`)
	// Tag is the `_tag = "..."` local interpolated into every download url.
	Tag = manifest.NewDecl(FieldTag, `^\s*_tag = "([^"]*)"`)

	urlLine = regexp.MustCompile(`^\s*url "([^"]*)"`)
	shaLine = regexp.MustCompile(`^(\s*sha512 ")([0-9A-Fa-f]*)(".*)$`)
)

// Update describes the release the formula should install.
type Update struct {
	Version string
	Tag     string
	// ArtifactsDir, when set, holds the release archives. Each sha512 stanza
	// following a url whose file name exists there is recomputed.
	ArtifactsDir string
}

// Result lists what Sync changed.
type Result struct {
	Misses []manifest.Miss
	// Checksums maps each rehashed archive name to its new digest.
	Checksums map[string]string
	// Skipped names the archives referenced by the formula but absent from
	// ArtifactsDir.
	Skipped []string
}

// Sync rewrites the version, the tag and, optionally, the archive checksums of f.
func Sync(f *manifest.TextFile, u Update) (Result, error) {
	var r Result
	r.Misses = f.Edit(Version, u.Version, r.Misses)
	r.Misses = f.Edit(Tag, u.Tag, r.Misses)
	if u.ArtifactsDir == "" {
		return r, nil
	}

	r.Checksums = map[string]string{}
	var (
		pending string
		err     error
	)
	f.Rewrite(func(line []byte) ([]byte, bool) {
		if err != nil {
			return nil, false
		}
		if m := urlLine.FindSubmatch(line); m != nil {
			pending = path.Base(string(m[1]))
			return nil, false
		}
		m := shaLine.FindSubmatch(line)
		if m == nil || pending == "" {
			return nil, false
		}
		name := pending
		pending = ""

		sum, cErr := Checksum(filepath.Join(u.ArtifactsDir, name))
		if errors.Is(cErr, fs.ErrNotExist) {
			r.Skipped = append(r.Skipped, name)
			return nil, false
		}
		if cErr != nil {
			err = cErr
			return nil, false
		}
		r.Checksums[name] = sum
		out := make([]byte, 0, len(line))
		out = append(out, m[1]...)
		out = append(out, sum...)
		out = append(out, m[3]...)
		return out, true
	})
	if err != nil {
		return Result{}, err
	}
	return r, nil
}

// Checksum returns the hex encoded SHA-512 digest of the file at p.
func Checksum(p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha512.New()
	if _, err = io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", p, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
