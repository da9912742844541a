// Package manifest reads and rewrites the versioned release artifacts: the
// Cargo manifest, the source constants file, the JSON status file and the
// Homebrew formula.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// Kind identifies one of the release artifacts.
type Kind int

const (
	KindManifest Kind = iota
	KindConstants
	KindStatus
	KindFormula
)

func (k Kind) String() string {
	switch k {
	case KindManifest:
		return "manifest"
	case KindConstants:
		return "constants"
	case KindStatus:
		return "status"
	case KindFormula:
		return "formula"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Paths holds the location of each artifact.
type Paths struct {
	Manifest  string
	Constants string
	Status    string
	Formula   string
}

// State is the set of artifacts loaded for one invocation. Artifacts that were
// not requested from Load are nil.
type State struct {
	Manifest  *TextFile
	Constants *TextFile
	Status    *StatusFile
	Formula   *TextFile
}

// Store loads and saves State.
type Store struct {
	paths  Paths
	logger *slog.Logger
}

func NewStore(p Paths, l *slog.Logger) *Store {
	return &Store{paths: p, logger: l}
}

// Paths returns the artifact locations the store was created with.
func (s *Store) Paths() Paths {
	return s.paths
}

// Load reads the requested artifacts. Any missing or malformed artifact aborts the load.
func (s *Store) Load(kinds ...Kind) (*State, error) {
	st := &State{}
	for _, k := range kinds {
		switch k {
		case KindManifest:
			data, err := readFile(s.paths.Manifest)
			if err != nil {
				return nil, err
			}
			st.Manifest = ParseText(s.paths.Manifest, data)
		case KindConstants:
			data, err := readFile(s.paths.Constants)
			if err != nil {
				return nil, err
			}
			st.Constants = ParseText(s.paths.Constants, data)
		case KindStatus:
			data, err := readFile(s.paths.Status)
			if err != nil {
				return nil, err
			}
			if st.Status, err = ParseStatus(s.paths.Status, data); err != nil {
				return nil, err
			}
		case KindFormula:
			data, err := readFile(s.paths.Formula)
			if err != nil {
				return nil, err
			}
			st.Formula = ParseText(s.paths.Formula, data)
		default:
			return nil, fmt.Errorf("unknown artifact kind %v", k)
		}
		s.logger.Debug("loaded artifact", "kind", k)
	}
	return st, nil
}

// Save writes every modified artifact in the fixed order manifest, constants,
// status file, formula. Writing stops at the first failure; files already
// written stay written.
func (s *Store) Save(st *State) error {
	type artifact struct {
		touched bool
		path    string
		data    func() []byte
	}
	var pending []artifact
	if st.Manifest != nil {
		pending = append(pending, artifact{st.Manifest.Touched(), st.Manifest.Path, st.Manifest.Bytes})
	}
	if st.Constants != nil {
		pending = append(pending, artifact{st.Constants.Touched(), st.Constants.Path, st.Constants.Bytes})
	}
	if st.Status != nil {
		pending = append(pending, artifact{st.Status.Touched(), st.Status.Path, st.Status.Bytes})
	}
	if st.Formula != nil {
		pending = append(pending, artifact{st.Formula.Touched(), st.Formula.Path, st.Formula.Bytes})
	}

	for _, a := range pending {
		if !a.touched {
			continue
		}
		if err := writeFile(a.path, a.data()); err != nil {
			return err
		}
		s.logger.Debug("wrote artifact", "path", a.path)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &MissingFileError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
