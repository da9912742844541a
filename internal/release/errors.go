package release

import (
	"fmt"
	"strings"
)

type InconsistentStateError struct {
	Problems []string
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("release artifacts disagree:\n  - %s", strings.Join(e.Problems, "\n  - "))
}

type MissingDeclarationError struct {
	Path  string
	Field string
}

func (e *MissingDeclarationError) Error() string {
	return fmt.Sprintf("%s has no %s declaration", e.Path, e.Field)
}
