// Package repo records releases in the git repository holding the artifacts.
package repo

import (
	"context"
	"fmt"
)

// DefaultRemote is the remote release tags are pushed to.
const DefaultRemote = "origin"

// Gitter defines the interface for git repository operations.
type Gitter interface {
	// TagExists reports whether a tag with the given name already exists locally.
	TagExists(ctx context.Context, tag string) (bool, error)

	// TagRelease creates an annotated tag at HEAD. It fails with a
	// *TagExistsError rather than moving an existing tag.
	TagRelease(ctx context.Context, tag, message string) error

	// PushTag pushes a single tag to the remote.
	PushTag(ctx context.Context, remote, tag string) error
}

type TagExistsError struct {
	Tag string
}

func (e *TagExistsError) Error() string {
	return fmt.Sprintf("git tag %s already exists", e.Tag)
}
