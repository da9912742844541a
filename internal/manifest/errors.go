package manifest

import (
	"fmt"
)

type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s does not exist", e.Path)
}

type MalformedJSONError struct {
	Path    string
	Wrapped error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("%s is not valid JSON: %v", e.Path, e.Wrapped)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Wrapped
}

type InvalidStatusDocumentError struct {
	Path    string
	Wrapped error
}

func (e *InvalidStatusDocumentError) Error() string {
	return fmt.Sprintf("%s does not have the expected latest.production / latest.development layout: %v",
		e.Path, e.Wrapped)
}

func (e *InvalidStatusDocumentError) Unwrap() error {
	return e.Wrapped
}

type UnmatchedFieldError struct {
	Misses []Miss
}

func (e *UnmatchedFieldError) Error() string {
	if len(e.Misses) == 1 {
		return fmt.Sprintf("no %s declaration found in %s", e.Misses[0].Field, e.Misses[0].Path)
	}
	return fmt.Sprintf("%d declarations not found: %v", len(e.Misses), e.Misses)
}
