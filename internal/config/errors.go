package config

import (
	"fmt"
)

type InvalidYAMLError struct {
	Wrapped error
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf(ConfigFile+" is not a valid yaml document: %v", e.Wrapped)
}

func (e *InvalidYAMLError) Unwrap() error {
	return e.Wrapped
}

type InvalidPathError struct {
	Property string
	Value    string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf(
		ConfigFile+" property %s has invalid path '%s': must be relative to the repository root",
		e.Property,
		e.Value,
	)
}

type ConfigExistsError struct {
	Path string
}

func (e *ConfigExistsError) Error() string {
	return fmt.Sprintf("%s already exists", e.Path)
}
