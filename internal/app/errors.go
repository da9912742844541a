package app

import (
	"fmt"
)

type UnknownSetKeyError struct {
	Key string
}

func (e *UnknownSetKeyError) Error() string {
	return fmt.Sprintf("Unknown 'set' key: '%s'. Must be 'branch', 'status', or 'number'.", e.Key)
}

type MissingSetValueError struct {
	Key string
}

func (e *MissingSetValueError) Error() string {
	return fmt.Sprintf("Missing value for 'set %s'.", e.Key)
}
