package version

import (
	"fmt"
)

type InvalidTrackError struct {
	Value string
}

func (e *InvalidTrackError) Error() string {
	return fmt.Sprintf("Invalid environment type for bump: '%s'. Must be '%s' or '%s'.", e.Value, TrackProd, TrackDev)
}

type InvalidBumpPartError struct {
	Value string
}

func (e *InvalidBumpPartError) Error() string {
	return fmt.Sprintf("Invalid part to bump: '%s'. Must be '%s', '%s', or '%s'.",
		e.Value, PartMajor, PartMinor, PartPatch)
}

type InvalidBranchTokenError struct {
	Value string
}

func (e *InvalidBranchTokenError) Error() string {
	return fmt.Sprintf("Invalid branch type: '%s'. Must be '%s' or '%s'.", e.Value, TrackDev, TrackProd)
}

type InvalidBranchError struct {
	Value string
}

func (e *InvalidBranchError) Error() string {
	return fmt.Sprintf("Invalid branch name: '%s'. Must be '%s' or '%s'.", e.Value, Production, Development)
}

type InvalidVersionFormatError struct {
	Value   string
	Wrapped error
}

func (e *InvalidVersionFormatError) Error() string {
	return fmt.Sprintf("Invalid version number format: '%s'. Must be 'x.y.z'.", e.Value)
}

func (e *InvalidVersionFormatError) Unwrap() error {
	return e.Wrapped
}
