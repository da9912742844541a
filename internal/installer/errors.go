package installer

import (
	"fmt"
)

type UnsupportedPlatformError struct {
	GOOS string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("Unsupported platform: %s", e.GOOS)
}

type DownloadFailedError struct {
	URL     string
	Reason  string
	Wrapped error
}

func (e *DownloadFailedError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("Failed to download script from %s: %v", e.URL, e.Wrapped)
	}
	return fmt.Sprintf("Failed to download script from %s: %s", e.URL, e.Reason)
}

func (e *DownloadFailedError) Unwrap() error {
	return e.Wrapped
}

type InstallerExecFailedError struct {
	Shell   string
	Wrapped error
}

func (e *InstallerExecFailedError) Error() string {
	return fmt.Sprintf("Failed to start installer %s: %v", e.Shell, e.Wrapped)
}

func (e *InstallerExecFailedError) Unwrap() error {
	return e.Wrapped
}
