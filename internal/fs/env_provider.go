package fs

import (
	"os"
)

// Environment variables read by the release tools.
const (
	RootEnvVar    = "ZOI_RELEASE_ROOT"
	LogFileEnvVar = "ZOI_RELEASE_LOG_FILE"
	NoColorEnvVar = "NO_COLOR"
)

// EnvProvider provides environment variable access.
type EnvProvider interface {
	// Get returns the value of the environment variable named by the key.
	Get(key string) string
}

// OSEnvProvider reads from the actual environment using os.Getenv.
type OSEnvProvider struct{}

// NewEnvProvider creates a new OSEnvProvider.
func NewEnvProvider() *OSEnvProvider {
	return &OSEnvProvider{}
}

// Get returns the value of the environment variable named by the key.
func (e *OSEnvProvider) Get(key string) string {
	return os.Getenv(key)
}

// MapEnvProvider serves a fixed set of variables instead of the process environment.
type MapEnvProvider map[string]string

func (m MapEnvProvider) Get(key string) string {
	return m[key]
}
