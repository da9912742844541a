package fs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOSEnvProvider(t *testing.T) {
	t.Parallel()

	t.Run("Get returns environment variable", func(t *testing.T) {
		t.Parallel()
		provider := NewEnvProvider()

		// PATH should always be set
		assert.NotEmpty(t, provider.Get("PATH"))
	})

	t.Run("Get returns empty for unset variable", func(t *testing.T) {
		t.Parallel()
		provider := NewEnvProvider()

		assert.Empty(t, provider.Get("ZOI_RELEASE_UNLIKELY_TO_BE_SET_12345"))
	})
}

func TestMapEnvProvider(t *testing.T) {
	t.Parallel()

	env := MapEnvProvider{RootEnvVar: "/repo"}
	assert.Equal(t, "/repo", env.Get(RootEnvVar))
	assert.Empty(t, env.Get(LogFileEnvVar))
	assert.Empty(t, MapEnvProvider(nil).Get(RootEnvVar))
}
