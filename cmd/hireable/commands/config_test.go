package commands

import (
	"testing"

	"hireable-backend/pkg/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings(t *testing.T) {
	t.Run("defaults without a config file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		ConfigFile = ""

		s, err := LoadSettings()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", s.APIURL)
		assert.Equal(t, content.DefaultLocale, s.locale())
		assert.False(t, s.Client().Authenticated())
	})

	t.Run("env vars override the config file", func(t *testing.T) {
		dir := t.TempDir()
		ConfigFile = writeFile(t, dir, "hireable.yaml", []byte("api_url: https://api.example.com\ntoken: file-token\nlocale: ar\n"))
		t.Cleanup(func() { ConfigFile = "" })
		t.Setenv("HIREABLE_TOKEN", "env-token")

		s, err := LoadSettings()
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com", s.APIURL)
		assert.Equal(t, "env-token", s.Token)
		assert.Equal(t, content.Arabic, s.locale())
		assert.True(t, s.Client().Authenticated())
	})

	t.Run("an explicit missing config file is an error", func(t *testing.T) {
		ConfigFile = "/nonexistent/hireable.yaml"
		t.Cleanup(func() { ConfigFile = "" })

		_, err := LoadSettings()
		assert.ErrorContains(t, err, "read config")
	})
}
