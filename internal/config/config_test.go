package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"nobaidu/internal/config"
	"nobaidu/internal/filter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nobaidu.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("empty path returns defaults", func(t *testing.T) {
		t.Parallel()

		s, err := config.Load("")

		require.NoError(t, err)
		assert.Equal(t, filter.DefaultDenyDomains, s.DenyDomains)
		assert.Equal(t, filter.DefaultKeywords, s.Keywords)
		assert.Equal(t, 20, s.MinLength)
		assert.Equal(t, config.Duration(10*time.Second), s.ResultsTimeout)
		assert.Equal(t, config.Duration(5*time.Minute), s.VerifyTimeout)
		assert.Equal(t, config.Duration(time.Second), s.VerifyPoll)
	})

	t.Run("file overrides only the keys it sets", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
deny_domains: ["zhihu.com", ".gov"]
min_length: 30
verify_timeout: 90s
proxy: http://127.0.0.1:7890
`)
		s, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"zhihu.com", ".gov"}, s.DenyDomains)
		assert.Equal(t, 30, s.MinLength)
		assert.Equal(t, config.Duration(90*time.Second), s.VerifyTimeout)
		assert.Equal(t, "http://127.0.0.1:7890", s.Proxy)
		assert.Equal(t, filter.DefaultKeywords, s.Keywords)
		assert.Equal(t, config.Duration(200*time.Millisecond), s.Delay)
	})

	t.Run("bad duration is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(writeConfig(t, "delay: soon\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid duration")
	})

	t.Run("zero poll interval is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(writeConfig(t, "verify_poll: 0s\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "verify_poll")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))

		require.Error(t, err)
	})
}
