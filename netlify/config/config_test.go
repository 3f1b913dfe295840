package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PIXELFED_ACCESS_TOKEN", "RSS_URL", "PIXELFED_API_URL",
		"RESOLVE_CONCURRENCY", "LOG_LEVEL", "DIAGNOSTICS_COLLECTION",
		"GOOGLE_PROJECT_ID", "GOOGLE_CLIENT_EMAIL", "GOOGLE_CLIENT_ID",
		"GOOGLE_PRIV_KEY", "GOOGLE_PRIV_KEY_ID",
	} {
		t.Setenv(key, "")
	}
	// an empty TITLE_PREFIX is meaningful, so it has to be unset
	t.Setenv("TITLE_PREFIX", "")
	require.NoError(t, os.Unsetenv("TITLE_PREFIX"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultRSSURL, cfg.RSSURL)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultTitlePrefix, cfg.TitlePrefix)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultDiagnostics, cfg.Firestore.Collection)
	assert.False(t, cfg.Firestore.Enabled())
	assert.Empty(t, cfg.AccessToken)
}

func TestLoad_IgnoresAmbientTitlePrefix(t *testing.T) {
	t.Setenv("TITLE_PREFIX", "ambient ")
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultTitlePrefix, cfg.TitlePrefix)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PIXELFED_ACCESS_TOKEN", "secret")
	t.Setenv("RSS_URL", "https://example.com/feed.rss")
	t.Setenv("PIXELFED_API_URL", "https://pixel.example.com/")
	t.Setenv("TITLE_PREFIX", "")
	t.Setenv("RESOLVE_CONCURRENCY", "4")
	t.Setenv("GOOGLE_PROJECT_ID", "gallery")
	t.Setenv("GOOGLE_CLIENT_EMAIL", "svc@gallery.iam.gserviceaccount.com")
	t.Setenv("GOOGLE_PRIV_KEY", `line1\nline2`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.AccessToken)
	assert.Equal(t, "https://example.com/feed.rss", cfg.RSSURL)
	assert.Equal(t, "https://pixel.example.com", cfg.APIURL)
	assert.Empty(t, cfg.TitlePrefix)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "line1\nline2", cfg.Firestore.PrivateKey)
	assert.True(t, cfg.Firestore.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidConcurrency(t *testing.T) {
	clearEnv(t)

	t.Setenv("RESOLVE_CONCURRENCY", "many")
	_, err := Load()
	assert.ErrorContains(t, err, "invalid RESOLVE_CONCURRENCY")

	t.Setenv("RESOLVE_CONCURRENCY", "0")
	_, err = Load()
	assert.ErrorContains(t, err, "must be at least 1")
}

func TestLoad_InvalidURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("RSS_URL", "not a url")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid RSS_URL")
}

func TestValidate_MissingToken(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	assert.True(t, errors.Is(err, ErrMissingToken))
	assert.Equal(t, "PIXELFED_ACCESS_TOKEN environment variable not set", err.Error())
}
