package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const (
	DefaultRSSURL       = "https://pixelfed.social/account/portfolio/Xover0.rss"
	DefaultAPIURL       = "https://pixelfed.social"
	DefaultTitlePrefix  = "Post by Xover0 on "
	DefaultDiagnostics  = "resolve-failures"
	defaultLogLevel     = "info"
	defaultConcurrency  = 1
	accessTokenVariable = "PIXELFED_ACCESS_TOKEN"
)

var ErrMissingToken = errors.New(accessTokenVariable + " environment variable not set")

// Config holds everything the gallery function reads from its environment.
// It is loaded once per cold start and shared read-only between invocations.
type Config struct {
	// AccessToken is the Pixelfed personal access token. Its absence is only
	// reported by Validate, so preflight requests still succeed without it.
	AccessToken string

	RSSURL      string
	APIURL      string
	TitlePrefix string

	// Concurrency bounds the number of status lookups in flight. 1 keeps
	// lookups strictly sequential in feed order.
	Concurrency int

	LogLevel string

	Firestore FirestoreConfig
}

// FirestoreConfig is the service account used to record failed lookups.
// Diagnostics stay in the logs when it is incomplete.
type FirestoreConfig struct {
	ProjectID    string
	ClientEmail  string
	ClientID     string
	PrivateKey   string
	PrivateKeyID string
	Collection   string
}

func (f FirestoreConfig) Enabled() bool {
	return f.ProjectID != "" && f.ClientEmail != "" && f.PrivateKey != ""
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	concurrency := defaultConcurrency
	if c := os.Getenv("RESOLVE_CONCURRENCY"); c != "" {
		var err error
		concurrency, err = strconv.Atoi(c)
		if err != nil {
			return nil, fmt.Errorf("invalid RESOLVE_CONCURRENCY: %w", err)
		}
		if concurrency < 1 {
			return nil, fmt.Errorf("RESOLVE_CONCURRENCY must be at least 1, got %d", concurrency)
		}
	}

	rssURL := envOr("RSS_URL", DefaultRSSURL)
	if _, err := url.ParseRequestURI(rssURL); err != nil {
		return nil, fmt.Errorf("invalid RSS_URL %q: %w", rssURL, err)
	}
	apiURL := strings.TrimRight(envOr("PIXELFED_API_URL", DefaultAPIURL), "/")
	if _, err := url.ParseRequestURI(apiURL); err != nil {
		return nil, fmt.Errorf("invalid PIXELFED_API_URL %q: %w", apiURL, err)
	}

	// TITLE_PREFIX may be set to an empty string to keep titles untouched
	titlePrefix, ok := os.LookupEnv("TITLE_PREFIX")
	if !ok {
		titlePrefix = DefaultTitlePrefix
	}

	return &Config{
		AccessToken: os.Getenv(accessTokenVariable),
		RSSURL:      rssURL,
		APIURL:      apiURL,
		TitlePrefix: titlePrefix,
		Concurrency: concurrency,
		LogLevel:    envOr("LOG_LEVEL", defaultLogLevel),
		Firestore: FirestoreConfig{
			ProjectID:   os.Getenv("GOOGLE_PROJECT_ID"),
			ClientEmail: os.Getenv("GOOGLE_CLIENT_EMAIL"),
			ClientID:    os.Getenv("GOOGLE_CLIENT_ID"),
			// Netlify stores multi-line values with escaped newlines
			PrivateKey:   strings.ReplaceAll(os.Getenv("GOOGLE_PRIV_KEY"), "\\n", "\n"),
			PrivateKeyID: os.Getenv("GOOGLE_PRIV_KEY_ID"),
			Collection:   envOr("DIAGNOSTICS_COLLECTION", DefaultDiagnostics),
		},
	}, nil
}

// Validate checks the per-request preconditions of the gallery pipeline.
func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return ErrMissingToken
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
