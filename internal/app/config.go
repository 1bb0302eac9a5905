package app

import (
	"time"

	"github.com/hyperifyio/newsscrape/internal/extract"
	"github.com/hyperifyio/newsscrape/internal/fetch"
)

// Defaults used when neither flags, env, nor a config file set a value.
const (
	DefaultInputPath   = "Input.xlsx"
	DefaultArticlesDir = "articles"
	DefaultLogPath     = "scrape_log.csv"
)

// Config holds runtime configuration for the application.
type Config struct {
	InputPath   string
	ArticlesDir string
	LogPath     string

	// Fetching
	UserAgent string
	Timeout   time.Duration

	// Extraction. Containers are CSS selectors, or "readability", tried in order.
	Containers []string
	// Readability appends the readability strategy after Containers.
	Readability  bool
	MinBodyChars int

	// Response cache
	CacheDir    string
	CacheMaxAge time.Duration
	CacheClear  bool

	// Verification
	StopwordDir string

	Verbose bool
	LogFile string
}

// DefaultConfig returns the configuration used with no overrides.
func DefaultConfig() Config {
	return Config{
		InputPath:    DefaultInputPath,
		ArticlesDir:  DefaultArticlesDir,
		LogPath:      DefaultLogPath,
		UserAgent:    fetch.DefaultUserAgent,
		Timeout:      fetch.DefaultTimeout,
		Containers:   []string{extract.DefaultContainer},
		MinBodyChars: extract.DefaultMinBodyChars,
		StopwordDir:  ".",
	}
}
