package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "NEWSSCRAPE_"

// ApplyEnvOverrides overrides cfg fields with NEWSSCRAPE_* environment
// variables when they are set. Env takes precedence over the config file;
// flags remain highest precedence. Unparseable values are ignored.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}
	getenv := func(key string) string { return strings.TrimSpace(os.Getenv(EnvPrefix + key)) }

	if v := getenv("INPUT"); v != "" {
		cfg.InputPath = v
	}
	if v := getenv("ARTICLES_DIR"); v != "" {
		cfg.ArticlesDir = v
	}
	if v := getenv("LOG_PATH"); v != "" {
		cfg.LogPath = v
	}
	if v := getenv("USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := getenv("CONTAINERS"); v != "" {
		cfg.Containers = SplitList(v)
	}
	if v := getenv("CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := getenv("STOPWORDS_DIR"); v != "" {
		cfg.StopwordDir = v
	}
	if v := getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	if v := getenv("MIN_BODY_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MinBodyChars = n
		}
	}

	setDuration := func(dst *time.Duration, key string) {
		if s := getenv(key); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				*dst = d
			}
		}
	}
	setDuration(&cfg.Timeout, "TIMEOUT")
	setDuration(&cfg.CacheMaxAge, "CACHE_MAX_AGE")

	// Booleans override when env present and truthy/falsey
	setBool := func(dst *bool, key string) {
		switch strings.ToLower(getenv(key)) {
		case "1", "true", "yes", "on":
			*dst = true
		case "0", "false", "no", "off":
			*dst = false
		}
	}
	setBool(&cfg.Readability, "READABILITY")
	setBool(&cfg.CacheClear, "CACHE_CLEAR")
	setBool(&cfg.Verbose, "VERBOSE")
}

// SplitList splits a comma-separated list, dropping blanks.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
