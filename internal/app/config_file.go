package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/newsscrape/internal/extract"
)

// FileConfig represents the single-file configuration schema. Nested sections
// map to the dotted flag names (fetch.timeout, cache.dir, ...).
type FileConfig struct {
	Input    string `yaml:"input" json:"input"`
	Articles string `yaml:"articles" json:"articles"`
	Log      string `yaml:"log" json:"log"`

	Fetch struct {
		UserAgent string   `yaml:"userAgent" json:"userAgent"`
		Timeout   Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"fetch" json:"fetch"`

	Extract struct {
		Containers   []string `yaml:"containers" json:"containers"`
		Readability  bool     `yaml:"readability" json:"readability"`
		MinBodyChars int      `yaml:"minBodyChars" json:"minBodyChars"`
	} `yaml:"extract" json:"extract"`

	Cache struct {
		Dir    string   `yaml:"dir" json:"dir"`
		MaxAge Duration `yaml:"maxAge" json:"maxAge"`
		Clear  bool     `yaml:"clear" json:"clear"`
	} `yaml:"cache" json:"cache"`

	Stopwords string `yaml:"stopwords" json:"stopwords"`
	Verbose   bool   `yaml:"verbose" json:"verbose"`
	LogFile   string `yaml:"logFile" json:"logFile"`
}

// Duration accepts "10s" style strings in YAML and JSON.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	return d.set(s)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.set(s)
}

func (d *Duration) set(s string) error {
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from fc onto cfg. Flags are applied after
// this, so the file only supplies values the command line leaves alone.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if fc.Input != "" {
		cfg.InputPath = fc.Input
	}
	if fc.Articles != "" {
		cfg.ArticlesDir = fc.Articles
	}
	if fc.Log != "" {
		cfg.LogPath = fc.Log
	}
	if fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if fc.Fetch.Timeout > 0 {
		cfg.Timeout = time.Duration(fc.Fetch.Timeout)
	}
	if len(fc.Extract.Containers) > 0 {
		cfg.Containers = append([]string{}, fc.Extract.Containers...)
	}
	if fc.Extract.Readability {
		cfg.Readability = true
	}
	if fc.Extract.MinBodyChars > 0 {
		cfg.MinBodyChars = fc.Extract.MinBodyChars
	}
	if fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if fc.Cache.MaxAge > 0 {
		cfg.CacheMaxAge = time.Duration(fc.Cache.MaxAge)
	}
	if fc.Cache.Clear {
		cfg.CacheClear = true
	}
	if fc.Stopwords != "" {
		cfg.StopwordDir = fc.Stopwords
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.InputPath) == "" {
		return errors.New("config: input path is required")
	}
	if strings.TrimSpace(cfg.ArticlesDir) == "" {
		return errors.New("config: articles directory is required")
	}
	if strings.TrimSpace(cfg.LogPath) == "" {
		return errors.New("config: log path is required")
	}
	if cfg.Timeout < 0 || cfg.MinBodyChars < 0 || cfg.CacheMaxAge < 0 {
		return errors.New("config: negative durations or limits are not allowed")
	}
	if _, err := extract.ParseStrategies(cfg.Containers); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
