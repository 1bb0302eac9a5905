package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadConfigFile_YAML(t *testing.T) {
	p := writeConfig(t, "newsscrape.yaml", `
input: list.xlsx
articles: texts
fetch:
  userAgent: test-agent
  timeout: 4s
extract:
  containers: ["div.td-post-content", "div.entry-content"]
  readability: true
cache:
  dir: .cache
  maxAge: 24h
`)
	fc, err := LoadConfigFile(p)
	require.NoError(t, err)
	cfg := DefaultConfig()
	ApplyFileConfig(&cfg, fc)

	assert.Equal(t, "list.xlsx", cfg.InputPath)
	assert.Equal(t, "texts", cfg.ArticlesDir)
	assert.Equal(t, DefaultLogPath, cfg.LogPath, "unset field must keep its default")
	assert.Equal(t, "test-agent", cfg.UserAgent)
	assert.Equal(t, 4*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"div.td-post-content", "div.entry-content"}, cfg.Containers)
	assert.True(t, cfg.Readability)
	assert.Equal(t, ".cache", cfg.CacheDir)
	assert.Equal(t, 24*time.Hour, cfg.CacheMaxAge)
}

func TestLoadConfigFile_JSON(t *testing.T) {
	p := writeConfig(t, "cfg.json", `{"log":"run.csv","fetch":{"timeout":"2s"},"verbose":true}`)
	fc, err := LoadConfigFile(p)
	require.NoError(t, err)
	cfg := DefaultConfig()
	ApplyFileConfig(&cfg, fc)

	assert.Equal(t, "run.csv", cfg.LogPath)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	p := writeConfig(t, "bad.yaml", "fetch:\n  timeout: soon\n")
	_, err = LoadConfigFile(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, ValidateConfig(DefaultConfig()))

	cases := map[string]func(*Config){
		"input":    func(c *Config) { c.InputPath = " " },
		"articles": func(c *Config) { c.ArticlesDir = "" },
		"log":      func(c *Config) { c.LogPath = "" },
		"timeout":  func(c *Config) { c.Timeout = -time.Second },
		"selector": func(c *Config) { c.Containers = []string{"div[["} },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		assert.Error(t, ValidateConfig(cfg), name)
	}
}
