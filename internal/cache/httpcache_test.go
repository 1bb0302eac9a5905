package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCache_SaveAndLoad(t *testing.T) {
	t.Parallel()
	c := &HTTPCache{Dir: t.TempDir()}
	ctx := context.Background()
	require.NoError(t, c.Save(ctx, "https://a.com/1", "text/html", `"v1"`, "Mon, 02 Jan 2006 15:04:05 GMT", []byte("<p>hi</p>")))

	meta, err := c.LoadMeta(ctx, "https://a.com/1")
	require.NoError(t, err)
	assert.Equal(t, `"v1"`, meta.ETag)
	assert.Equal(t, "text/html", meta.ContentType)
	assert.Equal(t, "https://a.com/1", meta.URL)

	body, err := c.LoadBody(ctx, "https://a.com/1")
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(body))

	_, err = c.LoadBody(ctx, "https://a.com/other")
	assert.Error(t, err, "expected miss for unknown url")
}

func TestHTTPCache_UnconfiguredDir(t *testing.T) {
	t.Parallel()
	var c *HTTPCache
	_, err := c.LoadMeta(context.Background(), "https://a.com")
	assert.Error(t, err)
}

func TestPurgeByAge(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	c := &HTTPCache{Dir: dir}
	ctx := context.Background()
	require.NoError(t, c.Save(ctx, "https://old.example", "text/html", "", "", []byte("old")))
	require.NoError(t, c.Save(ctx, "https://new.example", "text/html", "", "", []byte("new")))

	// Backdate the first entry
	b, err := json.Marshal(Entry{URL: "https://old.example", SavedAt: time.Now().UTC().Add(-48 * time.Hour)})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, key("https://old.example")+".meta.json"), b, 0o644))

	removed, err := PurgeByAge(dir, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = c.LoadBody(ctx, "https://old.example")
	assert.Error(t, err, "expected old body removed")
	_, err = c.LoadBody(ctx, "https://new.example")
	assert.NoError(t, err, "expected new body kept")
}

func TestPurgeByAge_MissingDir(t *testing.T) {
	t.Parallel()
	n, err := PurgeByAge(filepath.Join(t.TempDir(), "nope"), time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestClearDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.body"), []byte("x"), 0o644))
	require.NoError(t, ClearDir(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.Error(t, ClearDir("  "), "expected error for blank dir")
}
