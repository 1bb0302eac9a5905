package scrape

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactPath returns where the artifact for id lives under dir.
func ArtifactPath(dir, id string) string {
	return filepath.Join(dir, safeName(id)+".txt")
}

// safeName keeps an identifier inside the artifacts directory.
func safeName(id string) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator || r == 0 {
			return '_'
		}
		return r
	}, strings.TrimSpace(id))
	if name == "" || name == "." || name == ".." {
		return "_" + name
	}
	return name
}

// writeArtifact writes content to the artifact for id in one step: a temp
// file in the same directory is filled, closed and renamed over the target.
func writeArtifact(dir, id, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifacts dir: %w", err)
	}
	path := ArtifactPath(dir, id)
	tmp, err := os.CreateTemp(dir, ".artifact-*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}
