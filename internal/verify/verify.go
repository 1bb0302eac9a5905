// Package verify checks that a scrape run left the files later analysis
// steps depend on: the article artifacts and the stopword lists.
package verify

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultStopwordFiles are the stopword lists the text analysis step reads.
var DefaultStopwordFiles = []string{
	"StopWords_Names.txt",
	"StopWords_Geographic.txt",
	"StopWords_Generic.txt",
	"StopWords_GenericLong.txt",
	"StopWords_Currencies.txt",
	"StopWords_DatesandNumbers.txt",
	"StopWords_Auditor.txt",
}

// previewCount is how many article names Print lists.
const previewCount = 5

// FileCheck records whether one expected file exists.
type FileCheck struct {
	Name  string
	Found bool
}

// Result summarizes one verification pass.
type Result struct {
	ArticlesDir string
	// DirFound is false when ArticlesDir is missing or not a directory.
	DirFound bool
	// Articles holds the sorted names of *.txt files in ArticlesDir.
	Articles []string
	// Empty lists artifacts with zero size; a complete run never leaves any.
	Empty     []string
	Stopwords []FileCheck
}

// Options selects what Check looks at. Zero values fall back to defaults.
type Options struct {
	ArticlesDir   string
	StopwordDir   string
	StopwordFiles []string
}

// Check inspects the filesystem. It only returns an error for unexpected I/O
// failures; missing files are reported in the Result.
func Check(opts Options) (Result, error) {
	dir := opts.ArticlesDir
	if strings.TrimSpace(dir) == "" {
		dir = "articles"
	}
	names := opts.StopwordFiles
	if len(names) == 0 {
		names = DefaultStopwordFiles
	}

	res := Result{ArticlesDir: dir}
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		res.DirFound = true
		if err := res.listArticles(dir); err != nil {
			return res, err
		}
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return res, fmt.Errorf("stat %s: %w", dir, err)
	}

	for _, name := range names {
		_, err := os.Stat(filepath.Join(opts.StopwordDir, name))
		res.Stopwords = append(res.Stopwords, FileCheck{Name: name, Found: err == nil})
	}
	return res, nil
}

func (r *Result) listArticles(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		r.Articles = append(r.Articles, e.Name())
		if info, err := e.Info(); err == nil && info.Size() == 0 {
			r.Empty = append(r.Empty, e.Name())
		}
	}
	sort.Strings(r.Articles)
	sort.Strings(r.Empty)
	return nil
}

// AllStopwordsFound reports whether every stopword file exists.
func (r Result) AllStopwordsFound() bool {
	for _, s := range r.Stopwords {
		if !s.Found {
			return false
		}
	}
	return true
}

// OK reports whether the articles directory exists, holds no empty
// artifacts, and every stopword file is present.
func (r Result) OK() bool {
	return r.DirFound && len(r.Empty) == 0 && r.AllStopwordsFound()
}

// Print writes a human readable report.
func (r Result) Print(w io.Writer) {
	if r.DirFound {
		preview := r.Articles
		if len(preview) > previewCount {
			preview = preview[:previewCount]
		}
		fmt.Fprintf(w, "Found %d article files in %s: %v\n", len(r.Articles), r.ArticlesDir, preview)
		if len(r.Empty) > 0 {
			fmt.Fprintf(w, "Error: %d empty article files: %v\n", len(r.Empty), r.Empty)
		}
	} else {
		fmt.Fprintf(w, "Error: %s directory not found or is not a directory.\n", r.ArticlesDir)
	}

	for _, s := range r.Stopwords {
		if s.Found {
			fmt.Fprintf(w, "%s found\n", s.Name)
		} else {
			fmt.Fprintf(w, "Error: %s missing\n", s.Name)
		}
	}
	if r.AllStopwordsFound() {
		fmt.Fprintln(w, "All stopword files found.")
	}
}
