package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// TitleNotFound is used when the page has no primary heading. It counts as a
// present title for the sufficiency check.
const TitleNotFound = "Title Not Found"

// Names reported in Outcome.Tier for the two fixed fallback tiers.
const (
	TierDocument = "document"
	TierArticle  = "article"
)

// Outcome is what the extractor found on one page.
type Outcome struct {
	Title string
	Body  string
	// Sufficient is false when either Title or Body is empty.
	Sufficient bool
	// Tier names the strategy that produced Body.
	Tier string
}

// parse builds a queryable document. Markup that fails to parse becomes an
// empty document so callers always get an Outcome.
func parse(input []byte) *goquery.Document {
	root, err := html.Parse(bytes.NewReader(input))
	if err != nil || root == nil {
		root = &html.Node{Type: html.DocumentNode}
	}
	return goquery.NewDocumentFromNode(root)
}

// paragraphText joins the trimmed text of every <p> under scope with single
// spaces, skipping paragraphs that are empty after trimming.
func paragraphText(scope *goquery.Selection) string {
	parts := make([]string, 0, 16)
	scope.Find("p").Each(func(_ int, p *goquery.Selection) {
		if t := strings.TrimSpace(p.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range strings.TrimSpace(s) {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}
