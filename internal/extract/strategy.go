package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// Strategy is one way of locating body text in a document.
type Strategy interface {
	Name() string
	// TryExtract reports whether the strategy's container exists and, if so,
	// the text found in it. Found with empty text is allowed.
	TryExtract(doc *goquery.Document) (text string, found bool)
}

// SelectorStrategy takes the first element matching a CSS selector and joins
// the paragraphs inside it.
type SelectorStrategy struct {
	Selector string
}

// Selector returns a SelectorStrategy for sel.
func Selector(sel string) SelectorStrategy {
	return SelectorStrategy{Selector: sel}
}

func (s SelectorStrategy) Name() string { return s.Selector }

func (s SelectorStrategy) TryExtract(doc *goquery.Document) (string, bool) {
	container := doc.Find(s.Selector).First()
	if container.Length() == 0 {
		return "", false
	}
	return paragraphText(container), true
}

// ReadabilityName selects ReadabilityStrategy in ParseStrategies.
const ReadabilityName = "readability"

// ReadabilityStrategy scores the page with go-readability and returns the
// main content's text with whitespace collapsed.
type ReadabilityStrategy struct{}

func (ReadabilityStrategy) Name() string { return ReadabilityName }

func (ReadabilityStrategy) TryExtract(doc *goquery.Document) (string, bool) {
	if len(doc.Nodes) == 0 {
		return "", false
	}
	// readability rewrites the tree it is given; hand it a copy.
	var buf bytes.Buffer
	if err := html.Render(&buf, doc.Nodes[0]); err != nil {
		return "", false
	}
	pageURL := doc.Url
	if pageURL == nil {
		pageURL = &url.URL{Scheme: "http", Host: "localhost", Path: "/"}
	}
	article, err := readability.FromReader(&buf, pageURL)
	if err != nil {
		return "", false
	}
	text := collapseSpaces(article.TextContent)
	return text, text != ""
}

// ParseStrategies turns configured names into strategies. "readability"
// selects ReadabilityStrategy; anything else must be a valid CSS selector.
func ParseStrategies(names []string) ([]Strategy, error) {
	out := make([]Strategy, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.EqualFold(name, ReadabilityName) {
			out = append(out, ReadabilityStrategy{})
			continue
		}
		if _, err := cascadia.Compile(name); err != nil {
			return nil, fmt.Errorf("container selector %q: %w", name, err)
		}
		out = append(out, Selector(name))
	}
	return out, nil
}
