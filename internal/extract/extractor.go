package extract

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// DefaultContainer is the content wrapper used by the WordPress "td" news
// templates this tool was first tuned for.
const DefaultContainer = "div.td-post-content"

// DefaultMinBodyChars is the length below which the article fallback is tried.
const DefaultMinBodyChars = 100

// Extractor finds a title and a body in article markup.
//
// The body comes from a fixed chain: the Containers strategies in order, then
// every paragraph in the document, then, when the text is still empty or
// shorter than MinBodyChars, the paragraphs of the first <article>.
type Extractor struct {
	Containers   []Strategy
	MinBodyChars int
}

// New returns an Extractor trying containers in order. With no containers it
// uses DefaultContainer.
func New(containers ...Strategy) *Extractor {
	if len(containers) == 0 {
		containers = []Strategy{Selector(DefaultContainer)}
	}
	return &Extractor{Containers: containers, MinBodyChars: DefaultMinBodyChars}
}

// Extract runs the title lookup and body chain over input.
func (x *Extractor) Extract(input []byte) Outcome {
	return x.ExtractPage(input, nil)
}

// ExtractPage is Extract with the page URL attached to the document, which
// the readability strategy uses to resolve relative links.
func (x *Extractor) ExtractPage(input []byte, pageURL *url.URL) Outcome {
	doc := parse(input)
	doc.Url = pageURL

	title := findTitle(doc)
	body, tier := x.findBody(doc)
	return Outcome{
		Title:      title,
		Body:       body,
		Tier:       tier,
		Sufficient: title != "" && body != "",
	}
}

func findTitle(doc *goquery.Document) string {
	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return TitleNotFound
	}
	return strings.TrimSpace(h1.Text())
}

func (x *Extractor) findBody(doc *goquery.Document) (string, string) {
	var body, tier string
	for _, s := range x.Containers {
		if s == nil {
			continue
		}
		if text, found := s.TryExtract(doc); found && text != "" {
			body, tier = text, s.Name()
			break
		}
	}

	if body == "" {
		body, tier = paragraphText(doc.Selection), TierDocument
	}

	if body == "" || utf8.RuneCountInString(body) < x.minBodyChars() {
		// Replaces the previous text whenever an <article> exists, even if
		// it yields less.
		if text, found := Selector("article").TryExtract(doc); found {
			body, tier = text, TierArticle
		}
	}
	return body, tier
}

func (x *Extractor) minBodyChars() int {
	if x.MinBodyChars > 0 {
		return x.MinBodyChars
	}
	return DefaultMinBodyChars
}
