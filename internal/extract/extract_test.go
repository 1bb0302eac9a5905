package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longSentence = "The city council approved the new transit budget after a lengthy public hearing on Tuesday evening."

func TestExtract_ContainerWins(t *testing.T) {
	page := `<html><body>
	  <h1>  Budget Passes </h1>
	  <p>Navigation teaser</p>
	  <div class="td-post-content">
	    <p> ` + longSentence + ` </p>
	    <p>   </p>
	    <p>Second <b>bold</b> paragraph.</p>
	  </div>
	  <article><p>` + longSentence + `</p></article>
	</body></html>`

	out := New().Extract([]byte(page))
	assert.Equal(t, "Budget Passes", out.Title)
	// Long enough that the <article> below is never consulted.
	assert.Equal(t, longSentence+" Second bold paragraph.", out.Body)
	assert.Equal(t, DefaultContainer, out.Tier)
	assert.True(t, out.Sufficient)
}

func TestExtract_ContainerMatchesClassToken(t *testing.T) {
	page := `<div class="entry td-post-content clearfix"><p>Scoped text.</p></div><p>Outside.</p>`
	out := New().Extract([]byte(page))
	assert.Equal(t, "Scoped text.", out.Body)
}

func TestExtract_EmptyContainerFallsBackToDocument(t *testing.T) {
	page := `<h1>T</h1><div class="td-post-content"><p> </p></div><p>` + longSentence + `</p><p>More.</p>`
	out := New().Extract([]byte(page))
	assert.Equal(t, longSentence+" More.", out.Body)
	assert.Equal(t, TierDocument, out.Tier)
}

func TestExtract_NoContainerUsesAllParagraphs(t *testing.T) {
	page := `<html><body><h1>Headline</h1>
	  <header><p>` + longSentence + `</p></header>
	  <section><p>Body one.</p><p>Body two.</p></section>
	</body></html>`

	out := New().Extract([]byte(page))
	assert.Equal(t, longSentence+" Body one. Body two.", out.Body)
	assert.Equal(t, TierDocument, out.Tier)
}

func TestExtract_ShortTextPrefersArticle(t *testing.T) {
	page := `<html><body><h1>H</h1>
	  <p>Short teaser.</p>
	  <article><div>Byline</div><p>Article paragraph one.</p><p>Article paragraph two.</p></article>
	</body></html>`

	out := New().Extract([]byte(page))
	// The article paragraphs are also part of the document-wide text, which is
	// still under the threshold, so the article-scoped text replaces it.
	assert.Equal(t, "Article paragraph one. Article paragraph two.", out.Body)
	assert.Equal(t, TierArticle, out.Tier)
}

func TestExtract_ShortContainerTextPrefersArticle(t *testing.T) {
	page := `<html><body><h1>H</h1>
	  <div class="td-post-content"><p>Teaser only.</p></div>
	  <article><p>Full story paragraph.</p></article>
	</body></html>`

	out := New().Extract([]byte(page))
	assert.Equal(t, "Full story paragraph.", out.Body)
	assert.Equal(t, TierArticle, out.Tier)
}

func TestExtract_ShortTextWithoutArticleStands(t *testing.T) {
	out := New().Extract([]byte(`<h1>H</h1><p>Tiny.</p>`))
	assert.Equal(t, "Tiny.", out.Body)
	assert.Equal(t, TierDocument, out.Tier)
	assert.True(t, out.Sufficient)
}

func TestExtract_EmptyArticleStillReplaces(t *testing.T) {
	out := New().Extract([]byte(`<h1>H</h1><p>Tiny.</p><article><div>no paragraphs</div></article>`))
	assert.Equal(t, "", out.Body)
	assert.Equal(t, TierArticle, out.Tier)
	assert.False(t, out.Sufficient)
}

func TestExtract_LongDocumentTextSkipsArticle(t *testing.T) {
	page := `<h1>H</h1><p>` + longSentence + `</p><article><p>Only article.</p></article>`
	out := New().Extract([]byte(page))
	assert.Equal(t, longSentence+" Only article.", out.Body)
}

func TestExtract_ThresholdCountsCharactersNotBytes(t *testing.T) {
	// 60 two-byte runes: 120 bytes but 60 characters, so the article tier runs.
	short := strings.Repeat("é", 60)
	out := New().Extract([]byte(`<h1>H</h1><p>` + short + `</p><article><p>Replacement.</p></article>`))
	assert.Equal(t, "Replacement.", out.Body)
}

func TestExtract_HeadingWithoutParagraphs(t *testing.T) {
	out := New().Extract([]byte(`<html><body><h1>Lonely Heading</h1><div>no paragraphs here</div></body></html>`))
	assert.Equal(t, "Lonely Heading", out.Title)
	assert.Equal(t, "", out.Body)
	assert.False(t, out.Sufficient)
}

func TestExtract_MissingHeadingUsesSentinel(t *testing.T) {
	out := New().Extract([]byte(`<p>` + longSentence + `</p>`))
	assert.Equal(t, TitleNotFound, out.Title)
	assert.True(t, out.Sufficient)
}

func TestExtract_BlankHeadingIsEmptyTitle(t *testing.T) {
	out := New().Extract([]byte(`<h1>   </h1><p>` + longSentence + `</p>`))
	assert.Equal(t, "", out.Title)
	assert.False(t, out.Sufficient)
}

func TestExtract_FirstHeadingOnly(t *testing.T) {
	out := New().Extract([]byte(`<h1>First</h1><h1>Second</h1>`))
	assert.Equal(t, "First", out.Title)
}

func TestExtract_GarbageInput(t *testing.T) {
	out := New().Extract([]byte("\x00\x01 not html at all"))
	assert.Equal(t, TitleNotFound, out.Title)
	assert.Equal(t, "", out.Body)
	assert.False(t, out.Sufficient)
}

func TestExtract_ContainersTriedInOrder(t *testing.T) {
	page := `<h1>H</h1>
	  <div class="story-body"><p>Story body text.</p></div>
	  <div class="td-post-content"><p>Td content text.</p></div>`

	x := New(Selector("div.missing"), Selector("div.story-body"), Selector(DefaultContainer))
	out := x.Extract([]byte(page))
	assert.Equal(t, "Story body text.", out.Body)
	assert.Equal(t, "div.story-body", out.Tier)
}

func TestParseStrategies(t *testing.T) {
	got, err := ParseStrategies([]string{"div.td-post-content", " ", "Readability", "main .entry"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "div.td-post-content", got[0].Name())
	assert.Equal(t, ReadabilityName, got[1].Name())
	assert.Equal(t, "main .entry", got[2].Name())

	_, err = ParseStrategies([]string{"div[["})
	require.Error(t, err)
}

func TestReadabilityStrategy_FindsMainContent(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><head><title>Readable</title></head><body><nav><a href="/">Home</a></nav><div id="story">`)
	for i := 0; i < 8; i++ {
		b.WriteString(`<p>` + longSentence + ` Officials said the plan, which covers bus and rail, takes effect next spring.</p>`)
	}
	b.WriteString(`</div></body></html>`)

	doc := parse([]byte(b.String()))
	text, found := ReadabilityStrategy{}.TryExtract(doc)
	require.True(t, found)
	assert.Contains(t, text, "city council approved")
	assert.NotContains(t, text, "\n")
}
