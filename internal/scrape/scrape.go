// Package scrape turns one (identifier, URL) pair into a classified Result and
// a text artifact on disk.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/hyperifyio/newsscrape/internal/extract"
	"github.com/hyperifyio/newsscrape/internal/fetch"
)

// Fetcher downloads page markup.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Extractor pulls a title and body out of markup.
type Extractor interface {
	ExtractPage(input []byte, pageURL *url.URL) extract.Outcome
}

// Processor handles requests one at a time. It holds no per-request state.
type Processor struct {
	Fetcher   Fetcher
	Extractor Extractor
	// Dir receives one <id>.txt per processed request.
	Dir string
}

// Process fetches and extracts req, classifies the outcome, and writes the
// artifact. It always returns a Result; no failure escapes as a panic.
func (p *Processor) Process(ctx context.Context, req Request) Result {
	res := p.classify(ctx, req)

	path, err := writeArtifact(p.Dir, req.ID, res.Content())
	if err != nil {
		res = general(req, fmt.Sprintf("write artifact: %v", err))
		return res
	}
	res.ArtifactPath = path
	return res
}

func (p *Processor) classify(ctx context.Context, req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = general(req, fmt.Sprintf("panic: %v", r))
		}
	}()

	markup, err := p.Fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return fromFetchError(req, err)
	}

	pageURL, _ := url.Parse(req.URL)
	out := p.Extractor.ExtractPage(markup, pageURL)
	res = Result{
		ID:     req.ID,
		URL:    req.URL,
		Title:  out.Title,
		Body:   out.Body,
		Tier:   out.Tier,
		Status: StatusSuccess,
	}
	if !out.Sufficient {
		res.Status = StatusContentMissing
	}
	return res
}

func fromFetchError(req Request, err error) Result {
	var fe *fetch.Error
	if errors.As(err, &fe) && fe.Kind == fetch.KindNetwork {
		return Result{
			ID:     req.ID,
			URL:    req.URL,
			Title:  errorTitle(fe.Kind.String(), fe.Detail),
			Status: StatusNetwork,
			Detail: fe.Detail,
		}
	}
	return general(req, err.Error())
}

func general(req Request, detail string) Result {
	return Result{
		ID:     req.ID,
		URL:    req.URL,
		Title:  errorTitle(fetch.KindGeneral.String(), detail),
		Status: StatusGeneral,
		Detail: detail,
	}
}

// Reject classifies req as a general failure without fetching or writing an
// artifact. It is used for rows that cannot name an artifact.
func Reject(req Request, detail string) Result {
	return general(req, detail)
}
