// Package app wires input, scraping, and the run log into one batch run.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/newsscrape/internal/cache"
	"github.com/hyperifyio/newsscrape/internal/extract"
	"github.com/hyperifyio/newsscrape/internal/fetch"
	"github.com/hyperifyio/newsscrape/internal/input"
	"github.com/hyperifyio/newsscrape/internal/report"
	"github.com/hyperifyio/newsscrape/internal/scrape"
)

// ErrNoRequests is returned when the input holds a header but no data rows.
var ErrNoRequests = errors.New("no requests in input")

// MissingIDDetail is the failure detail logged for rows without a URL_ID.
const MissingIDDetail = "missing URL_ID"

type App struct {
	cfg       Config
	processor *scrape.Processor
	httpCache *cache.HTTPCache
	runID     string
	logger    zerolog.Logger
}

// Summary describes a finished run.
type Summary struct {
	RunID   string
	Results []scrape.Result
}

// Succeeded counts results with status Success.
func (s Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

// Failed counts every other result.
func (s Summary) Failed() int { return len(s.Results) - s.Succeeded() }

func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	strategies, err := extract.ParseStrategies(cfg.Containers)
	if err != nil {
		return nil, err
	}
	if cfg.Readability {
		strategies = append(strategies, extract.ReadabilityStrategy{})
	}
	x := extract.New(strategies...)
	if cfg.MinBodyChars > 0 {
		x.MinBodyChars = cfg.MinBodyChars
	}

	runID := uuid.NewString()
	a := &App{
		cfg:    cfg,
		runID:  runID,
		logger: log.With().Str("run", runID).Logger(),
	}
	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				a.logger.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			n, err := cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge)
			if err != nil {
				a.logger.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache purge failed")
			} else if n > 0 {
				a.logger.Debug().Int("removed", n).Msg("purged stale cache entries")
			}
		}
		a.httpCache = &cache.HTTPCache{Dir: cfg.CacheDir}
	}

	f := fetch.New(a.httpCache)
	f.HTTPClient = newHTTPClient(cfg.Timeout)
	if cfg.UserAgent != "" {
		f.UserAgent = cfg.UserAgent
	}
	if cfg.Timeout > 0 {
		f.Timeout = cfg.Timeout
	}
	a.processor = &scrape.Processor{Fetcher: f, Extractor: x, Dir: cfg.ArticlesDir}
	return a, nil
}

// RunID identifies this run in log output.
func (a *App) RunID() string { return a.runID }

// Run reads every input row and processes it in order. Input errors are fatal
// and returned before anything is fetched. Row failures are recorded in the
// log and never stop the batch. The log is written once at the end, also when
// ctx is cancelled midway, provided at least one row was handled.
func (a *App) Run(ctx context.Context) (sum Summary, err error) {
	sum.RunID = a.runID

	rows, err := input.Load(a.cfg.InputPath)
	if err != nil {
		return sum, fmt.Errorf("load input: %w", err)
	}
	if len(rows) == 0 {
		return sum, ErrNoRequests
	}
	a.logger.Info().Int("rows", len(rows)).Str("input", a.cfg.InputPath).Msg("starting scrape")

	defer func() {
		if len(sum.Results) == 0 {
			return
		}
		logRows := make([]report.Row, 0, len(sum.Results))
		for _, r := range sum.Results {
			logRows = append(logRows, report.FromResult(r))
		}
		if werr := report.WriteCSV(a.cfg.LogPath, logRows); werr != nil {
			err = errors.Join(err, fmt.Errorf("write log: %w", werr))
		}
	}()

	for _, row := range rows {
		if cerr := ctx.Err(); cerr != nil {
			a.logger.Warn().Err(cerr).Int("done", len(sum.Results)).Msg("run interrupted")
			return sum, cerr
		}
		sum.Results = append(sum.Results, a.processRow(ctx, row))
	}

	a.logger.Info().
		Int("succeeded", sum.Succeeded()).
		Int("failed", sum.Failed()).
		Str("log", a.cfg.LogPath).
		Msg("scraping complete")
	return sum, nil
}

func (a *App) processRow(ctx context.Context, row input.Row) scrape.Result {
	req := scrape.Request{ID: row.ID, URL: row.URL}
	if row.ID == "" {
		res := scrape.Reject(req, MissingIDDetail)
		a.logger.Warn().Int("row", row.Number).Str("url", row.URL).Msg("skipping row without URL_ID")
		return res
	}

	a.logger.Info().Msgf("Scraping %s: %s", row.ID, row.URL)
	res := a.processor.Process(ctx, req)

	ev := a.logger.Debug()
	if !res.OK() {
		ev = a.logger.Warn()
	}
	ev.Str("id", res.ID).
		Str("url", res.URL).
		Str("status", res.StatusText()).
		Str("tier", res.Tier).
		Msg("processed")
	return res
}
