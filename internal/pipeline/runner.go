package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/compliance"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/config"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/fetcher"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/filter"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/search"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/catalog"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/logging"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/querygen"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/taxonomy"
)

// Runner drives one collection run: taxonomy entries are expanded into
// queries, queries into candidates, candidates into verified catalog
// records. Processing is sequential so the progress snapshot on disk is
// always consistent with the catalog.
type Runner struct {
	cfg     *config.Config
	backend search.Backend
	filter  *filter.Filter
	fetcher *fetcher.Fetcher
	store   *catalog.Store
	log     zerolog.Logger

	totalFound int
}

// Report summarizes a finished run.
type Report struct {
	RunID   string
	Summary catalog.Summary
	Exports *catalog.ExportPaths
}

// New wires a runner from configuration. The backend is injected so
// callers can choose the document API, the image scraper, or a stub.
func New(cfg *config.Config, backend search.Backend) (*Runner, error) {
	store, err := catalog.NewStore(cfg.OutputDir, uuid.New().String())
	if err != nil {
		return nil, fmt.Errorf("opening catalog store: %w", err)
	}

	if cfg.Resume {
		if err := store.Resume(); err != nil {
			return nil, fmt.Errorf("resuming prior run: %w", err)
		}
	}

	var robots *compliance.RobotsCache
	if cfg.RespectRobots {
		robots = compliance.NewRobotsCache(cfg.Fetcher.UserAgent)
	}

	return &Runner{
		cfg:     cfg,
		backend: backend,
		filter:  filter.New(cfg.Policy(), cfg.ExcludedDomains...),
		fetcher: fetcher.New(cfg.Fetcher, robots),
		store:   store,
		log:     logging.GetLogger("pipeline"),
	}, nil
}

// Store exposes the underlying catalog for inspection after a run.
func (r *Runner) Store() *catalog.Store { return r.store }

// Run processes every entry, exports the catalog and returns the run
// report. Context cancellation stops between operations; everything
// already cataloged stays checkpointed on disk.
func (r *Runner) Run(ctx context.Context, entries []taxonomy.Entry) (*Report, error) {
	runID := r.store.Snapshot().RunID
	r.log.Info().Str("run_id", runID).Int("entries", len(entries)).Msg("Starting collection run")

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return r.finish(runID, err)
		}
		if r.cfg.Resume && r.store.Completed(entry.TypeName) {
			r.log.Info().Str("boiler_type", entry.TypeName).Msg("Already completed, skipping")
			continue
		}
		if err := r.processEntry(ctx, entry); err != nil {
			return r.finish(runID, err)
		}
	}

	return r.finish(runID, nil)
}

func (r *Runner) finish(runID string, runErr error) (*Report, error) {
	exports, err := r.store.Export()
	if err != nil {
		r.log.Error().Err(err).Msg("Catalog export failed")
		if runErr == nil {
			runErr = err
		}
	}

	report := &Report{
		RunID:   runID,
		Summary: r.store.Summarize(r.totalFound),
		Exports: exports,
	}

	r.log.Info().
		Str("run_id", runID).
		Int("found", report.Summary.TotalFound).
		Int("downloaded", report.Summary.TotalDownloads).
		Int("failed", report.Summary.TotalFailures).
		Msg("Collection run finished")

	return report, runErr
}

func (r *Runner) processEntry(ctx context.Context, entry taxonomy.Entry) error {
	log := logging.GetRunLogger(r.store.Snapshot().RunID, entry.TypeName)
	log.Info().Msg("Processing boiler type")

	if err := r.store.SetCurrentBoiler(entry.TypeName); err != nil {
		return err
	}

	queries := querygen.GenerateAll(entry)
	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.processQuery(ctx, entry, q); err != nil {
			return err
		}
	}

	return r.store.CompleteBoiler(entry.TypeName)
}

func (r *Runner) processQuery(ctx context.Context, entry taxonomy.Entry, q querygen.Query) error {
	candidates, err := r.backend.Search(ctx, q.Text, r.cfg.ResultsPerQuery)
	if recordErr := r.store.RecordSearch(); recordErr != nil {
		return recordErr
	}
	if err != nil {
		// One failed query never aborts the run.
		r.log.Warn().Str("query", q.Text).Err(err).Msg("Search failed")
		sleep(ctx, r.cfg.SearchDelay.Std())
		return nil
	}

	for _, c := range candidates {
		c.BoilerType = entry.TypeName
		c.Category = string(q.Category)
		if c.SourceQuery == "" {
			c.SourceQuery = q.Text
		}
		r.totalFound++

		if r.store.Has(c.URL) {
			continue
		}
		if !r.filter.Accept(c) {
			r.log.Debug().Str("url", c.URL).Msg("Candidate filtered out")
			continue
		}

		r.download(ctx, c, q.Category)
		sleep(ctx, r.cfg.DownloadDelay.Std())
	}

	sleep(ctx, r.cfg.SearchDelay.Std())
	return nil
}

func (r *Runner) download(ctx context.Context, c catalog.Candidate, category taxonomy.Category) {
	destDir := filepath.Join(r.cfg.OutputDir, taxonomy.FolderName(c.BoilerType), category.FolderName())

	result := r.fetcher.Fetch(ctx, c, destDir, fetcher.KindPDF)
	switch result.Status {
	case fetcher.StatusSuccess:
		added, err := r.store.Add(catalog.Record{
			URL:        c.URL,
			LocalPath:  result.Path,
			Filename:   result.Filename,
			Title:      c.Title,
			BoilerType: c.BoilerType,
			Category:   c.Category,
			SizeBytes:  result.SizeBytes,
			PageCount:  result.PageCount,
			FetchedAt:  time.Now().UTC(),
		})
		if err != nil {
			r.log.Error().Str("url", c.URL).Err(err).Msg("Catalog write failed")
		} else if added {
			r.log.Info().Str("url", c.URL).Str("file", result.Filename).Msg("Downloaded")
		}
	default:
		if err := r.store.AddFailure(catalog.Failure{
			URL:        c.URL,
			Title:      c.Title,
			BoilerType: c.BoilerType,
			Category:   c.Category,
			Reason:     result.Reason,
		}); err != nil {
			r.log.Error().Str("url", c.URL).Err(err).Msg("Failure record write failed")
		}
	}
}

// sleep pauses between network operations, returning early on
// cancellation.
func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
