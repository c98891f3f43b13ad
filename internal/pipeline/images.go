package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/compliance"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/config"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/fetcher"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/search"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/catalog"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/logging"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/taxonomy"
)

// imageCSVHeader is the column set of the per-boiler image URL
// catalogs.
var imageCSVHeader = []string{"boiler_type", "category", "image_url"}

// ImageCollector walks a directory of per-boiler keyword files, runs
// every keyword through an image search backend, and writes one URL
// catalog CSV per boiler type. URLs are deduplicated across all
// boilers, first hit wins.
type ImageCollector struct {
	cfg     *config.Config
	backend search.Backend
	fetcher *fetcher.Fetcher
	log     zerolog.Logger
	seen    map[string]bool
}

// ImageReport summarizes one collection pass.
type ImageReport struct {
	Boilers    int
	Queries    int
	URLs       int
	Downloaded int
	Failed     int
	Catalogs   []string
}

// NewImageCollector builds a collector. With download enabled, every
// discovered URL is also fetched and signature-verified as an image.
func NewImageCollector(cfg *config.Config, backend search.Backend, download bool) *ImageCollector {
	c := &ImageCollector{
		cfg:     cfg,
		backend: backend,
		log:     logging.GetLogger("image-collector"),
		seen:    make(map[string]bool),
	}

	if download {
		var robots *compliance.RobotsCache
		if cfg.RespectRobots {
			robots = compliance.NewRobotsCache(cfg.Fetcher.UserAgent)
		}
		c.fetcher = fetcher.New(cfg.Fetcher, robots)
	}

	return c
}

// Collect processes every keyword file in keywordDir and writes the
// per-boiler URL catalogs (and downloads, when enabled) under outDir.
func (c *ImageCollector) Collect(ctx context.Context, keywordDir, outDir string) (*ImageReport, error) {
	files, err := taxonomy.LoadKeywordDir(keywordDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no keyword files found in %s", keywordDir)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	report := &ImageReport{}
	for _, kf := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := c.collectBoiler(ctx, kf, outDir, report); err != nil {
			return report, err
		}
		report.Boilers++
	}

	c.log.Info().
		Int("boilers", report.Boilers).
		Int("queries", report.Queries).
		Int("urls", report.URLs).
		Int("downloaded", report.Downloaded).
		Msg("Image collection finished")

	return report, nil
}

func (c *ImageCollector) collectBoiler(ctx context.Context, kf *taxonomy.KeywordFile, outDir string, report *ImageReport) error {
	log := c.log.With().Str("boiler_type", kf.BoilerType).Logger()
	log.Info().Int("categories", len(kf.Order)).Msg("Collecting image URLs")

	maxResults := c.cfg.Images.MaxResults()
	var rows [][]string

	for _, category := range kf.Order {
		for _, keyword := range kf.Categories[category] {
			if err := ctx.Err(); err != nil {
				return err
			}

			candidates, err := c.backend.Search(ctx, keyword, maxResults)
			if err != nil {
				// One failed keyword never aborts the collection.
				log.Warn().Str("keyword", keyword).Err(err).Msg("Image search failed")
				sleep(ctx, c.cfg.SearchDelay.Std())
				continue
			}
			report.Queries++

			for _, cand := range candidates {
				if c.seen[cand.URL] {
					continue
				}
				c.seen[cand.URL] = true
				rows = append(rows, []string{kf.BoilerType, category, cand.URL})
				report.URLs++

				if c.fetcher != nil {
					c.download(ctx, cand, kf.BoilerType, category, outDir, report)
				}
			}

			sleep(ctx, c.cfg.SearchDelay.Std())
		}
	}

	path := filepath.Join(outDir, imageCatalogName(kf.BoilerType))
	if err := writeImageCSV(path, rows); err != nil {
		return err
	}
	report.Catalogs = append(report.Catalogs, path)
	log.Info().Int("urls", len(rows)).Str("catalog", path).Msg("Image URL catalog written")

	return nil
}

func (c *ImageCollector) download(ctx context.Context, cand catalog.Candidate, boilerType, category, outDir string, report *ImageReport) {
	cand.BoilerType = boilerType
	cand.Category = category

	destDir := filepath.Join(outDir, taxonomy.FolderName(boilerType), taxonomy.Category(category).FolderName())
	result := c.fetcher.Fetch(ctx, cand, destDir, fetcher.KindImage)
	if result.Status == fetcher.StatusSuccess {
		report.Downloaded++
	} else {
		report.Failed++
		c.log.Debug().Str("url", cand.URL).Str("reason", result.Reason).Msg("Image fetch unsuccessful")
	}

	sleep(ctx, c.cfg.DownloadDelay.Std())
}

// imageCatalogName derives the per-boiler CSV name from the type name.
func imageCatalogName(boilerType string) string {
	return strings.ToLower(strings.ReplaceAll(boilerType, " ", "_")) + "_urls.csv"
}

func writeImageCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image catalog: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(imageCSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
