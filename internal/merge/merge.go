package merge

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/catalog"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/logging"
)

// Merger combines catalog exports from multiple runs into one
// deduplicated master catalog.
type Merger struct {
	log zerolog.Logger
}

func New() *Merger {
	return &Merger{log: logging.GetLogger("merge")}
}

// Outputs lists the files a merge produces.
type Outputs struct {
	CatalogCSV  string
	CatalogJSON string
	URLList     string
	Markdown    string
	Report      string
}

// Merge loads every catalog CSV matched by the patterns, deduplicates
// by URL keeping the first occurrence, and writes the combined exports
// into outDir.
func (m *Merger) Merge(patterns []string, outDir string) (*Outputs, []catalog.Record, error) {
	var all []catalog.Record
	var sources int

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, path := range matches {
			records, err := catalog.ReadCatalogCSV(path)
			if err != nil {
				m.log.Warn().Str("path", path).Err(err).Msg("Skipping unreadable catalog")
				continue
			}
			all = append(all, records...)
			sources++
			m.log.Debug().Str("path", path).Int("records", len(records)).Msg("Loaded catalog")
		}
	}

	if sources == 0 {
		return nil, nil, fmt.Errorf("no catalog files matched %v", patterns)
	}

	merged := catalog.Dedup(all)
	m.log.Info().
		Int("sources", sources).
		Int("records", len(all)).
		Int("unique", len(merged)).
		Msg("Catalogs merged")

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating output dir: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	out := &Outputs{
		CatalogCSV:  filepath.Join(outDir, fmt.Sprintf("merged_catalog_%s.csv", stamp)),
		CatalogJSON: filepath.Join(outDir, fmt.Sprintf("merged_catalog_%s.json", stamp)),
		URLList:     filepath.Join(outDir, fmt.Sprintf("all_urls_%s.txt", stamp)),
		Markdown:    filepath.Join(outDir, fmt.Sprintf("merged_catalog_%s.md", stamp)),
		Report:      filepath.Join(outDir, fmt.Sprintf("merge_report_%s.txt", stamp)),
	}

	if err := catalog.WriteCatalogCSV(out.CatalogCSV, merged); err != nil {
		return nil, nil, err
	}
	if err := catalog.WriteOrganizedJSON(out.CatalogJSON, merged); err != nil {
		return nil, nil, err
	}
	if err := catalog.WriteURLList(out.URLList, merged); err != nil {
		return nil, nil, err
	}
	if err := catalog.WriteMarkdown(out.Markdown, merged); err != nil {
		return nil, nil, err
	}
	if err := os.WriteFile(out.Report, []byte(Report(merged, len(all))), 0644); err != nil {
		return nil, nil, fmt.Errorf("writing merge report: %w", err)
	}

	return out, merged, nil
}

// Report renders merge statistics: totals, per-type and per-category
// counts, the busiest source domains and the extension breakdown.
func Report(records []catalog.Record, totalLoaded int) string {
	byType := make(map[string]int)
	byCategory := make(map[string]int)
	byDomain := make(map[string]int)
	byExt := make(map[string]int)
	var totalSize int64

	for _, rec := range records {
		byType[rec.BoilerType]++
		byCategory[rec.Category]++
		totalSize += rec.SizeBytes

		if parsed, err := url.Parse(rec.URL); err == nil && parsed.Hostname() != "" {
			byDomain[strings.TrimPrefix(parsed.Hostname(), "www.")]++
		}

		ext := strings.ToLower(filepath.Ext(rec.Filename))
		if ext == "" {
			ext = "(none)"
		}
		byExt[ext]++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Merge Report\n============\n\n")
	fmt.Fprintf(&b, "Records loaded:   %d\n", totalLoaded)
	fmt.Fprintf(&b, "Unique records:   %d\n", len(records))
	fmt.Fprintf(&b, "Duplicates:       %d\n", totalLoaded-len(records))
	fmt.Fprintf(&b, "Total size:       %.1f MB\n\n", float64(totalSize)/(1024*1024))

	writeSection(&b, "By boiler type", byType, 0)
	writeSection(&b, "By category", byCategory, 0)
	writeSection(&b, "Top domains", byDomain, 10)
	writeSection(&b, "By extension", byExt, 0)

	return b.String()
}

// writeSection prints counts sorted by frequency, then name. A limit of
// zero prints everything.
func writeSection(b *strings.Builder, title string, counts map[string]int, limit int) {
	if len(counts) == 0 {
		return
	}

	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	fmt.Fprintf(b, "%s:\n", title)
	for _, e := range entries {
		fmt.Fprintf(b, "  %-45s %d\n", e.name, e.count)
	}
	b.WriteString("\n")
}
