package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ExportPaths lists the files written by a catalog export.
type ExportPaths struct {
	CatalogCSV  string
	CatalogJSON string
	URLList     string
	Markdown    string
	Failures    string
}

// Export writes the run's accumulated catalog to every sink format:
// CSV, JSON, plain-text URL list, Markdown grouped by type and
// category, plus a failed-downloads JSON when failures occurred.
func (s *Store) Export() (*ExportPaths, error) {
	stamp := time.Now().Format("20060102_150405")
	records := Dedup(s.records)

	paths := &ExportPaths{
		CatalogCSV:  filepath.Join(s.baseDir, fmt.Sprintf("pdf_catalog_%s.csv", stamp)),
		CatalogJSON: filepath.Join(s.baseDir, fmt.Sprintf("pdf_catalog_%s.json", stamp)),
		URLList:     filepath.Join(s.baseDir, fmt.Sprintf("all_urls_%s.txt", stamp)),
		Markdown:    filepath.Join(s.baseDir, fmt.Sprintf("catalog_%s.md", stamp)),
	}

	if err := WriteCatalogCSV(paths.CatalogCSV, records); err != nil {
		return nil, err
	}
	if err := writeJSON(paths.CatalogJSON, records); err != nil {
		return nil, err
	}
	if err := WriteURLList(paths.URLList, records); err != nil {
		return nil, err
	}
	if err := WriteMarkdown(paths.Markdown, records); err != nil {
		return nil, err
	}

	if len(s.failures) > 0 {
		paths.Failures = filepath.Join(s.baseDir, fmt.Sprintf("failed_downloads_%s.json", stamp))
		if err := writeJSON(paths.Failures, s.failures); err != nil {
			return nil, err
		}
	}

	s.log.Info().
		Int("records", len(records)).
		Int("failures", len(s.failures)).
		Str("catalog_csv", paths.CatalogCSV).
		Msg("Catalog exported")

	return paths, nil
}

// WriteURLList writes one URL per line with a count header.
func WriteURLList(path string, records []Record) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# All URLs - Total: %d\n", len(records))
	fmt.Fprintf(&b, "# Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	for _, rec := range records {
		b.WriteString(rec.URL)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// Organize groups records by boiler type, then category.
func Organize(records []Record) map[string]map[string][]Record {
	organized := make(map[string]map[string][]Record)
	for _, rec := range records {
		byCategory, ok := organized[rec.BoilerType]
		if !ok {
			byCategory = make(map[string][]Record)
			organized[rec.BoilerType] = byCategory
		}
		byCategory[rec.Category] = append(byCategory[rec.Category], rec)
	}
	return organized
}

// WriteMarkdown writes a human-readable listing grouped by boiler type
// and category.
func WriteMarkdown(path string, records []Record) error {
	organized := Organize(records)

	var b strings.Builder
	b.WriteString("# Industrial Boiler Documentation Catalog\n\n")
	fmt.Fprintf(&b, "**Total records:** %d\n", len(records))
	fmt.Fprintf(&b, "**Generated:** %s\n\n---\n\n", time.Now().Format("2006-01-02 15:04:05"))

	for _, boilerType := range sortedKeys(organized) {
		fmt.Fprintf(&b, "## %s\n\n", boilerType)

		byCategory := organized[boilerType]
		for _, category := range sortedKeys(byCategory) {
			recs := byCategory[category]
			fmt.Fprintf(&b, "### %s (%d)\n\n", category, len(recs))
			for i, rec := range recs {
				if rec.Title != "" {
					fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, rec.Title, rec.URL)
				} else {
					fmt.Fprintf(&b, "%d. %s\n", i+1, rec.URL)
				}
			}
			b.WriteByte('\n')
		}
	}

	return os.WriteFile(path, []byte(b.String()), 0644)
}

// WriteOrganizedJSON writes the type -> category -> {count, urls}
// hierarchy used by the merge tooling.
func WriteOrganizedJSON(path string, records []Record) error {
	type categoryURLs struct {
		Count int      `json:"count"`
		URLs  []string `json:"urls"`
	}

	out := make(map[string]map[string]categoryURLs)
	for boilerType, byCategory := range Organize(records) {
		out[boilerType] = make(map[string]categoryURLs)
		for category, recs := range byCategory {
			urls := make([]string, len(recs))
			for i, rec := range recs {
				urls[i] = rec.URL
			}
			out[boilerType][category] = categoryURLs{Count: len(urls), URLs: urls}
		}
	}

	return writeJSON(path, out)
}

// Summary aggregates run totals for the final report.
type Summary struct {
	TotalSearches  int
	TotalFound     int
	TotalDownloads int
	TotalFailures  int
	TotalSizeBytes int64
	ByBoilerType   map[string]int
	ByCategory     map[string]int
}

// Summarize computes the final run tally.
func (s *Store) Summarize(totalFound int) Summary {
	sum := Summary{
		TotalSearches:  s.snap.TotalSearches,
		TotalFound:     totalFound,
		TotalDownloads: len(s.records),
		TotalFailures:  len(s.failures),
		ByBoilerType:   make(map[string]int),
		ByCategory:     make(map[string]int),
	}
	for _, rec := range s.records {
		sum.TotalSizeBytes += rec.SizeBytes
		sum.ByBoilerType[rec.BoilerType]++
		sum.ByCategory[rec.Category]++
	}
	return sum
}

// SuccessRate reports downloads over found candidates as a percentage.
func (sum Summary) SuccessRate() float64 {
	if sum.TotalFound == 0 {
		return 0
	}
	return float64(sum.TotalDownloads) / float64(sum.TotalFound) * 100
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
