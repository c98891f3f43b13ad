package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// csvHeader is the fixed catalog column set shared by run exports and
// the merge tooling.
var csvHeader = []string{
	"filename", "path", "title", "url",
	"boiler_type", "category", "file_size_bytes", "page_count", "download_date",
}

// WriteCatalogCSV writes records to a catalog CSV file.
func WriteCatalogCSV(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating catalog csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, rec := range records {
		row := []string{
			rec.Filename,
			rec.LocalPath,
			rec.Title,
			rec.URL,
			rec.BoilerType,
			rec.Category,
			strconv.FormatInt(rec.SizeBytes, 10),
			strconv.Itoa(rec.PageCount),
			rec.FetchedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ReadCatalogCSV reads a catalog CSV file back into records. Rows with
// unparseable numeric fields keep zero values rather than failing the
// whole file.
func ReadCatalogCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := Record{
			Filename:   field(row, "filename"),
			LocalPath:  field(row, "path"),
			Title:      field(row, "title"),
			URL:        field(row, "url"),
			BoilerType: field(row, "boiler_type"),
			Category:   field(row, "category"),
		}
		rec.SizeBytes, _ = strconv.ParseInt(field(row, "file_size_bytes"), 10, 64)
		rec.PageCount, _ = strconv.Atoi(field(row, "page_count"))
		if ts := field(row, "download_date"); ts != "" {
			rec.FetchedAt, _ = time.Parse(time.RFC3339, ts)
		}
		records = append(records, rec)
	}

	return records, nil
}

// LoadCatalogDir reads every catalog CSV export in a directory.
func LoadCatalogDir(dir string) ([]Record, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "pdf_catalog_*.csv"))
	if err != nil {
		return nil, err
	}

	var all []Record
	for _, path := range matches {
		records, err := ReadCatalogCSV(path)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

// Dedup removes records with duplicate URLs, keeping the first
// occurrence. Idempotent: Dedup(Dedup(x)) == Dedup(x).
func Dedup(records []Record) []Record {
	seen := make(map[string]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if seen[rec.URL] {
			continue
		}
		seen[rec.URL] = true
		out = append(out, rec)
	}
	return out
}
