package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/search"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/catalog"
)

const electricKeywords = `# Electric Boiler keywords

# Category: Technical Manuals
electric boiler cutaway diagram
electric boiler element assembly

# Category: Failure Cases
electric boiler scale damage
`

const biomassKeywords = `# Category: Technical Manuals
biomass boiler grate diagram
`

func writeKeywordDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

// imageStub returns two fixed URLs for every query plus one unique to
// the query, so cross-boiler deduplication is observable.
type imageStub struct {
	queries []string
}

func (b *imageStub) Search(_ context.Context, query string, _ int) ([]catalog.Candidate, error) {
	b.queries = append(b.queries, query)
	return []catalog.Candidate{
		{URL: "https://img.example.com/shared.jpg", Title: "shared", SourceQuery: query},
		{URL: fmt.Sprintf("https://img.example.com/q%d.png", len(b.queries)), SourceQuery: query},
	}, nil
}

func TestImageCollectorEndToEnd(t *testing.T) {
	keywordDir := writeKeywordDir(t, map[string]string{
		"electric_boiler.txt": electricKeywords,
		"biomass_boiler.txt":  biomassKeywords,
	})
	outDir := t.TempDir()

	cfg := testRunConfig(t)
	stub := &imageStub{}

	report, err := NewImageCollector(cfg, stub, false).Collect(context.Background(), keywordDir, outDir)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Boilers)
	assert.Equal(t, 4, report.Queries)
	assert.Contains(t, stub.queries, "electric boiler cutaway diagram")
	assert.Contains(t, stub.queries, "biomass boiler grate diagram")

	// shared.jpg counted once, plus one unique URL per query
	assert.Equal(t, 5, report.URLs)
	assert.Zero(t, report.Downloaded)

	require.Len(t, report.Catalogs, 2)
	assert.FileExists(t, filepath.Join(outDir, "biomass_boiler_urls.csv"))
	assert.FileExists(t, filepath.Join(outDir, "electric_boiler_urls.csv"))

	// catalogs carry boiler_type, category and url columns; the shared
	// URL stays with biomass, which sorts first in the keyword dir
	data, err := os.ReadFile(filepath.Join(outDir, "biomass_boiler_urls.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "boiler_type,category,image_url")
	assert.Contains(t, string(data), "Biomass Boiler,Technical Manuals,https://img.example.com/shared.jpg")

	data, err = os.ReadFile(filepath.Join(outDir, "electric_boiler_urls.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Electric Boiler,Failure Cases,")
	assert.NotContains(t, string(data), "shared.jpg", "URLs are unique across boilers")
}

func TestImageCollectorScraperIntegration(t *testing.T) {
	png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 2048)...)

	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/boiler.png" {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(png)
			return
		}
		if r.URL.Query().Get("first") != "0" {
			fmt.Fprint(w, "<html><body></body></html>")
			return
		}
		fmt.Fprintf(w, `<html><body>
<a class="iusc" m='{"murl":"%s/boiler.png","t":"Boiler photo"}'></a>
</body></html>`, srvURL)
	}))
	defer srv.Close()
	srvURL = srv.URL

	keywordDir := writeKeywordDir(t, map[string]string{
		"electric_boiler.txt": "# Category: Technical Manuals\nelectric boiler diagram\n",
	})
	outDir := t.TempDir()

	cfg := testRunConfig(t)
	cfg.Images.BaseURL = srv.URL

	scraper := search.NewImageScraper(cfg.Images)
	report, err := NewImageCollector(cfg, scraper, true).Collect(context.Background(), keywordDir, outDir)
	require.NoError(t, err)

	assert.Equal(t, 1, report.URLs)
	assert.Equal(t, 1, report.Downloaded)
	assert.Zero(t, report.Failed)

	// the image lands under <type folder>/<category folder>, named
	// from the tile title
	assert.FileExists(t, filepath.Join(outDir, "electric_boiler", "technical", "Boiler_photo.png"))
}

func TestImageCollectorEmptyKeywordDir(t *testing.T) {
	cfg := testRunConfig(t)
	_, err := NewImageCollector(cfg, &imageStub{}, false).Collect(context.Background(), t.TempDir(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no keyword files")
}
