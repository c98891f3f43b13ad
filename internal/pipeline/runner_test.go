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

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/config"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/catalog"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/taxonomy"
)

// stubBackend returns one downloadable candidate and one candidate on
// an excluded aggregator per query.
type stubBackend struct {
	fileServer string
	queries    []string
}

func (b *stubBackend) Search(_ context.Context, query string, _ int) ([]catalog.Candidate, error) {
	b.queries = append(b.queries, query)
	n := len(b.queries)
	return []catalog.Candidate{
		{URL: fmt.Sprintf("%s/doc-%d.pdf", b.fileServer, n), Title: fmt.Sprintf("Doc %d", n), SourceQuery: query},
		{URL: fmt.Sprintf("https://www.scribd.com/doc/%d.pdf", n), Title: "aggregator copy", SourceQuery: query},
	}, nil
}

func testPDFServer(t *testing.T) *httptest.Server {
	t.Helper()
	body := append([]byte("%PDF-1.4\n"), make([]byte, 2048)...)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testRunConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	cfg.Search.APIKey = "test"
	cfg.SearchDelay = 0
	cfg.DownloadDelay = 0
	cfg.RespectRobots = false
	cfg.ResultsPerQuery = 2
	cfg.Fetcher.ValidatePDF = false
	return cfg
}

func TestRunnerEndToEnd(t *testing.T) {
	srv := testPDFServer(t)
	cfg := testRunConfig(t)
	backend := &stubBackend{fileServer: srv.URL}

	runner, err := New(cfg, backend)
	require.NoError(t, err)

	entries := []taxonomy.Entry{
		{ID: 1, TypeName: "Fire Tube Boiler", Models: []string{"FT-100"}, Manufacturers: []string{"Cleaver-Brooks"}},
	}

	report, err := runner.Run(context.Background(), entries)
	require.NoError(t, err)

	queryCount := len(backend.queries)
	require.Greater(t, queryCount, 0)

	snap := runner.Store().Snapshot()
	assert.Equal(t, queryCount, snap.TotalSearches)
	assert.Contains(t, snap.CompletedBoilers, "Fire Tube Boiler")

	// one downloadable candidate per query, aggregator copies filtered
	records := runner.Store().Records()
	assert.Len(t, records, queryCount)
	assert.Equal(t, queryCount, report.Summary.TotalDownloads)
	assert.Empty(t, runner.Store().Failures(), "filtered candidates are not failures")
	assert.Equal(t, 2*queryCount, report.Summary.TotalFound)

	// files land under <type folder>/<category folder>
	firstDir := filepath.Dir(records[0].LocalPath)
	assert.Equal(t, "fire_tube_boiler", filepath.Base(filepath.Dir(firstDir)))

	// exports are written
	require.NotNil(t, report.Exports)
	for _, path := range []string{report.Exports.CatalogCSV, report.Exports.CatalogJSON, report.Exports.URLList, report.Exports.Markdown} {
		_, statErr := os.Stat(path)
		assert.NoError(t, statErr, path)
	}
}

func TestRunnerResumeSkipsCompleted(t *testing.T) {
	srv := testPDFServer(t)
	cfg := testRunConfig(t)
	entries := []taxonomy.Entry{
		{ID: 1, TypeName: "Fire Tube Boiler", Models: []string{"FT-100"}},
	}

	first := &stubBackend{fileServer: srv.URL}
	runner, err := New(cfg, first)
	require.NoError(t, err)
	_, err = runner.Run(context.Background(), entries)
	require.NoError(t, err)
	require.NotEmpty(t, first.queries)

	// a second run over the same output dir skips the completed type
	second := &stubBackend{fileServer: srv.URL}
	resumed, err := New(cfg, second)
	require.NoError(t, err)
	_, err = resumed.Run(context.Background(), entries)
	require.NoError(t, err)
	assert.Empty(t, second.queries, "completed boiler types are not re-searched")
}

func TestRunnerRecordsFetchFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := testRunConfig(t)
	cfg.Fetcher.Attempts = 1
	backend := &stubBackend{fileServer: srv.URL}

	runner, err := New(cfg, backend)
	require.NoError(t, err)

	_, err = runner.Run(context.Background(), []taxonomy.Entry{
		{ID: 1, TypeName: "Fire Tube Boiler", Models: []string{"FT-100"}},
	})
	require.NoError(t, err)

	assert.Empty(t, runner.Store().Records())
	failures := runner.Store().Failures()
	require.NotEmpty(t, failures)
	assert.Contains(t, failures[0].Reason, "HTTP 404")
}

func TestRunnerContextCancellation(t *testing.T) {
	srv := testPDFServer(t)
	cfg := testRunConfig(t)
	backend := &stubBackend{fileServer: srv.URL}

	runner, err := New(cfg, backend)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = runner.Run(ctx, []taxonomy.Entry{
		{ID: 1, TypeName: "Fire Tube Boiler", Models: []string{"FT-100"}},
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, backend.queries)
}
