package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const imagePage = `<html><body>
<a class="iusc" m='{"murl":"https://img.example.com/boiler1.jpg","t":"Fire tube boiler"}'></a>
<a class="iusc" m='{"murl":"https://img.example.com/diagram.png","t":"Boiler diagram"}'></a>
<a class="iusc" m='{"murl":"https://img.example.com/clip.mp4","t":"not an image"}'></a>
<a class="iusc" m='{"murl":"https://img.example.com/boiler1.jpg","t":"duplicate"}'></a>
<a class="iusc"></a>
<a class="other" m='{"murl":"https://img.example.com/ignored.jpg"}'></a>
</body></html>`

func TestImageScraperSearch(t *testing.T) {
	var firstParams []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		firstParams = append(firstParams, r.URL.Query().Get("first"))
		if len(firstParams) > 1 {
			// later pages are empty, pagination stops
			fmt.Fprint(w, "<html><body></body></html>")
			return
		}
		assert.Equal(t, "fire tube boiler", r.URL.Query().Get("q"))
		fmt.Fprint(w, imagePage)
	}))
	defer srv.Close()

	cfg := DefaultImageConfig()
	cfg.BaseURL = srv.URL
	scraper := NewImageScraper(cfg)

	candidates, err := scraper.Search(context.Background(), "fire tube boiler", 10)
	require.NoError(t, err)

	require.Len(t, candidates, 2, "video link, duplicate and malformed tiles are dropped")
	assert.Equal(t, "https://img.example.com/boiler1.jpg", candidates[0].URL)
	assert.Equal(t, "Fire tube boiler", candidates[0].Title)
	assert.Equal(t, "https://img.example.com/diagram.png", candidates[1].URL)
	assert.Equal(t, "fire tube boiler", candidates[0].SourceQuery)

	require.GreaterOrEqual(t, len(firstParams), 2)
	assert.Equal(t, "0", firstParams[0])
	assert.Equal(t, "35", firstParams[1], "page offset advances by one result page")
}

func TestImageScraperMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, imagePage)
	}))
	defer srv.Close()

	cfg := DefaultImageConfig()
	cfg.BaseURL = srv.URL
	scraper := NewImageScraper(cfg)

	candidates, err := scraper.Search(context.Background(), "boiler", 1)
	require.NoError(t, err)
	assert.Len(t, candidates, 1)
}

func TestImageScraperFirstPageError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cfg := DefaultImageConfig()
	cfg.BaseURL = srv.URL
	scraper := NewImageScraper(cfg)

	_, err := scraper.Search(context.Background(), "boiler", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}

func TestAcceptableImageURL(t *testing.T) {
	assert.True(t, acceptableImageURL("https://x.com/a.JPG"))
	assert.True(t, acceptableImageURL("https://x.com/a.jpeg?size=large"))
	assert.True(t, acceptableImageURL("https://x.com/a.png"))
	assert.False(t, acceptableImageURL("https://x.com/a.gif"))
	assert.False(t, acceptableImageURL("https://x.com/watch?v=a.jpg"))
	assert.False(t, acceptableImageURL(""))
}
