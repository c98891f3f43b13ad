package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/catalog"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/logging"
)

const imagesPerPage = 35

// ImageConfig configures the image search scraper.
type ImageConfig struct {
	BaseURL   string        `json:"base_url" yaml:"base_url"`
	UserAgent string        `json:"user_agent" yaml:"user_agent"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
	MaxPages  int           `json:"max_pages" yaml:"max_pages"`
}

// DefaultImageConfig returns settings for Bing image search.
func DefaultImageConfig() *ImageConfig {
	return &ImageConfig{
		BaseURL:   "https://www.bing.com/images/search",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
		Timeout:   15 * time.Second,
		MaxPages:  3,
	}
}

// MaxResults returns how many URLs the configured page budget can
// yield at most.
func (c *ImageConfig) MaxResults() int {
	return c.MaxPages * imagesPerPage
}

// ImageScraper discovers image URLs by scraping an image search
// results page.
type ImageScraper struct {
	config *ImageConfig
	http   *http.Client
	log    zerolog.Logger
}

func NewImageScraper(config *ImageConfig) *ImageScraper {
	if config == nil {
		config = DefaultImageConfig()
	}
	return &ImageScraper{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
		log:    logging.GetLogger("image-search"),
	}
}

// tileMetadata is the JSON blob each result tile embeds in its "m"
// attribute.
type tileMetadata struct {
	MediaURL string `json:"murl"`
	Title    string `json:"t"`
}

// Search scrapes result pages until maxResults direct image URLs are
// collected or the configured page limit is reached.
func (s *ImageScraper) Search(ctx context.Context, query string, maxResults int) ([]catalog.Candidate, error) {
	seen := make(map[string]bool)
	var candidates []catalog.Candidate

	for page := 0; page < s.config.MaxPages && len(candidates) < maxResults; page++ {
		pageCandidates, err := s.searchPage(ctx, query, page)
		if err != nil {
			if page == 0 {
				return nil, err
			}
			s.log.Warn().Str("query", query).Int("page", page).Err(err).Msg("Image page fetch failed, stopping pagination")
			break
		}
		if len(pageCandidates) == 0 {
			break
		}
		for _, c := range pageCandidates {
			if seen[c.URL] {
				continue
			}
			seen[c.URL] = true
			candidates = append(candidates, c)
			if len(candidates) >= maxResults {
				break
			}
		}
	}

	s.log.Debug().Str("query", query).Int("results", len(candidates)).Msg("Image search complete")
	return candidates, nil
}

func (s *ImageScraper) searchPage(ctx context.Context, query string, page int) ([]catalog.Candidate, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("first", fmt.Sprintf("%d", page*imagesPerPage))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building image search request: %w", err)
	}
	req.Header.Set("User-Agent", s.config.UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image search returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing image search page: %w", err)
	}

	now := time.Now().UTC()
	var candidates []catalog.Candidate
	doc.Find("a.iusc").Each(func(_ int, sel *goquery.Selection) {
		raw, ok := sel.Attr("m")
		if !ok {
			return
		}
		var meta tileMetadata
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			return
		}
		if !acceptableImageURL(meta.MediaURL) {
			return
		}
		candidates = append(candidates, catalog.Candidate{
			URL:          meta.MediaURL,
			Title:        meta.Title,
			SourceQuery:  query,
			DiscoveredAt: now,
		})
	})

	return candidates, nil
}

// acceptableImageURL keeps only direct links to still-image formats the
// downloader can verify by signature.
func acceptableImageURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	lower := strings.ToLower(parsed.Path)
	return strings.HasSuffix(lower, ".jpg") ||
		strings.HasSuffix(lower, ".jpeg") ||
		strings.HasSuffix(lower, ".png")
}
