package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/catalog"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/logging"
)

const defaultSearchTimeout = 30 * time.Second

// ClientConfig configures the document search API client.
type ClientConfig struct {
	Endpoint   string        `json:"endpoint" yaml:"endpoint"`
	APIKey     string        `json:"api_key" yaml:"api_key"`
	Timeout    time.Duration `json:"timeout" yaml:"timeout"`
	UserAgent  string        `json:"user_agent" yaml:"user_agent"`
	AppendPDF  bool          `json:"append_pdf" yaml:"append_pdf"`
	MaxRetries int           `json:"max_retries" yaml:"max_retries"`
}

// DefaultClientConfig returns settings for the hosted search API.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Endpoint:   "https://api.exa.ai/search",
		Timeout:    defaultSearchTimeout,
		UserAgent:  "BoilerDataTool/1.0",
		AppendPDF:  true,
		MaxRetries: 1,
	}
}

// Client queries a JSON search API for candidate documents.
type Client struct {
	config *ClientConfig
	http   *http.Client
	log    zerolog.Logger
}

// NewClient builds a search client. The API key must be set.
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		config = DefaultClientConfig()
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("search API key is required")
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultSearchTimeout
	}

	return &Client{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
		log:    logging.GetLogger("search-client"),
	}, nil
}

type searchRequest struct {
	Query      string `json:"query"`
	NumResults int    `json:"num_results"`
	Category   string `json:"category,omitempty"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	URL           string  `json:"url"`
	Title         string  `json:"title"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date"`
	Author        string  `json:"author"`
}

// Search issues one API query and maps the hits to candidates. The
// query is annotated with a filetype hint so the engine favors direct
// document links.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]catalog.Candidate, error) {
	text := query
	if c.config.AppendPDF && !strings.Contains(strings.ToLower(text), "filetype:pdf") {
		text += " filetype:pdf"
	}

	payload, err := json.Marshal(searchRequest{
		Query:      text,
		NumResults: maxResults,
		Category:   "pdf",
	})
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		candidates, err := c.doSearch(ctx, query, payload)
		if err == nil {
			return candidates, nil
		}
		lastErr = err
		c.log.Warn().Str("query", query).Int("attempt", attempt+1).Err(err).Msg("Search attempt failed")
	}
	return nil, lastErr
}

func (c *Client) doSearch(ctx context.Context, query string, payload []byte) ([]catalog.Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.config.APIKey)
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search API returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	now := time.Now().UTC()
	candidates := make([]catalog.Candidate, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.URL == "" {
			continue
		}
		candidates = append(candidates, catalog.Candidate{
			URL:           r.URL,
			Title:         r.Title,
			SourceQuery:   query,
			Score:         r.Score,
			PublishedDate: r.PublishedDate,
			Author:        r.Author,
			DiscoveredAt:  now,
		})
	}

	c.log.Debug().Str("query", query).Int("results", len(candidates)).Msg("Search complete")
	return candidates, nil
}
