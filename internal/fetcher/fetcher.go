// Package fetcher retrieves candidate documents over HTTP, verifies
// their content, and persists them to disk. Failures are returned as
// data and never abort a batch.
package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/compliance"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/catalog"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/logging"
)

// Status classifies a fetch outcome.
type Status string

const (
	// StatusSuccess: bytes verified and persisted.
	StatusSuccess Status = "success"
	// StatusRejected: content did not match expectations (wrong type,
	// too small, missing signature, robots-disallowed).
	StatusRejected Status = "rejected"
	// StatusFailed: transport-level failure after all attempts.
	StatusFailed Status = "failed"
)

// Result is the outcome of one fetch.
type Result struct {
	Status    Status
	Path      string
	Filename  string
	SizeBytes int64
	PageCount int
	Reason    string
}

// Config controls fetch behavior.
type Config struct {
	UserAgent       string        `json:"user_agent" yaml:"user_agent"`
	Attempts        int           `json:"attempts" yaml:"attempts"`
	Timeout         time.Duration `json:"timeout" yaml:"timeout"`
	HeadTimeout     time.Duration `json:"head_timeout" yaml:"head_timeout"`
	RetryDelay      time.Duration `json:"retry_delay" yaml:"retry_delay"`
	MinSizeBytes    int64         `json:"min_size_bytes" yaml:"min_size_bytes"`
	ChunkSize       int           `json:"chunk_size" yaml:"chunk_size"`
	StrictSignature bool          `json:"strict_signature" yaml:"strict_signature"`
	ValidatePDF     bool          `json:"validate_pdf" yaml:"validate_pdf"`
	// InsecureDomains lists hosts fetched without TLS verification.
	// Verification is never disabled globally.
	InsecureDomains []string `json:"insecure_domains" yaml:"insecure_domains"`
}

// DefaultConfig returns the canonical fetch settings.
func DefaultConfig() *Config {
	return &Config{
		UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		Attempts:        2,
		Timeout:         10 * time.Second,
		HeadTimeout:     5 * time.Second,
		RetryDelay:      2 * time.Second,
		MinSizeBytes:    1024,
		ChunkSize:       8192,
		StrictSignature: true,
		ValidatePDF:     true,
	}
}

// Fetcher downloads and verifies candidate documents.
type Fetcher struct {
	config         *Config
	client         *http.Client
	insecureClient *http.Client
	robots         *compliance.RobotsCache
	log            zerolog.Logger
}

// New builds a fetcher. A nil robots cache disables the robots.txt
// gate.
func New(config *Config, robots *compliance.RobotsCache) *Fetcher {
	if config == nil {
		config = DefaultConfig()
	}

	f := &Fetcher{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		robots: robots,
		log:    logging.GetLogger("fetcher"),
	}

	if len(config.InsecureDomains) > 0 {
		f.insecureClient = &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}
	}

	return f
}

// Fetch retrieves one candidate into destDir. All outcomes are reported
// through the Result; Fetch never panics or returns an error.
func (f *Fetcher) Fetch(ctx context.Context, c catalog.Candidate, destDir string, kind Kind) Result {
	if f.robots != nil && !f.robots.Allowed(ctx, c.URL) {
		return Result{Status: StatusRejected, Reason: "blocked by robots.txt"}
	}

	// Cheap pre-check: reject obvious error pages before paying for a
	// full transfer. A failed HEAD is ignored.
	if reason := f.headPrecheck(ctx, c.URL); reason != "" {
		return Result{Status: StatusRejected, Reason: reason}
	}

	resp, err := f.get(ctx, c.URL)
	if err != nil {
		return Result{Status: StatusFailed, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if reason := f.verifyHeaders(resp); reason != "" {
		return Result{Status: StatusRejected, Reason: reason}
	}

	// Signature check on the first bytes of the body.
	head := make([]byte, 1024)
	n, err := io.ReadAtLeast(resp.Body, head, 4)
	if err != nil && n == 0 {
		return Result{Status: StatusFailed, Reason: fmt.Sprintf("reading body: %v", err)}
	}
	head = head[:n]

	if !MatchesSignature(kind, head) {
		if f.config.StrictSignature {
			return Result{Status: StatusRejected, Reason: fmt.Sprintf("missing %s signature", kind)}
		}
		f.log.Warn().Str("url", c.URL).Str("kind", string(kind)).Msg("Missing file signature, accepting anyway")
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return Result{Status: StatusFailed, Reason: fmt.Sprintf("creating dir: %v", err)}
	}

	path := ResolveCollision(destDir, filenameFor(c.Title, c.URL, Extension(kind, head)))

	size, err := f.persist(path, head, resp.Body)
	if err != nil {
		os.Remove(path)
		return Result{Status: StatusFailed, Reason: err.Error()}
	}

	if size < f.config.MinSizeBytes {
		os.Remove(path)
		return Result{Status: StatusRejected, Reason: fmt.Sprintf("file too small: %d bytes", size)}
	}

	result := Result{
		Status:    StatusSuccess,
		Path:      path,
		Filename:  strings.TrimPrefix(strings.TrimPrefix(path, destDir), string(os.PathSeparator)),
		SizeBytes: size,
	}

	if kind == KindPDF && f.config.ValidatePDF {
		pages, err := CountPDFPages(path)
		if err != nil {
			f.log.Warn().Str("path", path).Err(err).Msg("PDF validation failed")
		} else {
			result.PageCount = pages
		}
	}

	f.log.Debug().
		Str("url", c.URL).
		Str("path", path).
		Int64("size_bytes", size).
		Msg("Fetch complete")

	return result
}

// headPrecheck returns a rejection reason for obvious non-matching
// content types, or "" to proceed.
func (f *Fetcher) headPrecheck(ctx context.Context, rawURL string) string {
	headCtx, cancel := context.WithTimeout(ctx, f.config.HeadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(headCtx, http.MethodHead, rawURL, nil)
	if err != nil {
		return ""
	}
	f.setHeaders(req)

	resp, err := f.clientFor(rawURL).Do(req)
	if err != nil {
		return ""
	}
	resp.Body.Close()

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if strings.Contains(contentType, "text/html") || strings.Contains(contentType, "application/json") {
		return fmt.Sprintf("pre-check content type: %s", contentType)
	}
	return ""
}

// get performs the full retrieval with bounded retries. Transport
// errors are retried after a fixed delay; HTTP error statuses fail
// immediately.
func (f *Fetcher) get(ctx context.Context, rawURL string) (*http.Response, error) {
	client := f.clientFor(rawURL)

	var lastErr error
	for attempt := 1; attempt <= f.config.Attempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		f.setHeaders(req)

		resp, err := client.Do(req)
		if err == nil {
			if resp.StatusCode != http.StatusOK {
				resp.Body.Close()
				return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
			}
			return resp, nil
		}

		lastErr = err
		f.log.Debug().
			Str("url", rawURL).
			Int("attempt", attempt).
			Err(err).
			Msg("Fetch attempt failed")

		if attempt < f.config.Attempts {
			select {
			case <-time.After(f.config.RetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("all %d attempts failed: %w", f.config.Attempts, lastErr)
}

// verifyHeaders rejects error pages and undersized bodies using
// response headers alone.
func (f *Fetcher) verifyHeaders(resp *http.Response) string {
	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if strings.Contains(contentType, "text/html") || strings.Contains(contentType, "application/json") {
		return fmt.Sprintf("content type: %s", contentType)
	}

	if lengthHeader := resp.Header.Get("Content-Length"); lengthHeader != "" {
		if length, err := strconv.ParseInt(lengthHeader, 10, 64); err == nil && length < f.config.MinSizeBytes {
			return fmt.Sprintf("content length too small: %d bytes", length)
		}
	}
	return ""
}

// persist streams the body to path in fixed-size chunks, starting with
// the already-read head bytes.
func (f *Fetcher) persist(path string, head []byte, body io.Reader) (int64, error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating file: %w", err)
	}
	defer out.Close()

	if _, err := out.Write(head); err != nil {
		return 0, fmt.Errorf("writing file: %w", err)
	}

	buf := make([]byte, f.config.ChunkSize)
	copied, err := io.CopyBuffer(out, body, buf)
	if err != nil {
		return 0, fmt.Errorf("writing body: %w", err)
	}
	return int64(len(head)) + copied, nil
}

func (f *Fetcher) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "application/pdf,application/x-pdf,image/*,*/*")
	req.Header.Set("Connection", "keep-alive")
}

// clientFor returns the TLS-verifying client unless the URL's host is
// explicitly opted out in config.
func (f *Fetcher) clientFor(rawURL string) *http.Client {
	if f.insecureClient == nil {
		return f.client
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return f.client
	}
	host := parsed.Hostname()
	for _, domain := range f.config.InsecureDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return f.insecureClient
		}
	}
	return f.client
}
