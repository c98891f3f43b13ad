// Package compliance gates fetches on robots.txt. Robots files are
// fetched once per host and cached for the life of the run; a missing
// or unfetchable robots.txt allows the fetch.
package compliance

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/temoto/robotstxt"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/logging"
)

const robotsTimeout = 10 * time.Second

// RobotsCache checks URLs against cached per-host robots.txt data.
type RobotsCache struct {
	robots    map[string]*robotstxt.RobotsData
	client    *http.Client
	userAgent string
	log       zerolog.Logger
}

// NewRobotsCache builds a cache that identifies as userAgent when
// fetching robots.txt and when testing rules.
func NewRobotsCache(userAgent string) *RobotsCache {
	return &RobotsCache{
		robots:    make(map[string]*robotstxt.RobotsData),
		client:    &http.Client{Timeout: robotsTimeout},
		userAgent: userAgent,
		log:       logging.GetLogger("compliance"),
	}
}

// Allowed reports whether the URL may be fetched. Malformed URLs are
// disallowed; everything else defaults to allowed unless robots.txt
// says otherwise.
func (rc *RobotsCache) Allowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}

	base := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)

	robots, cached := rc.robots[base]
	if !cached {
		robots = rc.fetchRobots(ctx, base)
		rc.robots[base] = robots
	}

	if robots == nil {
		return true
	}
	return robots.TestAgent(parsed.Path, rc.userAgent)
}

// fetchRobots returns nil when the host has no usable robots.txt.
func (rc *RobotsCache) fetchRobots(ctx context.Context, base string) *robotstxt.RobotsData {
	reqCtx, cancel := context.WithTimeout(ctx, robotsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, base+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", rc.userAgent)

	resp, err := rc.client.Do(req)
	if err != nil {
		rc.log.Debug().Str("host", base).Err(err).Msg("robots.txt unreachable, allowing")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil
	}

	robots, err := robotstxt.FromBytes(body)
	if err != nil {
		rc.log.Debug().Str("host", base).Err(err).Msg("robots.txt unparseable, allowing")
		return nil
	}
	return robots
}
