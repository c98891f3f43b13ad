package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/fetcher"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/filter"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/search"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/logging"
)

// Duration parses human-readable durations ("500ms", "2s") from YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full runtime configuration for a collection run.
type Config struct {
	// OutputDir is the root under which per-type folders are created.
	OutputDir string `yaml:"output_dir"`

	// ResultsPerQuery bounds how many candidates each search query
	// may contribute.
	ResultsPerQuery int `yaml:"results_per_query"`

	// SearchDelay is the pause after each search query.
	SearchDelay Duration `yaml:"search_delay"`

	// DownloadDelay is the pause between downloads.
	DownloadDelay Duration `yaml:"download_delay"`

	// FilterPolicy selects candidate filtering strictness
	// ("strict" or "permissive").
	FilterPolicy string `yaml:"filter_policy"`

	// ExcludedDomains extends the built-in exclusion list.
	ExcludedDomains []string `yaml:"excluded_domains"`

	// RespectRobots enables the robots.txt gate before downloads.
	RespectRobots bool `yaml:"respect_robots"`

	// Resume continues a prior run, skipping already-cataloged URLs.
	Resume bool `yaml:"resume"`

	Search  *search.ClientConfig `yaml:"search"`
	Images  *search.ImageConfig  `yaml:"images"`
	Fetcher *fetcher.Config      `yaml:"fetcher"`
	Logging *logging.LogConfig   `yaml:"logging"`
}

// Default returns the configuration used when no file is given. The
// search API key still has to come from the file or the environment
// before the document search client will start; image collection
// needs no key.
func Default() *Config {
	return &Config{
		OutputDir:       "boiler_data",
		ResultsPerQuery: 5,
		SearchDelay:     Duration(500 * time.Millisecond),
		DownloadDelay:   Duration(time.Second),
		FilterPolicy:    "strict",
		RespectRobots:   true,
		Resume:          true,
		Search:          search.DefaultClientConfig(),
		Images:          search.DefaultImageConfig(),
		Fetcher:         fetcher.DefaultConfig(),
		Logging:         logging.DefaultLogConfig(),
	}
}

// Load reads a YAML config file over the defaults. A missing path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		cfg.applyEnv()
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// applyEnv overlays secrets from the environment so keys stay out of
// config files.
func (c *Config) applyEnv() {
	if key := os.Getenv("SEARCH_API_KEY"); key != "" && c.Search != nil {
		c.Search.APIKey = key
	}
}

// Validate rejects configurations that cannot produce a working run.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must be set")
	}
	if c.ResultsPerQuery <= 0 {
		return fmt.Errorf("results_per_query must be positive, got %d", c.ResultsPerQuery)
	}
	switch c.FilterPolicy {
	case "strict", "permissive":
	default:
		return fmt.Errorf("filter_policy must be strict or permissive, got %q", c.FilterPolicy)
	}
	return nil
}

// Policy maps the configured name to a filter policy.
func (c *Config) Policy() filter.Policy {
	if c.FilterPolicy == "permissive" {
		return filter.PolicyPermissive
	}
	return filter.PolicyStrict
}
