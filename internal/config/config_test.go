package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/internal/filter"
)

func TestLoadDefaultsWithoutKey(t *testing.T) {
	// the key is enforced by the search client, not at config load,
	// so keyless commands (image collection, cleanup) still start
	t.Setenv("SEARCH_API_KEY", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Search.APIKey)
}

func TestLoadDefaultsWithEnvKey(t *testing.T) {
	t.Setenv("SEARCH_API_KEY", "env-key")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Search.APIKey)
	assert.Equal(t, "boiler_data", cfg.OutputDir)
	assert.Equal(t, filter.PolicyStrict, cfg.Policy())
	assert.True(t, cfg.RespectRobots)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("SEARCH_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output_dir: /tmp/boilers
results_per_query: 3
search_delay: 250ms
filter_policy: permissive
excluded_domains:
  - badsite.example
search:
  api_key: file-key
fetcher:
  attempts: 4
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/boilers", cfg.OutputDir)
	assert.Equal(t, 3, cfg.ResultsPerQuery)
	assert.Equal(t, 250*time.Millisecond, cfg.SearchDelay.Std())
	assert.Equal(t, filter.PolicyPermissive, cfg.Policy())
	assert.Equal(t, []string{"badsite.example"}, cfg.ExcludedDomains)
	assert.Equal(t, "file-key", cfg.Search.APIKey)
	assert.Equal(t, 4, cfg.Fetcher.Attempts)
	// untouched fields keep their defaults
	assert.Equal(t, int64(1024), cfg.Fetcher.MinSizeBytes)
}

func TestEnvOverridesFileKey(t *testing.T) {
	t.Setenv("SEARCH_API_KEY", "env-wins")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  api_key: file-key\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-wins", cfg.Search.APIKey)
}

func TestValidateRejectsBadPolicy(t *testing.T) {
	cfg := Default()
	cfg.Search.APIKey = "k"
	cfg.FilterPolicy = "lenient"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter_policy")
}
