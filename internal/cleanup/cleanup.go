package cleanup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/logging"
)

// sidecarExtensions are downloader leftovers that never belong in the
// final dataset.
var sidecarExtensions = []string{".info.json", ".webp", ".meta", ".ytdl", ".jpg", ".png"}

// Cleaner removes downloader debris from an output directory: sidecar
// files, and .part files whose completed sibling already exists. A
// .part file with no completed sibling is an in-flight download and is
// left alone.
type Cleaner struct {
	dir         string
	keepSidecar bool
	log         zerolog.Logger
}

// Option adjusts cleaner behavior.
type Option func(*Cleaner)

// KeepSidecars leaves .info.json and thumbnail files in place, for
// directories still waiting on categorization.
func KeepSidecars() Option {
	return func(c *Cleaner) { c.keepSidecar = true }
}

func New(dir string, opts ...Option) *Cleaner {
	c := &Cleaner{
		dir: dir,
		log: logging.GetLogger("cleanup"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stats tallies one cleanup pass.
type Stats struct {
	SidecarsRemoved int
	PartsRemoved    int
	PartsInFlight   int
}

// Sweep runs one cleanup pass over the directory.
func (c *Cleaner) Sweep() (Stats, error) {
	var stats Stats

	if _, err := os.Stat(c.dir); err != nil {
		return stats, fmt.Errorf("cleanup dir: %w", err)
	}

	if !c.keepSidecar {
		removed, err := c.removeSidecars()
		if err != nil {
			return stats, err
		}
		stats.SidecarsRemoved = removed
	}

	parts, err := filepath.Glob(filepath.Join(c.dir, "*.part"))
	if err != nil {
		return stats, err
	}

	for _, part := range parts {
		completed := strings.TrimSuffix(part, ".part")
		if _, err := os.Stat(completed); err != nil {
			stats.PartsInFlight++
			continue
		}
		if err := os.Remove(part); err != nil {
			c.log.Warn().Str("file", filepath.Base(part)).Err(err).Msg("Could not remove partial file")
			continue
		}
		stats.PartsRemoved++
		c.log.Info().Str("file", filepath.Base(part)).Msg("Removed completed partial file")
	}

	return stats, nil
}

func (c *Cleaner) removeSidecars() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, fmt.Errorf("listing cleanup dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		for _, ext := range sidecarExtensions {
			if strings.HasSuffix(name, ext) {
				if err := os.Remove(filepath.Join(c.dir, name)); err != nil {
					c.log.Warn().Str("file", name).Err(err).Msg("Could not remove sidecar")
					break
				}
				removed++
				break
			}
		}
	}
	return removed, nil
}

// Monitor sweeps on the interval until the context is canceled, then
// runs one final pass so nothing is left behind after an interrupt.
func (c *Cleaner) Monitor(ctx context.Context, interval time.Duration) (Stats, error) {
	c.log.Info().Str("dir", c.dir).Dur("interval", interval).Msg("Cleanup monitor started")

	var total Stats
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats, err := c.Sweep()
			if err != nil {
				return total, err
			}
			total.merge(stats)
		case <-ctx.Done():
			c.log.Info().Msg("Cleanup monitor stopping, final pass")
			stats, err := c.Sweep()
			if err != nil {
				return total, err
			}
			total.merge(stats)
			return total, nil
		}
	}
}

func (s *Stats) merge(other Stats) {
	s.SidecarsRemoved += other.SidecarsRemoved
	s.PartsRemoved += other.PartsRemoved
	s.PartsInFlight = other.PartsInFlight
}
