package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/logging"
)

const maxReasonLength = 100

// Store accumulates catalog records and failures for one run and
// checkpoints a progress snapshot after every state change. It is not
// safe for concurrent use: the pipeline is sequential and a single
// process owns the base directory.
type Store struct {
	baseDir      string
	snapshotPath string
	records      []Record
	failures     []Failure
	byURL        map[string]int
	snap         Snapshot
	prior        *Snapshot
	log          zerolog.Logger
}

// NewStore creates the base directory, seeds the snapshot, and writes
// the first checkpoint.
func NewStore(baseDir, runID string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("creating base dir: %w", err)
	}

	s := &Store{
		baseDir:      baseDir,
		snapshotPath: filepath.Join(baseDir, "download_progress.json"),
		byURL:        make(map[string]int),
		snap: Snapshot{
			RunID:            runID,
			StartTime:        time.Now(),
			CompletedBoilers: []string{},
		},
		log: logging.GetLogger("catalog"),
	}

	// The first checkpoint replaces any previous run's snapshot, so
	// keep a copy around for Resume.
	if data, err := os.ReadFile(s.snapshotPath); err == nil {
		var prior Snapshot
		if err := json.Unmarshal(data, &prior); err == nil {
			s.prior = &prior
		}
	}

	if err := s.checkpoint(); err != nil {
		return nil, err
	}
	return s, nil
}

// BaseDir returns the run's base directory.
func (s *Store) BaseDir() string { return s.baseDir }

// SnapshotPath returns the progress checkpoint path.
func (s *Store) SnapshotPath() string { return s.snapshotPath }

// Snapshot returns a copy of the current progress state.
func (s *Store) Snapshot() Snapshot {
	snap := s.snap
	snap.CompletedBoilers = append([]string{}, s.snap.CompletedBoilers...)
	return snap
}

// Records returns the accumulated catalog records.
func (s *Store) Records() []Record {
	return append([]Record{}, s.records...)
}

// Failures returns the accumulated failure records.
func (s *Store) Failures() []Failure {
	return append([]Failure{}, s.failures...)
}

// Has reports whether a URL is already cataloged. Used by the fetcher
// to skip work already completed in this or a resumed run.
func (s *Store) Has(url string) bool {
	_, ok := s.byURL[url]
	return ok
}

// Add appends a record and checkpoints. Duplicate URLs are ignored and
// reported as false.
func (s *Store) Add(rec Record) (bool, error) {
	if _, dup := s.byURL[rec.URL]; dup {
		s.log.Debug().Str("url", rec.URL).Msg("Duplicate URL, record dropped")
		return false, nil
	}

	s.byURL[rec.URL] = len(s.records)
	s.records = append(s.records, rec)
	s.snap.TotalDownloads++

	return true, s.checkpoint()
}

// AddFailure appends a failure record with a bounded reason string and
// checkpoints.
func (s *Store) AddFailure(f Failure) error {
	f.Reason = truncateReason(f.Reason, maxReasonLength)
	s.failures = append(s.failures, f)
	s.snap.TotalFailures = len(s.failures)
	return s.checkpoint()
}

// RecordSearch increments the search counter and checkpoints.
func (s *Store) RecordSearch() error {
	s.snap.TotalSearches++
	return s.checkpoint()
}

// SetCurrentBoiler marks the in-flight unit of work.
func (s *Store) SetCurrentBoiler(typeName string) error {
	s.snap.CurrentBoiler = typeName
	return s.checkpoint()
}

// CompleteBoiler moves the current unit into the completed list.
func (s *Store) CompleteBoiler(typeName string) error {
	s.snap.CompletedBoilers = append(s.snap.CompletedBoilers, typeName)
	if s.snap.CurrentBoiler == typeName {
		s.snap.CurrentBoiler = ""
	}
	return s.checkpoint()
}

// Completed reports whether a boiler type finished in a prior run.
func (s *Store) Completed(typeName string) bool {
	for _, name := range s.snap.CompletedBoilers {
		if name == typeName {
			return true
		}
	}
	return false
}

// Resume seeds the store from a prior run's snapshot and catalog
// exports found in the base directory, so completed work is skipped.
func (s *Store) Resume() error {
	if s.prior == nil {
		return nil
	}

	s.snap.CompletedBoilers = append(s.snap.CompletedBoilers, s.prior.CompletedBoilers...)

	records, err := LoadCatalogDir(s.baseDir)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if _, dup := s.byURL[rec.URL]; dup {
			continue
		}
		s.byURL[rec.URL] = -1 // known URL, not re-exported by this run
	}

	s.log.Info().
		Int("known_urls", len(s.byURL)).
		Int("completed_boilers", len(s.prior.CompletedBoilers)).
		Msg("Resumed from prior run state")

	return s.checkpoint()
}

// checkpoint overwrites the snapshot atomically (temp file + rename) so
// a crash mid-write cannot corrupt the previous checkpoint.
func (s *Store) checkpoint() error {
	s.snap.LastUpdate = time.Now()

	data, err := json.MarshalIndent(&s.snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	tmp := s.snapshotPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.snapshotPath); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}
