package catalog

import "time"

// Candidate is a search result that has not yet been verified or
// fetched. Created by a search adapter, dropped by the filter, or
// promoted to a Record by the fetcher.
type Candidate struct {
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	SourceQuery   string    `json:"query"`
	BoilerType    string    `json:"boiler_type"`
	Category      string    `json:"category"`
	Score         float64   `json:"score,omitempty"`
	PublishedDate string    `json:"published_date,omitempty"`
	Author        string    `json:"author,omitempty"`
	DiscoveredAt  time.Time `json:"discovered_at"`
}

// Record is a verified, persisted catalog entry for a fetched resource.
// Records are unique by URL within a store.
type Record struct {
	URL        string    `json:"url"`
	LocalPath  string    `json:"path"`
	Filename   string    `json:"filename"`
	Title      string    `json:"title"`
	BoilerType string    `json:"boiler_type"`
	Category   string    `json:"category"`
	SizeBytes  int64     `json:"file_size_bytes"`
	PageCount  int       `json:"page_count,omitempty"`
	FetchedAt  time.Time `json:"download_date"`
}

// Failure records a fetch that did not produce a Record.
type Failure struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	BoilerType string `json:"boiler_type"`
	Category   string `json:"category"`
	Reason     string `json:"reason"`
}

// Snapshot is the progress checkpoint, overwritten after every
// state-changing operation so only the latest state survives a crash.
type Snapshot struct {
	RunID            string    `json:"run_id"`
	StartTime        time.Time `json:"start_time"`
	LastUpdate       time.Time `json:"last_update"`
	CurrentBoiler    string    `json:"current_boiler,omitempty"`
	CompletedBoilers []string  `json:"completed_boilers"`
	TotalSearches    int       `json:"total_searches"`
	TotalDownloads   int       `json:"total_downloads"`
	TotalFailures    int       `json:"total_failures"`
}

// truncateReason bounds failure reason strings for persistence.
func truncateReason(reason string, max int) string {
	if len(reason) <= max {
		return reason
	}
	return reason[:max]
}
