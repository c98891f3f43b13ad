package organize

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/logging"
	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/taxonomy"
)

// Organizer moves downloaded video files into category folders using
// the exact URL listing they were downloaded from. The listing is the
// source of truth: a video is categorized only when its ID appears
// under a category header, never by guessing from the title.
type Organizer struct {
	log zerolog.Logger
}

func New() *Organizer {
	return &Organizer{log: logging.GetLogger("organize")}
}

// Report tallies one categorization pass.
type Report struct {
	Categorized   int
	AlreadyPlaced int
	Uncategorized []string
	ByCategory    map[taxonomy.Category]int
}

// LoadURLCategories parses a category-sectioned URL listing. Lines
// under a "# Category:" header that carry a watch URL map that video ID
// to the header's category.
func LoadURLCategories(r io.Reader) (map[string]taxonomy.Category, error) {
	kf, err := taxonomy.ParseKeywords(r, "")
	if err != nil {
		return nil, err
	}

	mapping := make(map[string]taxonomy.Category)
	for _, header := range kf.Order {
		category, ok := normalizeCategory(header)
		if !ok {
			continue
		}
		for _, line := range kf.Categories[header] {
			if id := VideoID(line); id != "" {
				mapping[id] = category
			}
		}
	}
	return mapping, nil
}

// normalizeCategory maps listing headers ("Failure Case",
// "Technical / Manual", ...) onto the canonical categories.
func normalizeCategory(header string) (taxonomy.Category, bool) {
	lower := strings.ToLower(header)
	switch {
	case strings.Contains(lower, "failure"):
		return taxonomy.CategoryFailure, true
	case strings.Contains(lower, "technical"), strings.Contains(lower, "manual"):
		return taxonomy.CategoryTechnical, true
	case strings.Contains(lower, "troubleshooting"), strings.Contains(lower, "maintenance"):
		return taxonomy.CategoryTroubleshooting, true
	case strings.Contains(lower, "product"), strings.Contains(lower, "documentation"), strings.Contains(lower, "educational"):
		return taxonomy.CategoryProduct, true
	}
	return "", false
}

// VideoID extracts the watch?v= identifier from a video URL, or ""
// when the line is not one.
func VideoID(rawURL string) string {
	if !strings.Contains(rawURL, "watch?v=") {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Query().Get("v")
}

// sidecarID reads the video ID from the downloader's .info.json
// sidecar next to the media file.
func sidecarID(mediaPath string) string {
	data, err := os.ReadFile(mediaPath + ".info.json")
	if err != nil {
		return ""
	}
	var info struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &info); err != nil {
		return ""
	}
	return info.ID
}

// Organize moves every .mp4 directly under dir into its category
// folder. Files whose ID is unknown stay where they are and are listed
// in the report.
func (o *Organizer) Organize(dir string, mapping map[string]taxonomy.Category) (*Report, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.mp4"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	report := &Report{ByCategory: make(map[taxonomy.Category]int)}

	for _, category := range taxonomy.Categories() {
		if err := os.MkdirAll(filepath.Join(dir, category.FolderName()), 0755); err != nil {
			return nil, fmt.Errorf("creating category dir: %w", err)
		}
	}

	for _, path := range matches {
		id := sidecarID(path)
		category, known := mapping[id]
		if id == "" || !known {
			report.Uncategorized = append(report.Uncategorized, filepath.Base(path))
			o.log.Debug().Str("file", filepath.Base(path)).Str("id", id).Msg("No category for video")
			continue
		}

		dest := filepath.Join(dir, category.FolderName(), filepath.Base(path))
		if _, err := os.Stat(dest); err == nil {
			report.AlreadyPlaced++
			continue
		}

		if err := os.Rename(path, dest); err != nil {
			return nil, fmt.Errorf("moving %s: %w", filepath.Base(path), err)
		}
		// keep the sidecar next to the media file
		if _, err := os.Stat(path + ".info.json"); err == nil {
			_ = os.Rename(path+".info.json", dest+".info.json")
		}

		report.Categorized++
		report.ByCategory[category]++
		o.log.Info().Str("file", filepath.Base(path)).Str("category", category.FolderName()).Msg("Categorized")
	}

	return report, nil
}

// WriteReport renders the categorization outcome per category,
// counting what actually sits in each folder.
func (o *Organizer) WriteReport(dir string, report *Report) (string, error) {
	path := filepath.Join(dir, "categorization_report.txt")

	var b strings.Builder
	b.WriteString("URL-TO-CATEGORY MAPPING REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, category := range taxonomy.Categories() {
		folder := filepath.Join(dir, category.FolderName())
		videos, _ := filepath.Glob(filepath.Join(folder, "*.mp4"))
		sort.Strings(videos)

		fmt.Fprintf(&b, "%s:\n", strings.ToUpper(string(category)))
		fmt.Fprintf(&b, "Downloaded videos: %d\n", len(videos))
		for _, v := range videos {
			fmt.Fprintf(&b, "  %s\n", filepath.Base(v))
		}
		b.WriteString("\n")
	}

	if len(report.Uncategorized) > 0 {
		b.WriteString("UNCATEGORIZED:\n")
		for _, name := range report.Uncategorized {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
