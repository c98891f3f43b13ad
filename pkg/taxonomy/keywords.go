package taxonomy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// KeywordFile is a parsed taxonomy keyword file: per-category lists of
// keywords or URLs for one boiler type.
type KeywordFile struct {
	BoilerType string
	Categories map[string][]string
	Order      []string
}

// ParseKeywords reads the keyword file format: `# Category: <name>`
// headers followed by one item per line until the next header. Other
// `#` lines are comments; blank lines are ignored.
func ParseKeywords(r io.Reader, boilerType string) (*KeywordFile, error) {
	kf := &KeywordFile{
		BoilerType: boilerType,
		Categories: make(map[string][]string),
	}

	var current string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			if rest, ok := strings.CutPrefix(line, "# Category:"); ok {
				current = strings.TrimSpace(rest)
				if _, seen := kf.Categories[current]; !seen {
					kf.Categories[current] = nil
					kf.Order = append(kf.Order, current)
				}
			}
			// other # lines are comments
			continue
		}

		if current == "" {
			continue
		}
		kf.Categories[current] = append(kf.Categories[current], line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading keyword file: %w", err)
	}

	return kf, nil
}

// LoadKeywordFile parses a keyword file from disk. The boiler type name
// is derived from the file name (underscores to spaces, title-cased).
func LoadKeywordFile(path string) (*KeywordFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseKeywords(f, titleFromFilename(base))
}

// LoadKeywordDir parses every .txt keyword file in a directory.
func LoadKeywordDir(dir string) ([]*KeywordFile, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, err
	}

	var files []*KeywordFile
	for _, path := range matches {
		kf, err := LoadKeywordFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
		}
		files = append(files, kf)
	}
	return files, nil
}

func titleFromFilename(base string) string {
	words := strings.Split(strings.ReplaceAll(base, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
