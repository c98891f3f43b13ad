package fetcher

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const maxFilenameLength = 100

// SanitizeFilename derives a filesystem-safe base name from a candidate
// title: forbidden characters stripped, spaces to underscores, bounded
// length.
func SanitizeFilename(title string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = maxFilenameLength
	}

	var b strings.Builder
	for _, r := range title {
		switch {
		case strings.ContainsRune(`<>:"/\|?*`, r):
			// dropped
		case r == ' ':
			b.WriteByte('_')
		case r < 0x20:
			// control characters dropped
		default:
			b.WriteRune(r)
		}
	}

	name := b.String()
	if len(name) > maxLength {
		cut := maxLength
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}
	return strings.Trim(name, "._")
}

// filenameFor resolves the base name for a candidate: sanitized title,
// falling back to the URL path base, then a generic name.
func filenameFor(title, rawURL string, ext string) string {
	name := SanitizeFilename(title, maxFilenameLength)

	if name == "" {
		if parsed, err := url.Parse(rawURL); err == nil {
			base := path.Base(parsed.Path)
			base = strings.TrimSuffix(base, path.Ext(base))
			name = SanitizeFilename(base, maxFilenameLength)
		}
	}
	if name == "" || name == "." {
		name = "document"
	}

	if !strings.EqualFold(filepath.Ext(name), ext) {
		name += ext
	}
	return name
}

// ResolveCollision probes name, name_1, name_2, ... until a free path
// is found in dir.
func ResolveCollision(dir, filename string) string {
	candidate := filepath.Join(dir, filename)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	for counter := 1; ; counter++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, counter, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
