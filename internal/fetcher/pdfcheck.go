package fetcher

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// CountPDFPages opens a downloaded file as a PDF and returns its page
// count. Used as corroborating post-download evidence; callers treat an
// error as a warning, not a fetch failure.
func CountPDFPages(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	pages := r.NumPage()
	if pages <= 0 {
		return 0, fmt.Errorf("pdf reports %d pages", pages)
	}
	return pages, nil
}
