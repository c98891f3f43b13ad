package fetcher

import "bytes"

// Kind is the expected document kind of a fetch, which selects the
// magic-byte signature and the fallback file extension.
type Kind string

const (
	KindPDF   Kind = "pdf"
	KindImage Kind = "image"
)

var (
	pdfMagic  = []byte("%PDF")
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47}
)

// MatchesSignature reports whether the leading bytes carry the expected
// file signature for the kind.
func MatchesSignature(kind Kind, head []byte) bool {
	switch kind {
	case KindPDF:
		return bytes.HasPrefix(head, pdfMagic)
	case KindImage:
		return bytes.HasPrefix(head, jpegMagic) || bytes.HasPrefix(head, pngMagic)
	}
	return false
}

// Extension returns the filename extension for the kind, sniffing the
// image subtype from the leading bytes when available.
func Extension(kind Kind, head []byte) string {
	switch kind {
	case KindPDF:
		return ".pdf"
	case KindImage:
		if bytes.HasPrefix(head, pngMagic) {
			return ".png"
		}
		return ".jpg"
	}
	return ""
}
