package parser

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/formgest/internal/document"
)

// Parser converts raw document bytes into a plain-text RawDocument.
type Parser interface {
	Parse(r io.Reader, filename string) (*document.RawDocument, error)
}

// supportedOrder lists the supported extensions in the order they are
// reported in error messages.
var supportedOrder = []string{".pdf", ".docx", ".txt", ".md"}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".txt":      true,
	".md":       true,
	".markdown": true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFParser{FallbackPdftotext: true}, nil
	case ".docx":
		return &DOCXParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	default:
		return nil, &UnsupportedFormatError{Ext: ext}
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}
