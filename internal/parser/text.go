package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/formgest/internal/document"
)

// TextParser handles plain text files.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.RawDocument, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var buf strings.Builder
	for scanner.Scan() {
		buf.WriteString(strings.TrimRight(scanner.Text(), " \t"))
		buf.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, &ExtractionFailure{Format: document.FormatTXT, Cause: err}
	}

	return document.New(strings.TrimRight(buf.String(), "\n"), document.FormatTXT), nil
}
