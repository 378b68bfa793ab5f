package document

// Format identifies the source file format of a parsed document.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
	FormatMD   Format = "md"
)

// RawDocument is the output of the text extraction stage: a single
// plain-text rendering of the source file plus lightweight metadata.
// It is built once per pipeline run and consumed by the question
// extraction engine.
type RawDocument struct {
	Text         string // Flattened plain text; headings keep a leading '#'
	SourceFormat Format
	Length       int // len(Text) in bytes
}

// New builds a RawDocument from extracted text.
func New(text string, format Format) *RawDocument {
	return &RawDocument{
		Text:         text,
		SourceFormat: format,
		Length:       len(text),
	}
}

// WordCount returns the number of whitespace-separated words.
func (d *RawDocument) WordCount() int {
	count := 0
	inWord := false
	for _, r := range d.Text {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			inWord = false
		default:
			if !inWord {
				count++
			}
			inWord = true
		}
	}
	return count
}
