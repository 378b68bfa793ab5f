package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/formgest/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings are
// re-rendered with their '#' markers so the downstream title and
// section heuristics see them; everything else is flattened to plain
// paragraphs.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*document.RawDocument, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, &ExtractionFailure{Format: document.FormatMD, Cause: err}
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var buf strings.Builder
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(strings.Repeat("#", node.Level))
			buf.WriteString(" ")
			buf.WriteString(string(node.Text(src)))
			buf.WriteString("\n")
		default:
			t := extractText(n, src)
			if t != "" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
				buf.WriteString(t)
				buf.WriteString("\n")
			}
		}
	}

	return document.New(strings.TrimRight(buf.String(), "\n"), document.FormatMD), nil
}

// extractText gets the text content of a goldmark AST node. Block
// nodes with source lines are read directly from the source so line
// breaks inside paragraphs survive; container blocks (lists, quotes)
// recurse into their children.
func extractText(n ast.Node, src []byte) string {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		var buf bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
			buf.WriteByte('\n')
		}
		return strings.TrimSpace(buf.String())
	}

	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := extractText(c, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}
