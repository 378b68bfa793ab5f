// Package extract turns the plain text of a parsed document into a
// best-effort FormStructure. It is pure: no I/O, deterministic for
// identical input, and re-runnable. Producing zero questions is not an
// error here; the validation engine injects fallbacks.
package extract

import (
	"regexp"
	"strings"

	"github.com/dgallion1/formgest/internal/document"
	"github.com/dgallion1/formgest/internal/form"
)

const (
	// optionLookahead bounds how far past a question stem we scan for
	// the first lettered option line.
	optionLookahead = 500

	defaultTitle       = "Extracted Form"
	defaultDescription = "Form created from document"
)

var (
	optionRe      = regexp.MustCompile(`^\s*[A-Ha-h]\)\s*(.+)$`)
	numberedRe    = regexp.MustCompile(`^\s*\d+[.)]?\s*.+\?$`)
	blankRunRe    = regexp.MustCompile(`_{2,}`)
	headingRe     = regexp.MustCompile(`^#{1,6}\s*(.+)$`)
	descriptionRe = regexp.MustCompile(`(?i)^#{0,2}\s*description:?\s+(.+)$`)
)

// FromDocument runs extraction over a parsed document.
func FromDocument(doc *document.RawDocument) form.FormStructure {
	return FromText(doc.Text)
}

// FromText scans plain text for questions, option blocks, a title and
// a description, in a fixed rule order with first-match-wins spans.
func FromText(text string) form.FormStructure {
	lines := strings.Split(text, "\n")
	consumed := make([]bool, len(lines))
	var questions []form.ExtractedQuestion

	// Pass 1: multiple-choice stems with lettered option blocks.
	for i, line := range lines {
		if consumed[i] {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if !strings.HasSuffix(trimmed, "?") || trimmed == "?" {
			continue
		}
		options, optLines := collectOptions(lines, i+1)
		if len(options) == 0 {
			continue
		}
		consumed[i] = true
		for _, j := range optLines {
			consumed[j] = true
		}
		questions = append(questions, form.ExtractedQuestion{
			Kind:     form.KindMultipleChoice,
			Text:     trimmed,
			Options:  options,
			Required: true,
		})
	}

	// Pass 2: blank-style prompts (underscore run plus a question mark).
	for i, line := range lines {
		if consumed[i] {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if blankRunRe.MatchString(trimmed) && strings.Contains(trimmed, "?") {
			consumed[i] = true
			questions = append(questions, form.ExtractedQuestion{
				Kind:     form.KindShortAnswer,
				Text:     trimmed,
				Required: true,
			})
		}
	}

	// Pass 3: remaining numbered question lines, classified by keyword.
	for i, line := range lines {
		if consumed[i] {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if !numberedRe.MatchString(trimmed) {
			continue
		}
		consumed[i] = true
		questions = append(questions, form.ExtractedQuestion{
			Kind:     ClassifyQuestion(trimmed),
			Text:     trimmed,
			Required: true,
		})
	}

	return form.FormStructure{
		Title:       extractTitle(lines),
		Description: extractDescription(lines),
		Questions:   questions,
	}
}

// collectOptions gathers consecutive lettered option lines starting at
// index start, as long as the first option appears within the
// lookahead window. Returns the option values and the consumed line
// indices.
func collectOptions(lines []string, start int) ([]string, []int) {
	var options []string
	var optLines []int
	scanned := 0
	i := start
	// Skip blank lines inside the lookahead window before the block.
	for i < len(lines) && scanned <= optionLookahead {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			scanned += len(lines[i]) + 1
			i++
			continue
		}
		break
	}
	for i < len(lines) && scanned <= optionLookahead {
		m := optionRe.FindStringSubmatch(lines[i])
		if m == nil {
			break
		}
		options = append(options, strings.TrimSpace(m[1]))
		optLines = append(optLines, i)
		scanned += len(lines[i]) + 1
		i++
	}
	return options, optLines
}

// extractTitle finds the first heading line, falling back to a
// "<Topic> Form" placeholder built from the first content line.
func extractTitle(lines []string) string {
	for _, line := range lines {
		if m := headingRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			title := strings.TrimSpace(m[1])
			if title != "" && !descriptionRe.MatchString(strings.TrimSpace(line)) {
				return title
			}
		}
	}
	if topic := inferTopic(lines); topic != "" {
		return topic + " Form"
	}
	return defaultTitle
}

// inferTopic takes the first few words of the first plain content line.
func inferTopic(lines []string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasSuffix(trimmed, "?") {
			continue
		}
		if optionRe.MatchString(trimmed) || descriptionRe.MatchString(trimmed) {
			continue
		}
		words := strings.Fields(trimmed)
		if len(words) > 3 {
			words = words[:3]
		}
		return strings.Join(words, " ")
	}
	return ""
}

// extractDescription finds a "Description:" labeled line.
func extractDescription(lines []string) string {
	for _, line := range lines {
		if m := descriptionRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			if desc := strings.TrimSpace(m[1]); desc != "" {
				return desc
			}
		}
	}
	return defaultDescription
}
