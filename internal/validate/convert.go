package validate

import (
	"strings"

	"github.com/dgallion1/formgest/internal/form"
)

// conversions maps common upstream type labels to supported kinds.
// Consulted before the content keywords.
var conversions = map[string]form.QuestionKind{
	"text":         form.KindShortAnswer,
	"textarea":     form.KindLongAnswer,
	"number":       form.KindShortAnswer,
	"email":        form.KindShortAnswer,
	"url":          form.KindShortAnswer,
	"phone":        form.KindShortAnswer,
	"rating":       form.KindLinearScale,
	"scale":        form.KindLinearScale,
	"select":       form.KindDropdown,
	"radio":        form.KindMultipleChoice,
	"multi_select": form.KindCheckbox,
}

// contentRules are the keyword fallbacks, evaluated in order.
var contentRules = []struct {
	Kind     form.QuestionKind
	Keywords []string
}{
	{form.KindLinearScale, []string{"rate", "scale", "score"}},
	{form.KindCheckbox, []string{"select all", "check all", "multiple"}},
	{form.KindLongAnswer, []string{"explain", "describe", "elaborate"}},
}

// SuggestKind resolves any type label to a member of the supported
// kind set. It is total: the remote service rejects unknown types
// outright, so every input resolves to something usable. A label
// already in the set is returned as-is, known legacy labels go through
// the lookup table, and everything else falls back to content keywords
// with short_answer as the default.
func SuggestKind(label string, questionText string) form.QuestionKind {
	normalized := form.QuestionKind(strings.ToLower(strings.TrimSpace(label)))
	if form.IsSupportedKind(normalized) {
		return normalized
	}
	if kind, ok := conversions[string(normalized)]; ok {
		return kind
	}

	lower := strings.ToLower(questionText)
	for _, rule := range contentRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Kind
			}
		}
	}
	return form.KindShortAnswer
}
