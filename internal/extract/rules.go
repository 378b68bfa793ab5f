package extract

import (
	"strings"

	"github.com/dgallion1/formgest/internal/form"
)

// kindRule maps content keywords to a question kind. Rules are
// evaluated in order and the first match wins, so adding a rule at the
// end never changes the classification of existing inputs.
type kindRule struct {
	Kind     form.QuestionKind
	Keywords []string
}

var classifyRules = []kindRule{
	{form.KindLongAnswer, []string{"explain", "describe", "elaborate", "why", "how"}},
	{form.KindLinearScale, []string{"rate", "scale", "score", "1-5", "1-10"}},
	{form.KindCheckbox, []string{"select all", "check all", "multiple"}},
	{form.KindDate, []string{"date", "when"}},
	{form.KindTime, []string{"time", "hour"}},
}

// ClassifyQuestion picks a question kind for free-form question text
// using the ordered keyword rules, defaulting to short_answer.
func ClassifyQuestion(text string) form.QuestionKind {
	lower := strings.ToLower(text)
	for _, rule := range classifyRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Kind
			}
		}
	}
	return form.KindShortAnswer
}
