package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/formgest/internal/form"
)

// RepairOptions controls the destructive repairs that need an explicit
// opt-in from the caller.
type RepairOptions struct {
	// TruncateQuestions drops questions past the remote limit instead
	// of leaving the over-limit issue for the caller to resolve.
	TruncateQuestions bool
}

// Repair returns a repaired copy of s using the default policy:
// synthesize missing fields, convert unknown types, fix option lists,
// but never drop questions.
func Repair(s form.FormStructure) form.FormStructure {
	return RepairWith(s, RepairOptions{})
}

// RepairWith applies every safe repair rule to a copy of s. After one
// pass, any structure whose question count is within the limit (or
// with TruncateQuestions set) validates clean.
func RepairWith(s form.FormStructure, opts RepairOptions) form.FormStructure {
	out := s.Clone()

	if out.Title == "" {
		if topic := topicFromQuestions(out.Questions); topic != "" {
			out.Title = topic + " Survey"
		} else {
			out.Title = "Generated Survey"
		}
	}
	out.Title = truncateRunes(out.Title, form.MaxTitleLen)

	if out.Description == "" {
		out.Description = "Form created automatically - " + out.Title
	}
	out.Description = truncateRunes(out.Description, form.MaxDescriptionLen)

	if len(out.Questions) == 0 {
		out.Questions = []form.ExtractedQuestion{{
			Kind:     form.KindLongAnswer,
			Text:     "What feedback would you like to share?",
			Required: false,
		}}
	}
	if opts.TruncateQuestions && len(out.Questions) > form.MaxQuestions {
		out.Questions = out.Questions[:form.MaxQuestions]
	}

	for i := range out.Questions {
		repairQuestion(&out.Questions[i], i)
	}

	return out
}

func repairQuestion(q *form.ExtractedQuestion, index int) {
	if q.Text == "" {
		q.Text = fmt.Sprintf("Question %d", index+1)
	}
	q.Text = truncateRunes(q.Text, form.MaxQuestionLen)

	if !form.IsSupportedKind(q.Kind) {
		q.Kind = SuggestKind(string(q.Kind), q.Text)
	}

	if q.Kind.HasOptions() {
		switch {
		case len(q.Options) == 0:
			// No options to work with: downgrade rather than invent.
			q.Kind = form.KindShortAnswer
		case len(q.Options) < form.MinChoiceOptions:
			for len(q.Options) < form.MinChoiceOptions {
				q.Options = append(q.Options, fmt.Sprintf("Option %d", len(q.Options)+1))
			}
		}
		for j, opt := range q.Options {
			q.Options[j] = truncateRunes(opt, form.MaxOptionLen)
		}
	}
}

// truncateRunes cuts s to at most limit characters on a rune boundary,
// matching how the limits are validated. Slicing by byte index could
// split a multi-byte rune and produce invalid UTF-8.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// topicFromQuestions takes the leading words of the first question as
// a title topic.
func topicFromQuestions(questions []form.ExtractedQuestion) string {
	for _, q := range questions {
		text := strings.TrimSuffix(strings.TrimSpace(q.Text), "?")
		words := strings.Fields(text)
		if len(words) == 0 {
			continue
		}
		if len(words) > 3 {
			words = words[:3]
		}
		return strings.Join(words, " ")
	}
	return ""
}
