// Package validate checks a FormStructure against the remote service's
// structural constraints and repairs what can be repaired. Validation
// is a pure function of its input; repair returns a fresh copy and
// never mutates the caller's structure.
package validate

import (
	"fmt"
	"unicode/utf8"

	"github.com/dgallion1/formgest/internal/form"
)

// Validate checks every invariant and returns a report. Issues block
// submission until repaired; warnings never block.
func Validate(s form.FormStructure) form.ValidationReport {
	issues := []string{}
	warnings := []string{}

	// Limits are character counts, so multi-byte text is measured in
	// runes, never bytes.
	if s.Title == "" {
		issues = append(issues, "Form title is required")
	} else if utf8.RuneCountInString(s.Title) > form.MaxTitleLen {
		issues = append(issues, fmt.Sprintf("Form title exceeds %d character limit", form.MaxTitleLen))
	}

	if s.Description == "" {
		warnings = append(warnings, "Form description is recommended for better user experience")
	} else if utf8.RuneCountInString(s.Description) > form.MaxDescriptionLen {
		issues = append(issues, fmt.Sprintf("Form description exceeds %d character limit", form.MaxDescriptionLen))
	}

	if len(s.Questions) == 0 {
		issues = append(issues, "Form must have at least one question")
	} else if len(s.Questions) > form.MaxQuestions {
		issues = append(issues, fmt.Sprintf("Form exceeds maximum of %d questions", form.MaxQuestions))
	}

	qIssues, qWarnings := validateQuestions(s.Questions)
	issues = append(issues, qIssues...)
	warnings = append(warnings, qWarnings...)

	if dups := findDuplicates(s.Questions); len(dups) > 0 {
		warnings = append(warnings, fmt.Sprintf("Duplicate questions found: %v", dups))
	}

	return form.ValidationReport{
		IsValid:       len(issues) == 0,
		Issues:        issues,
		Warnings:      warnings,
		QuestionCount: len(s.Questions),
	}
}

func validateQuestions(questions []form.ExtractedQuestion) (issues, warnings []string) {
	for i, q := range questions {
		n := i + 1

		if q.Text == "" {
			issues = append(issues, fmt.Sprintf("Question %d: Question text is required", n))
		} else if utf8.RuneCountInString(q.Text) > form.MaxQuestionLen {
			issues = append(issues, fmt.Sprintf("Question %d: Question text exceeds %d character limit", n, form.MaxQuestionLen))
		}

		if q.Kind == "" {
			issues = append(issues, fmt.Sprintf("Question %d: Question type is required", n))
		} else if !form.IsSupportedKind(q.Kind) {
			issues = append(issues, fmt.Sprintf("Question %d: Unsupported question type %q", n, q.Kind))
		}

		if q.Kind.HasOptions() {
			if len(q.Options) < form.MinChoiceOptions {
				issues = append(issues, fmt.Sprintf("Question %d: %s questions need at least %d options", n, q.Kind, form.MinChoiceOptions))
			} else if len(q.Options) > 20 {
				warnings = append(warnings, fmt.Sprintf("Question %d: Many options (%d) may be overwhelming", n, len(q.Options)))
			}
			for j, opt := range q.Options {
				if utf8.RuneCountInString(opt) > form.MaxOptionLen {
					issues = append(issues, fmt.Sprintf("Question %d, Option %d: Option text exceeds %d character limit", n, j+1, form.MaxOptionLen))
				}
			}
		}
	}
	return issues, warnings
}

// findDuplicates returns question texts that appear more than once, in
// first-occurrence order.
func findDuplicates(questions []form.ExtractedQuestion) []string {
	seen := make(map[string]bool, len(questions))
	reported := make(map[string]bool)
	var dups []string
	for _, q := range questions {
		if q.Text == "" {
			continue
		}
		if seen[q.Text] && !reported[q.Text] {
			dups = append(dups, q.Text)
			reported[q.Text] = true
		}
		seen[q.Text] = true
	}
	return dups
}
