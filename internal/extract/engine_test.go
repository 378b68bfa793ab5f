package extract

import (
	"testing"

	"github.com/dgallion1/formgest/internal/form"
)

func TestFromText_MultipleChoiceWithOptions(t *testing.T) {
	text := "Which color do you prefer?\nA) Red\nB) Green\nC) Blue"
	s := FromText(text)

	if len(s.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(s.Questions))
	}
	q := s.Questions[0]
	if q.Kind != form.KindMultipleChoice {
		t.Errorf("expected multiple_choice, got %q", q.Kind)
	}
	if q.Text != "Which color do you prefer?" {
		t.Errorf("unexpected question text %q", q.Text)
	}
	want := []string{"Red", "Green", "Blue"}
	if len(q.Options) != len(want) {
		t.Fatalf("expected %d options, got %d", len(want), len(q.Options))
	}
	for i, opt := range want {
		if q.Options[i] != opt {
			t.Errorf("option %d: expected %q, got %q", i, opt, q.Options[i])
		}
	}
	if !q.Required {
		t.Error("expected extracted question to be required")
	}
}

func TestFromText_OptionBlockSeparatedByBlankLine(t *testing.T) {
	text := "Which size fits?\n\nA) Small\nB) Large"
	s := FromText(text)

	if len(s.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(s.Questions))
	}
	if len(s.Questions[0].Options) != 2 {
		t.Errorf("expected 2 options, got %d", len(s.Questions[0].Options))
	}
}

func TestFromText_BlankPrompt(t *testing.T) {
	s := FromText("Your favorite dish? __________")

	if len(s.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(s.Questions))
	}
	if s.Questions[0].Kind != form.KindShortAnswer {
		t.Errorf("expected short_answer, got %q", s.Questions[0].Kind)
	}
}

func TestFromText_NumberedKeywordClassification(t *testing.T) {
	text := "1. Explain your reasoning?\n2. Rate this from 1-5?"
	s := FromText(text)

	if len(s.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(s.Questions))
	}
	if s.Questions[0].Kind != form.KindLongAnswer {
		t.Errorf("question 1: expected long_answer, got %q", s.Questions[0].Kind)
	}
	if s.Questions[1].Kind != form.KindLinearScale {
		t.Errorf("question 2: expected linear_scale, got %q", s.Questions[1].Kind)
	}
}

func TestFromText_StemNotDoubleCounted(t *testing.T) {
	// A numbered stem with an option block must yield exactly one
	// multiple-choice question, not an extra numbered one.
	text := "1. Which team won?\nA) Home\nB) Away"
	s := FromText(text)

	if len(s.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(s.Questions))
	}
	if s.Questions[0].Kind != form.KindMultipleChoice {
		t.Errorf("expected multiple_choice, got %q", s.Questions[0].Kind)
	}
}

func TestFromText_TitleFromHeading(t *testing.T) {
	s := FromText("# Customer Satisfaction Survey\n\n1. How was the service?")
	if s.Title != "Customer Satisfaction Survey" {
		t.Errorf("expected heading title, got %q", s.Title)
	}
}

func TestFromText_TitleFallbackToTopic(t *testing.T) {
	s := FromText("Quarterly employee review notes\n\n1. Describe your goals?")
	if s.Title != "Quarterly employee review Form" {
		t.Errorf("expected topic-derived title, got %q", s.Title)
	}
}

func TestFromText_TitleDefault(t *testing.T) {
	s := FromText("")
	if s.Title != "Extracted Form" {
		t.Errorf("expected default title, got %q", s.Title)
	}
	if len(s.Questions) != 0 {
		t.Errorf("expected no questions from empty text, got %d", len(s.Questions))
	}
}

func TestFromText_DescriptionLabel(t *testing.T) {
	s := FromText("# Survey\nDescription: Tell us what you think.\n1. How are you?")
	if s.Description != "Tell us what you think." {
		t.Errorf("expected labeled description, got %q", s.Description)
	}
}

func TestFromText_DescriptionDefault(t *testing.T) {
	s := FromText("1. How are you?")
	if s.Description != "Form created from document" {
		t.Errorf("expected default description, got %q", s.Description)
	}
}

func TestFromText_Deterministic(t *testing.T) {
	text := "# Poll\n1. Rate the event 1-5?\nWhich day works?\nA) Monday\nB) Friday"
	a := FromText(text)
	b := FromText(text)

	if a.Title != b.Title || a.Description != b.Description {
		t.Error("expected identical metadata across runs")
	}
	if len(a.Questions) != len(b.Questions) {
		t.Fatalf("expected identical question counts, got %d and %d", len(a.Questions), len(b.Questions))
	}
	for i := range a.Questions {
		if a.Questions[i].Kind != b.Questions[i].Kind || a.Questions[i].Text != b.Questions[i].Text {
			t.Errorf("question %d differs across runs", i)
		}
	}
}

func TestClassifyQuestion_Precedence(t *testing.T) {
	tests := []struct {
		text string
		want form.QuestionKind
	}{
		{"Explain what happened?", form.KindLongAnswer},
		{"Describe your experience?", form.KindLongAnswer},
		{"Why did you choose us?", form.KindLongAnswer},
		// "how" outranks "rate": the long-answer rule comes first.
		{"How would you rate the support?", form.KindLongAnswer},
		{"Rate the product 1-10?", form.KindLinearScale},
		{"Score the presentation?", form.KindLinearScale},
		{"Select all that apply?", form.KindCheckbox},
		{"Check all features you use?", form.KindCheckbox},
		{"What date works for you?", form.KindDate},
		{"When did the issue start?", form.KindDate},
		{"What hour suits you best?", form.KindTime},
		{"What is your name?", form.KindShortAnswer},
	}
	for _, tt := range tests {
		if got := ClassifyQuestion(tt.text); got != tt.want {
			t.Errorf("ClassifyQuestion(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
