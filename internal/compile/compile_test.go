package compile

import (
	"errors"
	"testing"

	"github.com/dgallion1/formgest/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// questionFor builds a minimal valid question of the given kind.
func questionFor(k form.QuestionKind) form.ExtractedQuestion {
	q := form.ExtractedQuestion{Kind: k, Text: "Sample " + string(k) + "?", Required: true}
	switch {
	case k.HasOptions():
		q.Options = []string{"One", "Two"}
	case k == form.KindMultipleChoiceGrid || k == form.KindCheckboxGrid:
		q.Grid = &form.Grid{Rows: []string{"Row 1"}, Columns: []string{"Col 1", "Col 2"}}
	case k == form.KindImage:
		q.Media = &form.Media{ContentURI: "https://example.com/pic.png"}
	case k == form.KindVideo:
		q.Media = &form.Media{YoutubeURI: "https://youtube.com/watch?v=x"}
	}
	return q
}

func TestCompile_TotalOverKindSet(t *testing.T) {
	questions := make([]form.ExtractedQuestion, 0, len(form.Kinds))
	for _, k := range form.Kinds {
		questions = append(questions, questionFor(k))
	}

	batch, err := Compile(form.FormStructure{Title: "t", Questions: questions})
	require.NoError(t, err)
	require.Len(t, batch, len(form.Kinds))

	for i, item := range batch {
		assert.Equal(t, OpCreateItem, item.Op)
		assert.Equal(t, i, item.LocationIndex, "indices must increase strictly from 0")
		assert.NotNil(t, item.Payload)
		assert.Equal(t, questions[i].Text, item.Payload["title"])
	}
}

func TestCompile_UnknownKindFailsBatch(t *testing.T) {
	s := form.FormStructure{Questions: []form.ExtractedQuestion{
		questionFor(form.KindShortAnswer),
		{Kind: "hologram", Text: "?"},
	}}

	batch, err := Compile(s)
	assert.Nil(t, batch)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, form.QuestionKind("hologram"), cerr.Kind)
	assert.Contains(t, err.Error(), `"hologram"`)
}

func TestCompile_OptionOrderPreserved(t *testing.T) {
	q := form.ExtractedQuestion{
		Kind:    form.KindDropdown,
		Text:    "Pick?",
		Options: []string{"A", "B", "C"},
	}
	batch, err := Compile(form.FormStructure{Questions: []form.ExtractedQuestion{q}})
	require.NoError(t, err)

	question := batch[0].Payload["questionItem"].(map[string]any)["question"].(map[string]any)
	choice := question["choiceQuestion"].(map[string]any)
	assert.Equal(t, "DROP_DOWN", choice["type"])

	values := choice["options"].([]map[string]any)
	require.Len(t, values, 3)
	for i, want := range []string{"A", "B", "C"} {
		assert.Equal(t, want, values[i]["value"])
	}
}

func TestCompile_ShortAndLongAnswerParagraphFlag(t *testing.T) {
	batch, err := Compile(form.FormStructure{Questions: []form.ExtractedQuestion{
		questionFor(form.KindShortAnswer),
		questionFor(form.KindLongAnswer),
	}})
	require.NoError(t, err)

	text := func(i int) map[string]any {
		q := batch[i].Payload["questionItem"].(map[string]any)["question"].(map[string]any)
		return q["textQuestion"].(map[string]any)
	}
	assert.Equal(t, false, text(0)["paragraph"])
	assert.Equal(t, true, text(1)["paragraph"])
}

func TestCompile_ScaleDefaults(t *testing.T) {
	batch, err := Compile(form.FormStructure{Questions: []form.ExtractedQuestion{
		{Kind: form.KindLinearScale, Text: "Rate?"},
	}})
	require.NoError(t, err)

	q := batch[0].Payload["questionItem"].(map[string]any)["question"].(map[string]any)
	scale := q["scaleQuestion"].(map[string]any)
	assert.Equal(t, 1, scale["low"])
	assert.Equal(t, 5, scale["high"])
}

func TestCompile_GridShape(t *testing.T) {
	q := form.ExtractedQuestion{
		Kind:     form.KindCheckboxGrid,
		Text:     "Availability?",
		Required: true,
		Grid:     &form.Grid{Rows: []string{"Mon", "Tue"}, Columns: []string{"AM", "PM"}},
	}
	batch, err := Compile(form.FormStructure{Questions: []form.ExtractedQuestion{q}})
	require.NoError(t, err)

	group := batch[0].Payload["questionGroupItem"].(map[string]any)
	rows := group["questions"].([]map[string]any)
	require.Len(t, rows, 2)
	assert.Equal(t, "Mon", rows[0]["rowQuestion"].(map[string]any)["title"])
	assert.Equal(t, true, rows[0]["required"])

	columns := group["grid"].(map[string]any)["columns"].(map[string]any)
	assert.Equal(t, "CHECKBOX", columns["type"])
	assert.Len(t, columns["options"].([]map[string]any), 2)
}

func TestCompile_GradingAttached(t *testing.T) {
	q := questionFor(form.KindMultipleChoice)
	q.Grading = &form.Grading{PointValue: 3, CorrectAnswers: []string{"One"}}

	batch, err := Compile(form.FormStructure{Questions: []form.ExtractedQuestion{q}})
	require.NoError(t, err)

	question := batch[0].Payload["questionItem"].(map[string]any)["question"].(map[string]any)
	grading := question["grading"].(map[string]any)
	assert.Equal(t, 3, grading["pointValue"])
	answers := grading["correctAnswers"].(map[string]any)["answers"].([]map[string]any)
	require.Len(t, answers, 1)
	assert.Equal(t, "One", answers[0]["value"])
}

func TestCompileUpdate_Masks(t *testing.T) {
	tests := []struct {
		kind form.QuestionKind
		want string
	}{
		{form.KindShortAnswer, "title,questionItem.question.textQuestion,questionItem.question.required"},
		{form.KindCheckbox, "title,questionItem.question.choiceQuestion,questionItem.question.required"},
		{form.KindLinearScale, "title,questionItem.question.scaleQuestion,questionItem.question.required"},
		{form.KindMultipleChoiceGrid, "title,questionGroupItem"},
		{form.KindDate, "title,questionItem.question.dateQuestion,questionItem.question.required"},
		{form.KindFileUpload, "title,questionItem.question.fileUploadQuestion,questionItem.question.required"},
		{form.KindImage, "title,imageItem.image"},
		{form.KindVideo, "title,videoItem.video"},
		{form.KindSection, "title,pageBreakItem"},
	}
	for _, tt := range tests {
		item, err := CompileUpdate("item-1", questionFor(tt.kind))
		require.NoError(t, err, "kind %s", tt.kind)
		assert.Equal(t, OpUpdateItem, item.Op)
		assert.Equal(t, "item-1", item.ItemID)
		assert.Equal(t, tt.want, item.UpdateMask, "kind %s", tt.kind)
	}
}

func TestCompileUpdate_GradingExtendsMaskOnlyForQuestionItems(t *testing.T) {
	graded := questionFor(form.KindShortAnswer)
	graded.Grading = &form.Grading{PointValue: 1}
	item, err := CompileUpdate("i", graded)
	require.NoError(t, err)
	assert.Contains(t, item.UpdateMask, "questionItem.question.grading")

	gridGraded := questionFor(form.KindCheckboxGrid)
	gridGraded.Grading = &form.Grading{PointValue: 1}
	item, err = CompileUpdate("i", gridGraded)
	require.NoError(t, err)
	assert.NotContains(t, item.UpdateMask, "grading")
}

func TestCompileUpdate_UnknownKind(t *testing.T) {
	_, err := CompileUpdate("i", form.ExtractedQuestion{Kind: "nope", Text: "?"})
	var cerr *Error
	assert.True(t, errors.As(err, &cerr))
}

func TestCompileDelete(t *testing.T) {
	item := CompileDelete(7)
	assert.Equal(t, OpDeleteItem, item.Op)
	assert.Equal(t, 7, item.LocationIndex)
	assert.Nil(t, item.Payload)
}
