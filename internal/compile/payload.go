package compile

import (
	"github.com/dgallion1/formgest/internal/form"
)

// Remote service question type identifiers.
const (
	choiceRadio    = "RADIO"
	choiceCheckbox = "CHECKBOX"
	choiceDropdown = "DROP_DOWN"
)

// Defaults applied when the source question carries no explicit
// configuration for its kind.
const (
	defaultScaleLow      = 1
	defaultScaleHigh     = 5
	defaultMaxFiles      = 1
	defaultMaxFileSizeMB = 10
	defaultNavigation    = "CONTINUE"
	defaultAlignment     = "LEFT"
)

// buildItem maps one question to the remote service's nested item
// object. The switch is exhaustive over the closed kind set; anything
// else is a programming error surfaced as *Error, never defaulted.
func buildItem(q form.ExtractedQuestion) (map[string]any, error) {
	item := map[string]any{"title": q.Text}

	switch q.Kind {
	case form.KindShortAnswer:
		item["questionItem"] = questionItem(q, map[string]any{
			"textQuestion": map[string]any{"paragraph": false},
		})
	case form.KindLongAnswer:
		item["questionItem"] = questionItem(q, map[string]any{
			"textQuestion": map[string]any{"paragraph": true},
		})
	case form.KindMultipleChoice:
		item["questionItem"] = questionItem(q, map[string]any{
			"choiceQuestion": map[string]any{
				"type":    choiceRadio,
				"options": optionValues(q.Options),
				"shuffle": false,
			},
		})
	case form.KindCheckbox:
		item["questionItem"] = questionItem(q, map[string]any{
			"choiceQuestion": map[string]any{
				"type":    choiceCheckbox,
				"options": optionValues(q.Options),
				"shuffle": false,
			},
		})
	case form.KindDropdown:
		item["questionItem"] = questionItem(q, map[string]any{
			"choiceQuestion": map[string]any{
				"type":    choiceDropdown,
				"options": optionValues(q.Options),
			},
		})
	case form.KindLinearScale:
		item["questionItem"] = questionItem(q, map[string]any{
			"scaleQuestion": scaleQuestion(q.Scale),
		})
	case form.KindMultipleChoiceGrid:
		item["questionGroupItem"] = gridItem(q, choiceRadio)
	case form.KindCheckboxGrid:
		item["questionGroupItem"] = gridItem(q, choiceCheckbox)
	case form.KindDate:
		item["questionItem"] = questionItem(q, map[string]any{
			"dateQuestion": map[string]any{
				"includeTime": false,
				"includeYear": true,
			},
		})
	case form.KindTime:
		item["questionItem"] = questionItem(q, map[string]any{
			"timeQuestion": map[string]any{"duration": false},
		})
	case form.KindFileUpload:
		item["questionItem"] = questionItem(q, map[string]any{
			"fileUploadQuestion": uploadQuestion(q.Upload),
		})
	case form.KindImage:
		item["imageItem"] = map[string]any{"image": imagePayload(q.Media)}
	case form.KindVideo:
		item["videoItem"] = map[string]any{"video": videoPayload(q.Media)}
	case form.KindSection:
		item["pageBreakItem"] = map[string]any{"navigationType": defaultNavigation}
	default:
		return nil, &Error{Kind: q.Kind}
	}

	return item, nil
}

// questionItem wraps kind-specific question fields with the shared
// required flag and optional grading block.
func questionItem(q form.ExtractedQuestion, question map[string]any) map[string]any {
	question["required"] = q.Required
	if q.Grading != nil {
		question["grading"] = gradingPayload(q.Grading)
	}
	return map[string]any{"question": question}
}

func optionValues(options []string) []map[string]any {
	values := make([]map[string]any, len(options))
	for i, opt := range options {
		values[i] = map[string]any{"value": opt}
	}
	return values
}

func scaleQuestion(s *form.Scale) map[string]any {
	low, high := defaultScaleLow, defaultScaleHigh
	lowLabel, highLabel := "", ""
	if s != nil {
		if s.Low != 0 || s.High != 0 {
			low, high = s.Low, s.High
		}
		lowLabel, highLabel = s.LowLabel, s.HighLabel
	}
	return map[string]any{
		"low":       low,
		"high":      high,
		"lowLabel":  lowLabel,
		"highLabel": highLabel,
	}
}

// gridItem builds the question-group item for both grid kinds. Rows
// default to the option list when no explicit grid block was supplied.
func gridItem(q form.ExtractedQuestion, columnType string) map[string]any {
	rows, columns := []string{}, []string{}
	if q.Grid != nil {
		rows, columns = q.Grid.Rows, q.Grid.Columns
	}
	rowQuestions := make([]map[string]any, len(rows))
	for i, row := range rows {
		rowQuestions[i] = map[string]any{
			"rowQuestion": map[string]any{"title": row},
			"required":    q.Required,
		}
	}
	return map[string]any{
		"questions": rowQuestions,
		"grid": map[string]any{
			"columns": map[string]any{
				"type":    columnType,
				"options": optionValues(columns),
			},
		},
	}
}

func uploadQuestion(u *form.Upload) map[string]any {
	maxFiles, maxSize := defaultMaxFiles, defaultMaxFileSizeMB
	var types []string
	if u != nil {
		if u.MaxFiles > 0 {
			maxFiles = u.MaxFiles
		}
		if u.MaxFileSizeMB > 0 {
			maxSize = u.MaxFileSizeMB
		}
		types = u.AllowedFileTypes
	}
	payload := map[string]any{
		"maxFiles":    maxFiles,
		"maxFileSize": maxSize,
	}
	if len(types) > 0 {
		payload["types"] = types
	}
	return payload
}

func imagePayload(m *form.Media) map[string]any {
	contentURI, alignment := "", defaultAlignment
	width, height := 0, 0
	if m != nil {
		contentURI = m.ContentURI
		if m.Alignment != "" {
			alignment = m.Alignment
		}
		width, height = m.Width, m.Height
	}
	props := map[string]any{"alignment": alignment}
	if width > 0 {
		props["width"] = width
	}
	if height > 0 {
		props["height"] = height
	}
	return map[string]any{
		"contentUri": contentURI,
		"properties": props,
	}
}

func videoPayload(m *form.Media) map[string]any {
	uri := ""
	if m != nil {
		uri = m.YoutubeURI
	}
	return map[string]any{"youtubeUri": uri}
}

func gradingPayload(g *form.Grading) map[string]any {
	answers := make([]map[string]any, len(g.CorrectAnswers))
	for i, a := range g.CorrectAnswers {
		answers[i] = map[string]any{"value": a}
	}
	return map[string]any{
		"pointValue":     g.PointValue,
		"correctAnswers": map[string]any{"answers": answers},
	}
}
