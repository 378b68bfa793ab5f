// Package compile transforms a valid FormStructure into the ordered
// batch of item operations the remote form service accepts. Unlike
// extraction and validation, the compiler does not guess: a question
// kind outside the closed set is a programming error and fails the
// whole batch.
package compile

import (
	"fmt"

	"github.com/dgallion1/formgest/internal/form"
)

// OpKind identifies a batch operation.
type OpKind string

const (
	OpCreateItem OpKind = "createItem"
	OpUpdateItem OpKind = "updateItem"
	OpDeleteItem OpKind = "deleteItem"
)

// Item is one compiled operation: the nested item payload plus the
// addressing information the network boundary needs to wrap it.
type Item struct {
	Op            OpKind         `json:"operation"`
	LocationIndex int            `json:"location_index"`
	ItemID        string         `json:"item_id,omitempty"`
	Payload       map[string]any `json:"payload,omitempty"`
	UpdateMask    string         `json:"update_mask,omitempty"`
}

// Batch is an ordered set of operations submitted in one network call.
type Batch []Item

// Error reports a question kind outside the closed set reaching the
// compiler, which means a prior pipeline stage was skipped or its
// output corrupted.
type Error struct {
	Kind form.QuestionKind
}

func (e *Error) Error() string {
	return fmt.Sprintf("compile: question kind %q is not in the supported set", e.Kind)
}

// Compile produces one createItem per question, in original order,
// with strictly increasing location indices starting at 0. The input
// must already have passed validation.
func Compile(s form.FormStructure) (Batch, error) {
	batch := make(Batch, 0, len(s.Questions))
	for i, q := range s.Questions {
		payload, err := buildItem(q)
		if err != nil {
			return nil, err
		}
		batch = append(batch, Item{
			Op:            OpCreateItem,
			LocationIndex: i,
			Payload:       payload,
		})
	}
	return batch, nil
}

// CompileUpdate produces an updateItem for an existing remote item.
// The update mask is a function of the question kind (plus grading
// presence), not of which sub-fields differ from remote state.
func CompileUpdate(itemID string, q form.ExtractedQuestion) (Item, error) {
	payload, err := buildItem(q)
	if err != nil {
		return Item{}, err
	}
	mask, err := UpdateMask(q)
	if err != nil {
		return Item{}, err
	}
	return Item{
		Op:         OpUpdateItem,
		ItemID:     itemID,
		Payload:    payload,
		UpdateMask: mask,
	}, nil
}

// CompileDelete produces a deleteItem addressing a location index.
func CompileDelete(index int) Item {
	return Item{
		Op:            OpDeleteItem,
		LocationIndex: index,
	}
}

// UpdateMask returns the comma-joined field paths overwritten when an
// item of this kind is updated.
func UpdateMask(q form.ExtractedQuestion) (string, error) {
	var mask string
	switch q.Kind {
	case form.KindShortAnswer, form.KindLongAnswer:
		mask = "title,questionItem.question.textQuestion,questionItem.question.required"
	case form.KindMultipleChoice, form.KindCheckbox, form.KindDropdown:
		mask = "title,questionItem.question.choiceQuestion,questionItem.question.required"
	case form.KindLinearScale:
		mask = "title,questionItem.question.scaleQuestion,questionItem.question.required"
	case form.KindMultipleChoiceGrid, form.KindCheckboxGrid:
		mask = "title,questionGroupItem"
	case form.KindDate:
		mask = "title,questionItem.question.dateQuestion,questionItem.question.required"
	case form.KindTime:
		mask = "title,questionItem.question.timeQuestion,questionItem.question.required"
	case form.KindFileUpload:
		mask = "title,questionItem.question.fileUploadQuestion,questionItem.question.required"
	case form.KindImage:
		mask = "title,imageItem.image"
	case form.KindVideo:
		mask = "title,videoItem.video"
	case form.KindSection:
		mask = "title,pageBreakItem"
	default:
		return "", &Error{Kind: q.Kind}
	}
	if q.Grading != nil && usesQuestionItem(q.Kind) {
		mask += ",questionItem.question.grading"
	}
	return mask, nil
}

// usesQuestionItem reports whether the kind compiles to a questionItem
// wrapper (grids compile to questionGroupItem, media and sections to
// their own item types).
func usesQuestionItem(k form.QuestionKind) bool {
	switch k {
	case form.KindMultipleChoiceGrid, form.KindCheckboxGrid,
		form.KindImage, form.KindVideo, form.KindSection:
		return false
	}
	return true
}
