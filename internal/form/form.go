package form

// QuestionKind is the closed set of question, media and structural
// variants the remote form service accepts.
type QuestionKind string

const (
	KindShortAnswer        QuestionKind = "short_answer"
	KindLongAnswer         QuestionKind = "long_answer"
	KindMultipleChoice     QuestionKind = "multiple_choice"
	KindCheckbox           QuestionKind = "checkbox"
	KindDropdown           QuestionKind = "dropdown"
	KindLinearScale        QuestionKind = "linear_scale"
	KindMultipleChoiceGrid QuestionKind = "multiple_choice_grid"
	KindCheckboxGrid       QuestionKind = "checkbox_grid"
	KindDate               QuestionKind = "date"
	KindTime               QuestionKind = "time"
	KindFileUpload         QuestionKind = "file_upload"
	KindImage              QuestionKind = "image"
	KindVideo              QuestionKind = "video"
	KindSection            QuestionKind = "section"
)

// Kinds lists every supported QuestionKind in declaration order.
var Kinds = []QuestionKind{
	KindShortAnswer,
	KindLongAnswer,
	KindMultipleChoice,
	KindCheckbox,
	KindDropdown,
	KindLinearScale,
	KindMultipleChoiceGrid,
	KindCheckboxGrid,
	KindDate,
	KindTime,
	KindFileUpload,
	KindImage,
	KindVideo,
	KindSection,
}

var kindSet = func() map[QuestionKind]bool {
	m := make(map[QuestionKind]bool, len(Kinds))
	for _, k := range Kinds {
		m[k] = true
	}
	return m
}()

// IsSupportedKind reports whether k is in the closed kind set.
func IsSupportedKind(k QuestionKind) bool {
	return kindSet[k]
}

// HasOptions reports whether k carries an option list that must hold
// at least two entries.
func (k QuestionKind) HasOptions() bool {
	switch k {
	case KindMultipleChoice, KindCheckbox, KindDropdown:
		return true
	}
	return false
}

// IsQuestion reports whether k renders as an answerable question, as
// opposed to a media or page-break item.
func (k QuestionKind) IsQuestion() bool {
	switch k {
	case KindImage, KindVideo, KindSection:
		return false
	}
	return true
}

// Scale carries linear-scale bounds and endpoint labels.
type Scale struct {
	Low       int    `json:"low"`
	High      int    `json:"high"`
	LowLabel  string `json:"low_label,omitempty"`
	HighLabel string `json:"high_label,omitempty"`
}

// Grid carries row and column labels for grid questions.
type Grid struct {
	Rows    []string `json:"rows"`
	Columns []string `json:"columns"`
}

// Upload carries file-upload constraints.
type Upload struct {
	MaxFiles         int      `json:"max_files"`
	MaxFileSizeMB    int      `json:"max_file_size_mb"`
	AllowedFileTypes []string `json:"allowed_file_types,omitempty"`
}

// Media carries fields for image and video items.
type Media struct {
	ContentURI string `json:"content_uri,omitempty"`
	YoutubeURI string `json:"youtube_uri,omitempty"`
	Alignment  string `json:"alignment,omitempty"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
}

// Grading is the optional quiz grading block attached to a question.
type Grading struct {
	PointValue     int      `json:"point_value"`
	CorrectAnswers []string `json:"correct_answers,omitempty"`
}

// ExtractedQuestion is one question (or media/structural item) of a
// questionnaire. Created by the extraction engine; the validation
// engine may rewrite Kind in place, the compiler never mutates it.
type ExtractedQuestion struct {
	Kind     QuestionKind `json:"type"`
	Text     string       `json:"question"`
	Options  []string     `json:"options,omitempty"`
	Required bool         `json:"required"`

	Scale   *Scale   `json:"scale,omitempty"`
	Grid    *Grid    `json:"grid,omitempty"`
	Upload  *Upload  `json:"upload,omitempty"`
	Media   *Media   `json:"media,omitempty"`
	Grading *Grading `json:"grading,omitempty"`
}

// FormStructure is the in-memory questionnaire definition before it is
// sent to the remote form service.
type FormStructure struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Questions   []ExtractedQuestion `json:"questions"`
}

// Clone returns a deep copy so repair can work without mutating the
// caller's structure.
func (s FormStructure) Clone() FormStructure {
	out := FormStructure{
		Title:       s.Title,
		Description: s.Description,
	}
	if s.Questions != nil {
		out.Questions = make([]ExtractedQuestion, len(s.Questions))
		copy(out.Questions, s.Questions)
		for i := range out.Questions {
			q := &out.Questions[i]
			if q.Options != nil {
				q.Options = append([]string(nil), q.Options...)
			}
			if q.Scale != nil {
				sc := *q.Scale
				q.Scale = &sc
			}
			if q.Grid != nil {
				g := Grid{
					Rows:    append([]string(nil), q.Grid.Rows...),
					Columns: append([]string(nil), q.Grid.Columns...),
				}
				q.Grid = &g
			}
			if q.Upload != nil {
				u := *q.Upload
				u.AllowedFileTypes = append([]string(nil), q.Upload.AllowedFileTypes...)
				q.Upload = &u
			}
			if q.Media != nil {
				m := *q.Media
				q.Media = &m
			}
			if q.Grading != nil {
				g := *q.Grading
				g.CorrectAnswers = append([]string(nil), q.Grading.CorrectAnswers...)
				q.Grading = &g
			}
		}
	}
	return out
}

// ValidationReport is the result of validating a FormStructure.
// Issues block submission until repaired; warnings are advisory.
type ValidationReport struct {
	IsValid       bool     `json:"is_valid"`
	Issues        []string `json:"issues"`
	Warnings      []string `json:"warnings"`
	QuestionCount int      `json:"question_count"`
}

// Remote service limits on form content.
const (
	MaxTitleLen       = 300
	MaxDescriptionLen = 4096
	MaxQuestionLen    = 4096
	MaxOptionLen      = 1000
	MaxQuestions      = 100
	MinChoiceOptions  = 2
)
