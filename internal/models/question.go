package models

type ExamType string

const (
	ExamPrelims ExamType = "Prelims"
	ExamMains   ExamType = "Mains"
)

type PaperType string

const (
	PaperEssay PaperType = "Essay"
	PaperGS1   PaperType = "GS-I"
	PaperGS2   PaperType = "GS-II"
	PaperGS3   PaperType = "GS-III"
	PaperGS4   PaperType = "GS-IV"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "Easy"
	DifficultyMedium DifficultyLevel = "Medium"
	DifficultyHard   DifficultyLevel = "Hard"
)

// Rank returns the ordinal position of the difficulty (Easy < Medium < Hard).
// Unknown values sort before Easy so malformed records stay visible at the front.
func (d DifficultyLevel) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 0
	}
}

type QuestionType string

const (
	QuestionMCQ         QuestionType = "MCQ"
	QuestionDescriptive QuestionType = "Descriptive"
)

// Question is a single exam question as produced by the ingestion pipeline.
// Records are immutable once created; the repository replaces whole
// collections rather than mutating individual questions.
type Question struct {
	ID           string          `json:"id" validate:"required"`
	// Year is bounded at save time only, as a plausibility window for
	// ingested papers; stored records are read back without re-validation.
	Year         int             `json:"year" validate:"required,min=1950,max=2100"`
	ExamType     ExamType        `json:"examType" validate:"required,exam_type"`
	PaperType    PaperType       `json:"paperType" validate:"required,paper_type"`
	Subject      string          `json:"subject" validate:"required"`
	Topic        string          `json:"topic"`
	Difficulty   DifficultyLevel `json:"difficulty" validate:"required,difficulty_level"`
	QuestionType QuestionType    `json:"questionType" validate:"required,question_type"`

	QuestionText  string     `json:"questionText" validate:"required"`
	Marks         int        `json:"marks" validate:"min=0"`
	Options       []MCOption `json:"options,omitempty"` // MCQ only
	CorrectAnswer string     `json:"correctAnswer,omitempty"`

	Keywords []string `json:"keywords,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// MCOption is one answer choice of an MCQ question.
type MCOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}
