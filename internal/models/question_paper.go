package models

type ParseStatus string

const (
	ParseCompleted ParseStatus = "completed"
	ParsePartial   ParseStatus = "partial"
	ParseFailed    ParseStatus = "failed"
)

// QuestionPaper groups the questions of one exam sitting. Papers are a
// secondary index for browsing; the flat question collection remains the
// authoritative query surface.
type QuestionPaper struct {
	ID        string    `json:"id" validate:"required"`
	Title     string    `json:"title" validate:"required"`
	Year      int       `json:"year" validate:"required,min=1950,max=2100"`
	ExamType  ExamType  `json:"examType" validate:"required,exam_type"`
	PaperType PaperType `json:"paperType" validate:"required,paper_type"`

	Date     string `json:"date,omitempty"`     // e.g. "2023-05-28"
	Duration string `json:"duration,omitempty"` // e.g. "3 hours"

	TotalMarks     int         `json:"totalMarks" validate:"min=0"`
	TotalQuestions int         `json:"totalQuestions"` // must equal len(Questions)
	Questions      []Question  `json:"questions"`
	ParseStatus    ParseStatus `json:"parseStatus,omitempty"`
}
