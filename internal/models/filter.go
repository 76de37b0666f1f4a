package models

// QuestionFilter is a set of optional, independently combinable inclusion
// criteria. Within one field the listed values are alternatives (OR); across
// fields every present criterion must hold (AND). An absent or empty field
// imposes no constraint on that dimension.
type QuestionFilter struct {
	Years         []int             `json:"years,omitempty"`
	ExamTypes     []ExamType        `json:"examTypes,omitempty"`
	PaperTypes    []PaperType       `json:"paperTypes,omitempty"`
	Subjects      []string          `json:"subjects,omitempty"`
	Topics        []string          `json:"topics,omitempty"`
	Difficulties  []DifficultyLevel `json:"difficulties,omitempty"`
	QuestionTypes []QuestionType    `json:"questionTypes,omitempty"`
	Keywords      []string          `json:"keywords,omitempty"`
	Tags          []string          `json:"tags,omitempty"`
}

// IsEmpty reports whether the filter constrains nothing.
func (f QuestionFilter) IsEmpty() bool {
	return len(f.Years) == 0 &&
		len(f.ExamTypes) == 0 &&
		len(f.PaperTypes) == 0 &&
		len(f.Subjects) == 0 &&
		len(f.Topics) == 0 &&
		len(f.Difficulties) == 0 &&
		len(f.QuestionTypes) == 0 &&
		len(f.Keywords) == 0 &&
		len(f.Tags) == 0
}
