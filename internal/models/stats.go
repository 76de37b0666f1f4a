package models

// QuestionStats is the derived aggregate over the stored question collection.
// It is recomputed in full on every save so that all maps reflect the same
// snapshot; the values of each map always sum to TotalQuestions.
type QuestionStats struct {
	TotalQuestions int `json:"totalQuestions"`

	ByYear         map[int]int             `json:"byYear"`
	BySubject      map[string]int          `json:"bySubject"`
	ByTopic        map[string]int          `json:"byTopic"`
	ByDifficulty   map[DifficultyLevel]int `json:"byDifficulty"`
	ByExamType     map[ExamType]int        `json:"byExamType"`
	ByPaperType    map[PaperType]int       `json:"byPaperType"`
	ByQuestionType map[QuestionType]int    `json:"byQuestionType"`
}
