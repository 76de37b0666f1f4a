package query

import "github.com/upsc-prep/question-bank-service/internal/models"

// ComputeStats builds the full aggregate over one snapshot of the question
// collection. All maps are computed from the same pass; the aggregate is never
// patched incrementally from deltas, so no map can drift out of sync with the
// others after a partial failure.
func ComputeStats(questions []models.Question) *models.QuestionStats {
	stats := &models.QuestionStats{
		TotalQuestions: len(questions),
		ByYear:         make(map[int]int),
		BySubject:      make(map[string]int),
		ByTopic:        make(map[string]int),
		ByDifficulty:   make(map[models.DifficultyLevel]int),
		ByExamType:     make(map[models.ExamType]int),
		ByPaperType:    make(map[models.PaperType]int),
		ByQuestionType: make(map[models.QuestionType]int),
	}

	for _, q := range questions {
		stats.ByYear[q.Year]++
		stats.BySubject[q.Subject]++
		stats.ByTopic[q.Topic]++
		stats.ByDifficulty[q.Difficulty]++
		stats.ByExamType[q.ExamType]++
		stats.ByPaperType[q.PaperType]++
		stats.ByQuestionType[q.QuestionType]++
	}
	return stats
}
