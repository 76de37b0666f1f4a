package query

import (
	"strings"

	"github.com/upsc-prep/question-bank-service/internal/models"
)

// Search keeps the questions whose text fields contain the query as a
// case-insensitive substring. The fields checked are question text, subject,
// topic, then each keyword and each tag; any single hit qualifies. A blank or
// whitespace-only query returns the input unchanged.
func Search(questions []models.Question, searchQuery string) []models.Question {
	q := strings.ToLower(strings.TrimSpace(searchQuery))
	if q == "" {
		return questions
	}

	matched := make([]models.Question, 0, len(questions))
	for _, question := range questions {
		if matchesQuery(question, q) {
			matched = append(matched, question)
		}
	}
	return matched
}

func matchesQuery(q models.Question, lowered string) bool {
	if strings.Contains(strings.ToLower(q.QuestionText), lowered) {
		return true
	}
	if strings.Contains(strings.ToLower(q.Subject), lowered) {
		return true
	}
	if strings.Contains(strings.ToLower(q.Topic), lowered) {
		return true
	}
	for _, kw := range q.Keywords {
		if strings.Contains(strings.ToLower(kw), lowered) {
			return true
		}
	}
	for _, tag := range q.Tags {
		if strings.Contains(strings.ToLower(tag), lowered) {
			return true
		}
	}
	return false
}
