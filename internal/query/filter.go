// Package query implements the in-memory question query pipeline: filtering,
// free-text search, sorting, pagination and statistics aggregation. All
// functions are pure; they never mutate their input collections.
package query

import (
	"strings"

	"github.com/upsc-prep/question-bank-service/internal/models"
)

// Filter returns the subset of questions matching every present criterion of
// the filter (AND across dimensions, OR within a dimension's value list). An
// empty filter returns the input unchanged.
func Filter(questions []models.Question, filter models.QuestionFilter) []models.Question {
	if filter.IsEmpty() {
		return questions
	}

	matched := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if Matches(q, filter) {
			matched = append(matched, q)
		}
	}
	return matched
}

// Matches reports whether a single question satisfies every present criterion
// of the filter.
func Matches(q models.Question, filter models.QuestionFilter) bool {
	if len(filter.Years) > 0 && !contains(filter.Years, q.Year) {
		return false
	}
	if len(filter.ExamTypes) > 0 && !contains(filter.ExamTypes, q.ExamType) {
		return false
	}
	if len(filter.PaperTypes) > 0 && !contains(filter.PaperTypes, q.PaperType) {
		return false
	}
	if len(filter.Difficulties) > 0 && !contains(filter.Difficulties, q.Difficulty) {
		return false
	}
	if len(filter.QuestionTypes) > 0 && !contains(filter.QuestionTypes, q.QuestionType) {
		return false
	}

	// Subject and topic labels are not a closed enumeration, so these match
	// by case-insensitive containment rather than equality.
	if len(filter.Subjects) > 0 && !anySubstring(q.Subject, filter.Subjects) {
		return false
	}
	if len(filter.Topics) > 0 && !anySubstring(q.Topic, filter.Topics) {
		return false
	}

	if len(filter.Keywords) > 0 && !anyElementSubstring(q.Keywords, filter.Keywords) {
		return false
	}
	if len(filter.Tags) > 0 && !anyElementSubstring(q.Tags, filter.Tags) {
		return false
	}

	return true
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// anySubstring reports whether value contains at least one candidate,
// case-insensitively.
func anySubstring(value string, candidates []string) bool {
	lowered := strings.ToLower(value)
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(c)) {
			return true
		}
	}
	return false
}

// anyElementSubstring reports whether any element of the question's collection
// contains any of the candidates, case-insensitively.
func anyElementSubstring(elements, candidates []string) bool {
	for _, el := range elements {
		if anySubstring(el, candidates) {
			return true
		}
	}
	return false
}
