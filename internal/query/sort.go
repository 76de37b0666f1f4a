package query

import (
	"sort"

	"github.com/upsc-prep/question-bank-service/internal/models"
)

type SortKey string

const (
	SortByYear       SortKey = "year"
	SortByMarks      SortKey = "marks"
	SortByDifficulty SortKey = "difficulty"
	// SortByRelevance is a recency placeholder: it orders by year exactly
	// like SortByYear and performs no scored relevance ranking.
	SortByRelevance SortKey = "relevance"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ValidSortKey reports whether key is one of the accepted sort keys.
func ValidSortKey(key SortKey) bool {
	switch key {
	case SortByYear, SortByMarks, SortByDifficulty, SortByRelevance:
		return true
	}
	return false
}

// Sort returns a new slice ordered by the given key and direction. Unknown
// keys fall back to year. The sort is stable: questions comparing equal keep
// their original relative order, so repeated identical queries paginate
// deterministically.
func Sort(questions []models.Question, key SortKey, order SortOrder) []models.Question {
	sorted := make([]models.Question, len(questions))
	copy(sorted, questions)

	less := lessFunc(key)
	if order == OrderDesc {
		asc := less
		less = func(a, b models.Question) bool { return asc(b, a) }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func lessFunc(key SortKey) func(a, b models.Question) bool {
	switch key {
	case SortByMarks:
		return func(a, b models.Question) bool { return a.Marks < b.Marks }
	case SortByDifficulty:
		return func(a, b models.Question) bool { return a.Difficulty.Rank() < b.Difficulty.Rank() }
	case SortByYear, SortByRelevance:
		return func(a, b models.Question) bool { return a.Year < b.Year }
	default:
		return func(a, b models.Question) bool { return a.Year < b.Year }
	}
}
