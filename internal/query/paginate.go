package query

import "github.com/upsc-prep/question-bank-service/internal/models"

// Page is one slice of a sorted collection plus the total match count the
// slice was taken from, so UI page controls can render without a second query.
type Page struct {
	Items      []models.Question `json:"items"`
	TotalCount int               `json:"totalCount"`
}

// Paginate slices questions[offset : offset+limit]. Negative offset or limit
// are clamped to zero rather than rejected, since callers are interactive
// page-size widgets that transiently send out-of-range values. An offset past
// the end yields empty items with the true total count.
func Paginate(questions []models.Question, offset, limit int) Page {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	total := len(questions)
	if offset >= total {
		return Page{Items: []models.Question{}, TotalCount: total}
	}

	end := offset + limit
	if end > total {
		end = total
	}

	items := make([]models.Question, end-offset)
	copy(items, questions[offset:end])
	return Page{Items: items, TotalCount: total}
}
