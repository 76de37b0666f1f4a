package services

import (
	"context"
	"errors"

	"github.com/upsc-prep/question-bank-service/internal/models"
	"github.com/upsc-prep/question-bank-service/internal/query"
	"github.com/upsc-prep/question-bank-service/internal/repositories"
)

// ===== SENTINEL ERRORS =====

var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrInvalidTenant      = errors.New("tenant id is required")
	ErrPaperCountMismatch = errors.New("paper totalQuestions does not match its question count")
	ErrNoQuestions        = errors.New("no questions match the export criteria")
)

// ===== REQUEST/RESPONSE DTOs =====

const (
	DefaultSortBy    = query.SortByYear
	DefaultSortOrder = query.OrderDesc
	DefaultLimit     = 50
	MaxLimit         = 500
)

// SearchRequest carries one composite query: filter, free-text query, sort
// and pagination.
type SearchRequest struct {
	Filter    models.QuestionFilter `json:"filters"`
	Query     string                `json:"searchQuery"`
	SortBy    query.SortKey         `json:"sortBy"`
	SortOrder query.SortOrder       `json:"sortOrder"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
}

// Normalize clamps and defaults UI-facing parameters instead of rejecting
// them; interactive callers transiently send out-of-range values.
func (r *SearchRequest) Normalize() {
	if !query.ValidSortKey(r.SortBy) {
		r.SortBy = DefaultSortBy
	}
	if r.SortOrder != query.OrderAsc && r.SortOrder != query.OrderDesc {
		r.SortOrder = DefaultSortOrder
	}
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

// SearchResponse is one page of results plus an echo of the applied
// parameters so the UI can synchronize its controls.
type SearchResponse struct {
	Questions   []models.Question     `json:"questions"`
	TotalCount  int                   `json:"totalCount"`
	Filters     models.QuestionFilter `json:"filters"`
	SearchQuery string                `json:"searchQuery"`
	SortBy      query.SortKey         `json:"sortBy"`
	SortOrder   query.SortOrder       `json:"sortOrder"`
	Limit       int                   `json:"limit"`
	Offset      int                   `json:"offset"`
}

// SaveQuestionsRequest replaces a tenant's whole question collection.
type SaveQuestionsRequest struct {
	Questions []models.Question `json:"questions" validate:"required,dive"`
}

// SaveQuestionPapersRequest replaces a tenant's whole paper collection.
type SaveQuestionPapersRequest struct {
	Papers []models.QuestionPaper `json:"papers" validate:"required,dive"`
}

// ===== SERVICE INTERFACES =====

// QuestionService is the query facade exposed to HTTP callers.
type QuestionService interface {
	Search(ctx context.Context, tenantID string, req *SearchRequest) (*SearchResponse, error)

	SaveQuestions(ctx context.Context, tenantID string, questions []models.Question) error
	SaveQuestionPapers(ctx context.Context, tenantID string, papers []models.QuestionPaper) error
	ClearAllData(ctx context.Context, tenantID string) error

	GetAllQuestions(ctx context.Context, tenantID string) ([]models.Question, error)
	GetAllQuestionPapers(ctx context.Context, tenantID string) ([]models.QuestionPaper, error)
	GetQuestionsByYear(ctx context.Context, tenantID string, year int) ([]models.Question, error)
	GetQuestionsBySubject(ctx context.Context, tenantID string, subject string) ([]models.Question, error)
	GetQuestionsByPaperType(ctx context.Context, tenantID string, paperType models.PaperType) ([]models.Question, error)
	GetRandomQuestions(ctx context.Context, tenantID string, count int, filter *models.QuestionFilter) ([]models.Question, error)

	GetStats(ctx context.Context, tenantID string) (*models.QuestionStats, error)
	GetDataInfo(ctx context.Context, tenantID string) (*repositories.DataInfo, error)
}

// ExportService renders a filtered question collection as an XLSX workbook.
type ExportService interface {
	ExportQuestions(ctx context.Context, tenantID string, filter models.QuestionFilter) ([]byte, string, error)
}
