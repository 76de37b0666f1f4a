package repositories

import (
	"context"

	"github.com/upsc-prep/question-bank-service/internal/models"
)

// DataInfo summarizes a tenant's stored data for storage-quota diagnostics.
// StorageSize is the sum of the serialized blob sizes in bytes, an estimate
// rather than billing-grade accounting.
type DataInfo struct {
	QuestionsCount int   `json:"questionsCount"`
	PapersCount    int   `json:"papersCount"`
	StorageSize    int64 `json:"storageSize"`
}

// QuestionRepository owns a single tenant's question and paper collections
// plus the derived statistics. Writes replace whole collections; reads return
// the current snapshot and degrade to empty results when the backing store is
// missing or corrupt.
type QuestionRepository interface {
	// Write operations (whole-collection replace, caller-serialized)
	SaveQuestions(ctx context.Context, questions []models.Question) error
	SaveQuestionPapers(ctx context.Context, papers []models.QuestionPaper) error
	ClearAllData(ctx context.Context) error

	// Snapshot reads
	GetAllQuestions(ctx context.Context) ([]models.Question, error)
	GetAllQuestionPapers(ctx context.Context) ([]models.QuestionPaper, error)
	GetStats(ctx context.Context) (*models.QuestionStats, error)

	// Convenience single-dimension filters
	GetQuestionsByYear(ctx context.Context, year int) ([]models.Question, error)
	GetQuestionsBySubject(ctx context.Context, subject string) ([]models.Question, error)
	GetQuestionsByPaperType(ctx context.Context, paperType models.PaperType) ([]models.Question, error)

	// Sampling and diagnostics
	GetRandomQuestions(ctx context.Context, count int, filter *models.QuestionFilter) ([]models.Question, error)
	GetDataInfo(ctx context.Context) (*DataInfo, error)
}

// Factory hands out one repository per tenant. Tenant scoping is explicit
// construction state rather than a process-global singleton.
type Factory interface {
	ForTenant(tenantID string) QuestionRepository
}
