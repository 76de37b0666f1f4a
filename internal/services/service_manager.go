package services

import (
	"log/slog"

	"github.com/upsc-prep/question-bank-service/internal/cache"
	"github.com/upsc-prep/question-bank-service/internal/events"
	"github.com/upsc-prep/question-bank-service/internal/repositories"
	"github.com/upsc-prep/question-bank-service/internal/validator"
)

// ServiceManager provides access to all services.
type ServiceManager interface {
	Question() QuestionService
	Export() ExportService
}

type serviceManager struct {
	question QuestionService
	export   ExportService
}

func NewServiceManager(repos repositories.Factory, caches *cache.Manager, publisher events.Publisher, logger *slog.Logger, v *validator.Validator) ServiceManager {
	return &serviceManager{
		question: NewQuestionService(repos, caches, publisher, logger, v),
		export:   NewExportService(repos, logger),
	}
}

func (m *serviceManager) Question() QuestionService { return m.question }
func (m *serviceManager) Export() ExportService     { return m.export }
