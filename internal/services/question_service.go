package services

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"github.com/upsc-prep/question-bank-service/internal/cache"
	"github.com/upsc-prep/question-bank-service/internal/events"
	"github.com/upsc-prep/question-bank-service/internal/models"
	"github.com/upsc-prep/question-bank-service/internal/query"
	"github.com/upsc-prep/question-bank-service/internal/repositories"
	"github.com/upsc-prep/question-bank-service/internal/validator"
)

type questionService struct {
	repos     repositories.Factory
	caches    *cache.Manager
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuestionService(repos repositories.Factory, caches *cache.Manager, publisher events.Publisher, logger *slog.Logger, v *validator.Validator) QuestionService {
	return &questionService{
		repos:     repos,
		caches:    caches,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// ===== COMPOSITE QUERY =====

// Search runs the full pipeline: filter, free-text search, stable sort,
// pagination. Every call re-reads the backing store, so results stay correct
// under external re-ingestion; the assembled page is cached briefly and
// invalidated on any write.
func (s *questionService) Search(ctx context.Context, tenantID string, req *SearchRequest) (*SearchResponse, error) {
	if tenantID == "" {
		return nil, ErrInvalidTenant
	}
	req.Normalize()

	cacheKey, haveKey := searchCacheKey(tenantID, req)
	if haveKey {
		var cached SearchResponse
		if err := s.caches.Query.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	questions, err := s.repos.ForTenant(tenantID).GetAllQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	filtered := query.Filter(questions, req.Filter)
	searched := query.Search(filtered, req.Query)
	sorted := query.Sort(searched, req.SortBy, req.SortOrder)
	page := query.Paginate(sorted, req.Offset, req.Limit)

	resp := &SearchResponse{
		Questions:   page.Items,
		TotalCount:  page.TotalCount,
		Filters:     req.Filter,
		SearchQuery: req.Query,
		SortBy:      req.SortBy,
		SortOrder:   req.SortOrder,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}

	if haveKey {
		if err := s.caches.Query.Set(ctx, cacheKey, resp, cache.QueryTTL); err != nil {
			s.logger.Warn("Search page cache write failed", "error", err, "tenant_id", tenantID)
		}
	}
	return resp, nil
}

// searchCacheKey derives a tenant-scoped key from the normalized parameters.
// Keys share the tenant prefix, so a collection write invalidates them all.
func searchCacheKey(tenantID string, req *SearchRequest) (string, bool) {
	params, err := json.Marshal(req)
	if err != nil {
		return "", false
	}
	h := fnv.New64a()
	h.Write(params)
	return fmt.Sprintf("%s:search:%x", tenantID, h.Sum64()), true
}

// ===== WRITES =====

func (s *questionService) SaveQuestions(ctx context.Context, tenantID string, questions []models.Question) error {
	if tenantID == "" {
		return ErrInvalidTenant
	}
	for i := range questions {
		if err := s.validator.Validate(questions[i]); err != nil {
			return fmt.Errorf("%w: question %d: %v", ErrValidationFailed, i, err)
		}
	}

	if err := s.repos.ForTenant(tenantID).SaveQuestions(ctx, questions); err != nil {
		return fmt.Errorf("save questions: %w", err)
	}

	s.publish(ctx, events.TopicQuestionsSaved, tenantID, len(questions))
	return nil
}

func (s *questionService) SaveQuestionPapers(ctx context.Context, tenantID string, papers []models.QuestionPaper) error {
	if tenantID == "" {
		return ErrInvalidTenant
	}
	for i := range papers {
		if err := s.validator.Validate(papers[i]); err != nil {
			return fmt.Errorf("%w: paper %d: %v", ErrValidationFailed, i, err)
		}
		if papers[i].TotalQuestions != len(papers[i].Questions) {
			return fmt.Errorf("%w: paper %s declares %d questions, holds %d",
				ErrPaperCountMismatch, papers[i].ID, papers[i].TotalQuestions, len(papers[i].Questions))
		}
	}

	if err := s.repos.ForTenant(tenantID).SaveQuestionPapers(ctx, papers); err != nil {
		return fmt.Errorf("save question papers: %w", err)
	}

	s.publish(ctx, events.TopicPapersSaved, tenantID, len(papers))
	return nil
}

func (s *questionService) ClearAllData(ctx context.Context, tenantID string) error {
	if tenantID == "" {
		return ErrInvalidTenant
	}
	if err := s.repos.ForTenant(tenantID).ClearAllData(ctx); err != nil {
		return fmt.Errorf("clear all data: %w", err)
	}

	s.publish(ctx, events.TopicDataCleared, tenantID, 0)
	return nil
}

// publish emits a collection-write event. Delivery failures are logged and
// never fail the save.
func (s *questionService) publish(ctx context.Context, topic, tenantID string, count int) {
	event := events.CollectionEvent{
		TenantID:   tenantID,
		Count:      count,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.Error("Event publish failed", "topic", topic, "tenant_id", tenantID, "error", err)
	}
}

// ===== READS =====

func (s *questionService) GetAllQuestions(ctx context.Context, tenantID string) ([]models.Question, error) {
	if tenantID == "" {
		return nil, ErrInvalidTenant
	}
	return s.repos.ForTenant(tenantID).GetAllQuestions(ctx)
}

func (s *questionService) GetAllQuestionPapers(ctx context.Context, tenantID string) ([]models.QuestionPaper, error) {
	if tenantID == "" {
		return nil, ErrInvalidTenant
	}
	return s.repos.ForTenant(tenantID).GetAllQuestionPapers(ctx)
}

func (s *questionService) GetQuestionsByYear(ctx context.Context, tenantID string, year int) ([]models.Question, error) {
	if tenantID == "" {
		return nil, ErrInvalidTenant
	}
	return s.repos.ForTenant(tenantID).GetQuestionsByYear(ctx, year)
}

func (s *questionService) GetQuestionsBySubject(ctx context.Context, tenantID string, subject string) ([]models.Question, error) {
	if tenantID == "" {
		return nil, ErrInvalidTenant
	}
	return s.repos.ForTenant(tenantID).GetQuestionsBySubject(ctx, subject)
}

func (s *questionService) GetQuestionsByPaperType(ctx context.Context, tenantID string, paperType models.PaperType) ([]models.Question, error) {
	if tenantID == "" {
		return nil, ErrInvalidTenant
	}
	return s.repos.ForTenant(tenantID).GetQuestionsByPaperType(ctx, paperType)
}

func (s *questionService) GetRandomQuestions(ctx context.Context, tenantID string, count int, filter *models.QuestionFilter) ([]models.Question, error) {
	if tenantID == "" {
		return nil, ErrInvalidTenant
	}
	return s.repos.ForTenant(tenantID).GetRandomQuestions(ctx, count, filter)
}

func (s *questionService) GetStats(ctx context.Context, tenantID string) (*models.QuestionStats, error) {
	if tenantID == "" {
		return nil, ErrInvalidTenant
	}
	return s.repos.ForTenant(tenantID).GetStats(ctx)
}

func (s *questionService) GetDataInfo(ctx context.Context, tenantID string) (*repositories.DataInfo, error) {
	if tenantID == "" {
		return nil, ErrInvalidTenant
	}
	return s.repos.ForTenant(tenantID).GetDataInfo(ctx)
}
