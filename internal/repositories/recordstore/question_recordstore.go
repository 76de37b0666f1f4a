// Package recordstore implements the question repository on top of the named
// blob record store. Three keys per tenant hold the question collection, the
// paper collection and the derived statistics.
package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/upsc-prep/question-bank-service/internal/cache"
	"github.com/upsc-prep/question-bank-service/internal/models"
	"github.com/upsc-prep/question-bank-service/internal/query"
	"github.com/upsc-prep/question-bank-service/internal/repositories"
	"github.com/upsc-prep/question-bank-service/internal/storage"
)

const (
	keyQuestions = "upsc_questions"
	keyPapers    = "upsc_question_papers"
	keyStats     = "upsc_question_stats"
)

type questionRepository struct {
	store    storage.RecordStore
	caches   *cache.Manager
	tenantID string
	logger   *slog.Logger
}

// NewQuestionRepository builds a repository bound to one tenant.
func NewQuestionRepository(store storage.RecordStore, caches *cache.Manager, tenantID string, logger *slog.Logger) repositories.QuestionRepository {
	return &questionRepository{
		store:    store,
		caches:   caches,
		tenantID: tenantID,
		logger:   logger.With("tenant_id", tenantID),
	}
}

// Factory hands out per-tenant repositories sharing one store and cache.
type Factory struct {
	store  storage.RecordStore
	caches *cache.Manager
	logger *slog.Logger
}

func NewFactory(store storage.RecordStore, caches *cache.Manager, logger *slog.Logger) *Factory {
	return &Factory{store: store, caches: caches, logger: logger}
}

func (f *Factory) ForTenant(tenantID string) repositories.QuestionRepository {
	return NewQuestionRepository(f.store, f.caches, tenantID, f.logger)
}

// ===== WRITES =====

func (r *questionRepository) SaveQuestions(ctx context.Context, questions []models.Question) error {
	if questions == nil {
		questions = []models.Question{}
	}

	data, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	if err := r.store.Set(ctx, r.tenantID, keyQuestions, data); err != nil {
		return fmt.Errorf("save questions: %w", err)
	}

	// Statistics are recomputed in full from the snapshot just written, never
	// patched incrementally.
	stats := query.ComputeStats(questions)
	statsData, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if err := r.store.Set(ctx, r.tenantID, keyStats, statsData); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}

	r.caches.InvalidateTenant(ctx, r.tenantID)
	r.logger.Info("Questions saved", "count", len(questions))
	return nil
}

func (r *questionRepository) SaveQuestionPapers(ctx context.Context, papers []models.QuestionPaper) error {
	if papers == nil {
		papers = []models.QuestionPaper{}
	}

	data, err := json.Marshal(papers)
	if err != nil {
		return fmt.Errorf("marshal question papers: %w", err)
	}
	if err := r.store.Set(ctx, r.tenantID, keyPapers, data); err != nil {
		return fmt.Errorf("save question papers: %w", err)
	}

	r.caches.InvalidateTenant(ctx, r.tenantID)
	r.logger.Info("Question papers saved", "count", len(papers))
	return nil
}

func (r *questionRepository) ClearAllData(ctx context.Context) error {
	for _, key := range []string{keyQuestions, keyPapers, keyStats} {
		if err := r.store.Remove(ctx, r.tenantID, key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	r.caches.InvalidateTenant(ctx, r.tenantID)
	r.logger.Info("All data cleared")
	return nil
}

// ===== SNAPSHOT READS =====

func (r *questionRepository) GetAllQuestions(ctx context.Context) ([]models.Question, error) {
	return loadCollection[models.Question](ctx, r, keyQuestions), nil
}

func (r *questionRepository) GetAllQuestionPapers(ctx context.Context) ([]models.QuestionPaper, error) {
	return loadCollection[models.QuestionPaper](ctx, r, keyPapers), nil
}

var errStatsAbsent = errors.New("stats not recorded")

// GetStats returns the derived aggregate, or nil when no question collection
// has been saved since the last clear. The read is cache-aside: a hit skips
// the store entirely, and SaveQuestions/ClearAllData drop the cached entry.
func (r *questionRepository) GetStats(ctx context.Context) (*models.QuestionStats, error) {
	var stats models.QuestionStats
	err := r.caches.Stats.GetOrCompute(ctx, cache.StatsKey(r.tenantID), &stats, cache.StatsTTL, func() (any, error) {
		data, err := r.store.Get(ctx, r.tenantID, keyStats)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				r.logger.Error("Stats read failed, treating as absent", "error", err)
			}
			return nil, errStatsAbsent
		}

		var s models.QuestionStats
		if err := json.Unmarshal(data, &s); err != nil {
			r.logger.Error("Corrupt stats blob, treating as absent", "error", err)
			return nil, errStatsAbsent
		}
		return s, nil
	})
	if errors.Is(err, errStatsAbsent) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// loadCollection reads and decodes one blob. Missing or corrupt data yields
// the empty collection, including blobs that decode partially before a type
// mismatch; storage read failures never propagate to the query layer.
func loadCollection[T any](ctx context.Context, r *questionRepository, key string) []T {
	data, err := r.store.Get(ctx, r.tenantID, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.logger.Error("Record read failed, using empty collection", "key", key, "error", err)
		}
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		r.logger.Error("Corrupt record, using empty collection", "key", key, "error", err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// ===== CONVENIENCE FILTERS =====

func (r *questionRepository) GetQuestionsByYear(ctx context.Context, year int) ([]models.Question, error) {
	questions, _ := r.GetAllQuestions(ctx)
	return query.Filter(questions, models.QuestionFilter{Years: []int{year}}), nil
}

func (r *questionRepository) GetQuestionsBySubject(ctx context.Context, subject string) ([]models.Question, error) {
	questions, _ := r.GetAllQuestions(ctx)
	return query.Filter(questions, models.QuestionFilter{Subjects: []string{subject}}), nil
}

func (r *questionRepository) GetQuestionsByPaperType(ctx context.Context, paperType models.PaperType) ([]models.Question, error) {
	questions, _ := r.GetAllQuestions(ctx)
	return query.Filter(questions, models.QuestionFilter{PaperTypes: []models.PaperType{paperType}}), nil
}

// ===== SAMPLING AND DIAGNOSTICS =====

// GetRandomQuestions applies the filter, then returns a uniformly shuffled
// prefix of min(count, matches). Fisher-Yates via rand.Shuffle keeps the
// sample unbiased and duplicate-free.
func (r *questionRepository) GetRandomQuestions(ctx context.Context, count int, filter *models.QuestionFilter) ([]models.Question, error) {
	if count <= 0 {
		return []models.Question{}, nil
	}

	questions, _ := r.GetAllQuestions(ctx)
	if filter != nil {
		questions = query.Filter(questions, *filter)
	}

	shuffled := make([]models.Question, len(questions))
	copy(shuffled, questions)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count], nil
}

func (r *questionRepository) GetDataInfo(ctx context.Context) (*repositories.DataInfo, error) {
	questions, _ := r.GetAllQuestions(ctx)
	papers, _ := r.GetAllQuestionPapers(ctx)

	var size int64
	for _, key := range []string{keyQuestions, keyPapers} {
		data, err := r.store.Get(ctx, r.tenantID, key)
		if err != nil {
			continue
		}
		size += int64(len(data))
	}

	return &repositories.DataInfo{
		QuestionsCount: len(questions),
		PapersCount:    len(papers),
		StorageSize:    size,
	}, nil
}
