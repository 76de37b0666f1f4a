package recordstore

import (
	"context"
	"log/slog"
	"os"
	"reflect"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/upsc-prep/question-bank-service/internal/cache"
	"github.com/upsc-prep/question-bank-service/internal/models"
	"github.com/upsc-prep/question-bank-service/internal/repositories"
	"github.com/upsc-prep/question-bank-service/internal/storage"
)

func newTestRepo(t *testing.T) (repositories.QuestionRepository, *storage.MemStore) {
	t.Helper()
	store := storage.NewMemStore()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	repo := NewFactory(store, cache.NewManager(nil), logger).ForTenant("tenant-a")
	return repo, store
}

func testQuestions() []models.Question {
	return []models.Question{
		{ID: "q1", Year: 2023, ExamType: models.ExamMains, PaperType: models.PaperGS1, Subject: "History", Topic: "Modern India", Difficulty: models.DifficultyEasy, QuestionType: models.QuestionDescriptive, QuestionText: "Trace the course of the Quit India Movement.", Marks: 10},
		{ID: "q2", Year: 2023, ExamType: models.ExamPrelims, PaperType: models.PaperGS1, Subject: "Geography", Topic: "Rivers", Difficulty: models.DifficultyHard, QuestionType: models.QuestionMCQ, QuestionText: "Which river flows through a rift valley?", Marks: 2},
		{ID: "q3", Year: 2024, ExamType: models.ExamMains, PaperType: models.PaperGS2, Subject: "History", Topic: "Ancient India", Difficulty: models.DifficultyMedium, QuestionType: models.QuestionDescriptive, QuestionText: "Assess the Gupta administrative structure.", Marks: 15},
	}
}

func TestSaveAndGetQuestionsRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	want := testQuestions()
	if err := repo.SaveQuestions(ctx, want); err != nil {
		t.Fatalf("SaveQuestions: %v", err)
	}

	got, err := repo.GetAllQuestions(ctx)
	if err != nil {
		t.Fatalf("GetAllQuestions: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestSaveQuestionsIsOverwriteNotMerge(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveQuestions(ctx, testQuestions()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	replacement := testQuestions()[:1]
	if err := repo.SaveQuestions(ctx, replacement); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, _ := repo.GetAllQuestions(ctx)
	if len(got) != 1 || got[0].ID != "q1" {
		t.Errorf("expected overwrite to [q1], got %d questions", len(got))
	}
}

func TestStatsRecomputedOnSave(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	questions := testQuestions()
	if err := repo.SaveQuestions(ctx, questions); err != nil {
		t.Fatalf("SaveQuestions: %v", err)
	}

	stats, err := repo.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats == nil {
		t.Fatal("GetStats = nil after save")
	}
	if stats.TotalQuestions != len(questions) {
		t.Errorf("TotalQuestions = %d, want %d", stats.TotalQuestions, len(questions))
	}

	sum := 0
	for _, n := range stats.ByDifficulty {
		sum += n
	}
	if sum != stats.TotalQuestions {
		t.Errorf("sum(ByDifficulty) = %d, want %d", sum, stats.TotalQuestions)
	}
}

func TestGetStatsBeforeAnySave(t *testing.T) {
	repo, _ := newTestRepo(t)
	stats, err := repo.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats != nil {
		t.Errorf("GetStats before save = %+v, want nil", stats)
	}
}

func TestClearAllData(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveQuestions(ctx, testQuestions()); err != nil {
		t.Fatalf("SaveQuestions: %v", err)
	}
	if err := repo.SaveQuestionPapers(ctx, []models.QuestionPaper{{ID: "p1", Title: "GS-I 2023", Year: 2023, ExamType: models.ExamMains, PaperType: models.PaperGS1, TotalQuestions: 0, Questions: []models.Question{}}}); err != nil {
		t.Fatalf("SaveQuestionPapers: %v", err)
	}

	if err := repo.ClearAllData(ctx); err != nil {
		t.Fatalf("ClearAllData: %v", err)
	}

	questions, _ := repo.GetAllQuestions(ctx)
	if len(questions) != 0 {
		t.Errorf("questions after clear = %d, want 0", len(questions))
	}
	papers, _ := repo.GetAllQuestionPapers(ctx)
	if len(papers) != 0 {
		t.Errorf("papers after clear = %d, want 0", len(papers))
	}
	stats, _ := repo.GetStats(ctx)
	if stats != nil {
		t.Errorf("stats after clear = %+v, want nil", stats)
	}
}

func TestCorruptBlobDegradesToEmpty(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	if err := store.Set(ctx, "tenant-a", keyQuestions, []byte("{not json")); err != nil {
		t.Fatalf("Set corrupt blob: %v", err)
	}
	if err := store.Set(ctx, "tenant-a", keyStats, []byte("also broken")); err != nil {
		t.Fatalf("Set corrupt stats: %v", err)
	}

	questions, err := repo.GetAllQuestions(ctx)
	if err != nil {
		t.Fatalf("GetAllQuestions on corrupt data: %v", err)
	}
	if len(questions) != 0 {
		t.Errorf("corrupt questions blob yielded %d questions", len(questions))
	}

	stats, err := repo.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats on corrupt data: %v", err)
	}
	if stats != nil {
		t.Errorf("corrupt stats blob yielded %+v", stats)
	}
}

// Valid JSON with wrong field types decodes partially before failing; the
// partial records must not leak out as phantom questions.
func TestTypeMismatchBlobDegradesToEmpty(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	blob := []byte(`[{"id":"q1","year":"not-a-number","subject":"History"}]`)
	if err := store.Set(ctx, "tenant-a", keyQuestions, blob); err != nil {
		t.Fatalf("Set mismatched blob: %v", err)
	}
	paperBlob := []byte(`[{"id":"p1","totalMarks":"two hundred fifty"}]`)
	if err := store.Set(ctx, "tenant-a", keyPapers, paperBlob); err != nil {
		t.Fatalf("Set mismatched paper blob: %v", err)
	}

	questions, err := repo.GetAllQuestions(ctx)
	if err != nil {
		t.Fatalf("GetAllQuestions on mismatched data: %v", err)
	}
	if len(questions) != 0 {
		t.Errorf("mismatched questions blob yielded %d questions: %+v", len(questions), questions)
	}

	papers, err := repo.GetAllQuestionPapers(ctx)
	if err != nil {
		t.Fatalf("GetAllQuestionPapers on mismatched data: %v", err)
	}
	if len(papers) != 0 {
		t.Errorf("mismatched papers blob yielded %d papers", len(papers))
	}
}

func TestConvenienceFilters(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveQuestions(ctx, testQuestions()); err != nil {
		t.Fatalf("SaveQuestions: %v", err)
	}

	byYear, _ := repo.GetQuestionsByYear(ctx, 2024)
	if len(byYear) != 1 || byYear[0].ID != "q3" {
		t.Errorf("GetQuestionsByYear(2024) = %d questions", len(byYear))
	}

	// Case-insensitive for the text dimension.
	bySubject, _ := repo.GetQuestionsBySubject(ctx, "hiSTory")
	if len(bySubject) != 2 {
		t.Errorf("GetQuestionsBySubject = %d questions, want 2", len(bySubject))
	}

	byPaper, _ := repo.GetQuestionsByPaperType(ctx, models.PaperGS2)
	if len(byPaper) != 1 || byPaper[0].ID != "q3" {
		t.Errorf("GetQuestionsByPaperType(GS-II) = %d questions", len(byPaper))
	}
}

func TestGetRandomQuestions(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveQuestions(ctx, testQuestions()); err != nil {
		t.Fatalf("SaveQuestions: %v", err)
	}

	t.Run("no duplicates and bounded by count", func(t *testing.T) {
		for range 50 {
			sample, err := repo.GetRandomQuestions(ctx, 2, nil)
			if err != nil {
				t.Fatalf("GetRandomQuestions: %v", err)
			}
			if len(sample) != 2 {
				t.Fatalf("sample size = %d, want 2", len(sample))
			}
			if sample[0].ID == sample[1].ID {
				t.Fatalf("duplicate question %s in sample", sample[0].ID)
			}
		}
	})

	t.Run("bounded by match count", func(t *testing.T) {
		filter := &models.QuestionFilter{Subjects: []string{"History"}}
		sample, err := repo.GetRandomQuestions(ctx, 10, filter)
		if err != nil {
			t.Fatalf("GetRandomQuestions: %v", err)
		}
		if len(sample) != 2 {
			t.Errorf("sample size = %d, want 2 (filtered matches)", len(sample))
		}
		for _, q := range sample {
			if q.Subject != "History" {
				t.Errorf("sampled question %s violates filter", q.ID)
			}
		}
	})

	t.Run("zero count", func(t *testing.T) {
		sample, err := repo.GetRandomQuestions(ctx, 0, nil)
		if err != nil {
			t.Fatalf("GetRandomQuestions: %v", err)
		}
		if len(sample) != 0 {
			t.Errorf("sample size = %d, want 0", len(sample))
		}
	})

	t.Run("selection is roughly uniform", func(t *testing.T) {
		counts := map[string]int{}
		const rounds = 3000
		for range rounds {
			sample, err := repo.GetRandomQuestions(ctx, 1, nil)
			if err != nil {
				t.Fatalf("GetRandomQuestions: %v", err)
			}
			counts[sample[0].ID]++
		}
		// Expected 1000 per question over 3000 draws from 3 questions; a
		// comparator-shuffle bias would skew far beyond this band.
		for id, n := range counts {
			if n < 800 || n > 1200 {
				t.Errorf("question %s drawn %d times out of %d", id, n, rounds)
			}
		}
	})
}

func TestGetDataInfo(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	info, err := repo.GetDataInfo(ctx)
	if err != nil {
		t.Fatalf("GetDataInfo empty: %v", err)
	}
	if info.QuestionsCount != 0 || info.PapersCount != 0 || info.StorageSize != 0 {
		t.Errorf("empty data info = %+v", info)
	}

	if err := repo.SaveQuestions(ctx, testQuestions()); err != nil {
		t.Fatalf("SaveQuestions: %v", err)
	}
	info, err = repo.GetDataInfo(ctx)
	if err != nil {
		t.Fatalf("GetDataInfo: %v", err)
	}
	if info.QuestionsCount != 3 {
		t.Errorf("QuestionsCount = %d, want 3", info.QuestionsCount)
	}
	if info.StorageSize <= 0 {
		t.Errorf("StorageSize = %d, want > 0", info.StorageSize)
	}
}

func TestTenantIsolation(t *testing.T) {
	store := storage.NewMemStore()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	factory := NewFactory(store, cache.NewManager(nil), logger)
	ctx := context.Background()

	repoA := factory.ForTenant("tenant-a")
	repoB := factory.ForTenant("tenant-b")

	if err := repoA.SaveQuestions(ctx, testQuestions()); err != nil {
		t.Fatalf("SaveQuestions tenant-a: %v", err)
	}

	questionsB, _ := repoB.GetAllQuestions(ctx)
	if len(questionsB) != 0 {
		t.Errorf("tenant-b sees %d of tenant-a's questions", len(questionsB))
	}

	if err := repoB.ClearAllData(ctx); err != nil {
		t.Fatalf("ClearAllData tenant-b: %v", err)
	}
	questionsA, _ := repoA.GetAllQuestions(ctx)
	if len(questionsA) != 3 {
		t.Errorf("tenant-a lost data to tenant-b clear: %d questions", len(questionsA))
	}
}

func TestStatsCacheAside(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := storage.NewMemStore()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	repo := NewFactory(store, cache.NewManager(client), logger).ForTenant("tenant-a")
	ctx := context.Background()

	if err := repo.SaveQuestions(ctx, testQuestions()); err != nil {
		t.Fatalf("SaveQuestions: %v", err)
	}
	first, err := repo.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if first == nil || first.TotalQuestions != 3 {
		t.Fatalf("first stats = %+v", first)
	}

	// Remove the stored blob behind the cache's back: the next read must be
	// served from the cached entry without touching the store.
	if err := store.Remove(ctx, "tenant-a", keyStats); err != nil {
		t.Fatalf("Remove stats blob: %v", err)
	}
	second, err := repo.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats after blob removal: %v", err)
	}
	if second == nil || second.TotalQuestions != 3 {
		t.Errorf("cached stats = %+v, want TotalQuestions 3", second)
	}

	// A new save rewrites the blob and drops the cached entry, so the next
	// read reflects the replacement collection.
	if err := repo.SaveQuestions(ctx, testQuestions()[:1]); err != nil {
		t.Fatalf("second SaveQuestions: %v", err)
	}
	third, err := repo.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats after second save: %v", err)
	}
	if third == nil || third.TotalQuestions != 1 {
		t.Errorf("stats after second save = %+v, want TotalQuestions 1", third)
	}
}
