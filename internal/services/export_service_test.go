package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/upsc-prep/question-bank-service/internal/cache"
	"github.com/upsc-prep/question-bank-service/internal/events"
	"github.com/upsc-prep/question-bank-service/internal/models"
	"github.com/upsc-prep/question-bank-service/internal/repositories/recordstore"
	"github.com/upsc-prep/question-bank-service/internal/storage"
	"github.com/upsc-prep/question-bank-service/internal/validator"
)

func newExportFixture(t *testing.T) (ExportService, QuestionService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	caches := cache.NewManager(nil)
	repos := recordstore.NewFactory(storage.NewMemStore(), caches, logger)
	mgr := NewServiceManager(repos, caches, events.NewMockPublisher(logger), logger, validator.New())
	return mgr.Export(), mgr.Question()
}

func TestExportQuestionsWorkbook(t *testing.T) {
	export, questions := newExportFixture(t)
	ctx := context.Background()

	if err := questions.SaveQuestions(ctx, testTenant, scenarioQuestions()); err != nil {
		t.Fatalf("SaveQuestions: %v", err)
	}

	data, name, err := export.ExportQuestions(ctx, testTenant, models.QuestionFilter{Subjects: []string{"History"}})
	if err != nil {
		t.Fatalf("ExportQuestions: %v", err)
	}
	if !strings.HasPrefix(name, "questions-") || !strings.HasSuffix(name, ".xlsx") {
		t.Errorf("file name = %q", name)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Questions")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// header + two History questions
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][4] != "Subject" {
		t.Errorf("header row = %v", rows[0])
	}
	for _, row := range rows[1:] {
		if row[4] != "History" {
			t.Errorf("exported subject = %q, want History", row[4])
		}
	}
}

func TestExportQuestionsEmptySelection(t *testing.T) {
	export, questions := newExportFixture(t)
	ctx := context.Background()

	if err := questions.SaveQuestions(ctx, testTenant, scenarioQuestions()); err != nil {
		t.Fatalf("SaveQuestions: %v", err)
	}

	_, _, err := export.ExportQuestions(ctx, testTenant, models.QuestionFilter{Subjects: []string{"Chemistry"}})
	if !errors.Is(err, ErrNoQuestions) {
		t.Errorf("empty export: %v, want ErrNoQuestions", err)
	}
}
