package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/upsc-prep/question-bank-service/internal/models"
	"github.com/upsc-prep/question-bank-service/internal/query"
	"github.com/upsc-prep/question-bank-service/internal/repositories"
)

const exportSheet = "Questions"

type exportService struct {
	repos  repositories.Factory
	logger *slog.Logger
}

func NewExportService(repos repositories.Factory, logger *slog.Logger) ExportService {
	return &exportService{repos: repos, logger: logger}
}

// ExportQuestions renders the tenant's filtered questions as an XLSX workbook
// and returns the file contents plus a generated file name.
func (s *exportService) ExportQuestions(ctx context.Context, tenantID string, filter models.QuestionFilter) ([]byte, string, error) {
	if tenantID == "" {
		return nil, "", ErrInvalidTenant
	}

	questions, err := s.repos.ForTenant(tenantID).GetAllQuestions(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load questions: %w", err)
	}
	matched := query.Filter(questions, filter)
	if len(matched) == 0 {
		return nil, "", ErrNoQuestions
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, "", fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"ID", "Year", "Exam Type", "Paper Type", "Subject", "Topic", "Difficulty", "Question Type", "Question", "Marks", "Keywords", "Tags"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("write header: %w", err)
		}
	}

	for row, q := range matched {
		values := []any{
			q.ID, q.Year, string(q.ExamType), string(q.PaperType),
			q.Subject, q.Topic, string(q.Difficulty), string(q.QuestionType),
			q.QuestionText, q.Marks,
			strings.Join(q.Keywords, ", "), strings.Join(q.Tags, ", "),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, "", fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("serialize workbook: %w", err)
	}

	name := fmt.Sprintf("questions-%s.xlsx", uuid.New().String())
	s.logger.Info("Questions exported", "tenant_id", tenantID, "count", len(matched), "file", name)
	return buf.Bytes(), name, nil
}
