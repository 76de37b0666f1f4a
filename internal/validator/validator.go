package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/upsc-prep/question-bank-service/internal/models"
)

// Validator wraps go-playground/validator with the question-bank domain rules
// registered.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Domain enum tags used by model and request structs.
	v.RegisterValidation("exam_type", func(fl validator.FieldLevel) bool {
		switch models.ExamType(fl.Field().String()) {
		case models.ExamPrelims, models.ExamMains:
			return true
		}
		return false
	})
	v.RegisterValidation("paper_type", func(fl validator.FieldLevel) bool {
		switch models.PaperType(fl.Field().String()) {
		case models.PaperEssay, models.PaperGS1, models.PaperGS2, models.PaperGS3, models.PaperGS4:
			return true
		}
		return false
	})
	v.RegisterValidation("difficulty_level", func(fl validator.FieldLevel) bool {
		switch models.DifficultyLevel(fl.Field().String()) {
		case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
			return true
		}
		return false
	})
	v.RegisterValidation("question_type", func(fl validator.FieldLevel) bool {
		switch models.QuestionType(fl.Field().String()) {
		case models.QuestionMCQ, models.QuestionDescriptive:
			return true
		}
		return false
	})

	return &Validator{validate: v}
}

// Validate runs struct validation and flattens field errors into one error.
func (v *Validator) Validate(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("validation: %s", strings.Join(msgs, "; "))
}
