package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quizforge/quiz-service/internal/models"
)

// QuestionValidator handles question-specific validation
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion validates a complete question object
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if question.Text == "" {
		return fmt.Errorf("question text is required")
	}

	if question.Points < 1 {
		return fmt.Errorf("question points must be at least 1")
	}

	options, err := decodeOptions(question.Options)
	if err != nil {
		return err
	}

	switch question.Type {
	case models.QuestionTypeMultipleChoice:
		return v.validateMultipleChoice(options, question.CorrectAnswer)
	case models.QuestionTypeTrueFalse:
		return v.validateTrueFalse(options, question.CorrectAnswer)
	case models.QuestionTypeText:
		return v.validateText(options, question.CorrectAnswer)
	default:
		return fmt.Errorf("unsupported question type: %s", question.Type)
	}
}

// ValidateBatch validates multiple questions
func (v *QuestionValidator) ValidateBatch(questions []*models.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("quiz must have at least one question")
	}

	for i, question := range questions {
		if err := v.ValidateQuestion(question); err != nil {
			return fmt.Errorf("validation failed for question %d: %w", i+1, err)
		}
	}

	return nil
}

func (v *QuestionValidator) validateMultipleChoice(options []string, correctAnswer string) error {
	if len(options) < 2 {
		return fmt.Errorf("multiple choice question must have at least 2 options")
	}

	if len(options) > 10 {
		return fmt.Errorf("multiple choice question cannot have more than 10 options")
	}

	seen := make(map[string]bool)
	for _, option := range options {
		if strings.TrimSpace(option) == "" {
			return fmt.Errorf("option text cannot be empty")
		}
		key := normalize(option)
		if seen[key] {
			return fmt.Errorf("duplicate option: %s", option)
		}
		seen[key] = true
	}

	if !seen[normalize(correctAnswer)] {
		return fmt.Errorf("correct answer must match one of the options")
	}

	return nil
}

func (v *QuestionValidator) validateTrueFalse(options []string, correctAnswer string) error {
	if len(options) != 2 || normalize(options[0]) != "true" || normalize(options[1]) != "false" {
		return fmt.Errorf(`true/false question options must be ["True", "False"]`)
	}

	answer := normalize(correctAnswer)
	if answer != "true" && answer != "false" {
		return fmt.Errorf("correct answer for true/false question must be True or False")
	}

	return nil
}

func (v *QuestionValidator) validateText(options []string, correctAnswer string) error {
	if len(options) > 0 {
		return fmt.Errorf("text question cannot have options")
	}

	if strings.TrimSpace(correctAnswer) == "" {
		return fmt.Errorf("correct answer is required")
	}

	return nil
}

func decodeOptions(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var options []string
	if err := json.Unmarshal(raw, &options); err != nil {
		return nil, fmt.Errorf("options must be a JSON string array: %w", err)
	}
	return options, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
