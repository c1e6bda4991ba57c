package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/quizforge/quiz-service/internal/models"
)

func question(qType models.QuestionType, options, correctAnswer string) *models.Question {
	q := &models.Question{
		Text:          "What is the capital of France?",
		Type:          qType,
		CorrectAnswer: correctAnswer,
		Points:        10,
	}
	if options != "" {
		q.Options = datatypes.JSON([]byte(options))
	}
	return q
}

func TestValidateQuestion_MultipleChoice(t *testing.T) {
	v := NewQuestionValidator()

	tests := []struct {
		name    string
		q       *models.Question
		wantErr string
	}{
		{
			name: "valid",
			q:    question(models.QuestionTypeMultipleChoice, `["Paris","London","Berlin"]`, "Paris"),
		},
		{
			name: "correct answer matches case-insensitively",
			q:    question(models.QuestionTypeMultipleChoice, `["Paris","London"]`, "  paris "),
		},
		{
			name:    "correct answer not among options",
			q:       question(models.QuestionTypeMultipleChoice, `["Paris","London"]`, "Madrid"),
			wantErr: "correct answer must match one of the options",
		},
		{
			name:    "too few options",
			q:       question(models.QuestionTypeMultipleChoice, `["Paris"]`, "Paris"),
			wantErr: "at least 2 options",
		},
		{
			name:    "duplicate options",
			q:       question(models.QuestionTypeMultipleChoice, `["Paris","paris"]`, "Paris"),
			wantErr: "duplicate option",
		},
		{
			name:    "malformed options payload",
			q:       question(models.QuestionTypeMultipleChoice, `{"a":1}`, "Paris"),
			wantErr: "JSON string array",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateQuestion(tt.q)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateQuestion_TrueFalse(t *testing.T) {
	v := NewQuestionValidator()

	assert.NoError(t, v.ValidateQuestion(question(models.QuestionTypeTrueFalse, `["True","False"]`, "True")))
	assert.Error(t, v.ValidateQuestion(question(models.QuestionTypeTrueFalse, `["Yes","No"]`, "Yes")))
	assert.Error(t, v.ValidateQuestion(question(models.QuestionTypeTrueFalse, `["True","False"]`, "Maybe")))
}

func TestValidateQuestion_Text(t *testing.T) {
	v := NewQuestionValidator()

	assert.NoError(t, v.ValidateQuestion(question(models.QuestionTypeText, "", "42")))
	assert.Error(t, v.ValidateQuestion(question(models.QuestionTypeText, `["A","B"]`, "A")))
	assert.Error(t, v.ValidateQuestion(question(models.QuestionTypeText, "", "   ")))
}

func TestValidateBatch(t *testing.T) {
	v := NewQuestionValidator()

	err := v.ValidateBatch(nil)
	assert.ErrorContains(t, err, "at least one question")

	err = v.ValidateBatch([]*models.Question{
		question(models.QuestionTypeText, "", "42"),
		question(models.QuestionTypeMultipleChoice, `["Paris"]`, "Paris"),
	})
	assert.ErrorContains(t, err, "question 2")
}
