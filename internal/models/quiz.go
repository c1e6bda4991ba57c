package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeText           QuestionType = "text"
)

type Quiz struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description string `json:"description" gorm:"type:text" validate:"max=1000"`
	TimeLimit   int    `json:"time_limit" gorm:"not null" validate:"required,min=1"` // Minutes
	IsPublic    bool   `json:"is_public" gorm:"default:false;index"`

	// Metadata
	CreatedBy string    `json:"created_by" gorm:"not null;size:100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Questions []Question `json:"questions" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`

	// Computed fields (not stored)
	TotalPoints int `json:"total_points" gorm:"-"`
}

type Question struct {
	ID     uint         `json:"id" gorm:"primaryKey"`
	QuizID uint         `json:"quiz_id" gorm:"not null;index"`
	Text   string       `json:"text" gorm:"type:text;not null" validate:"required"`
	Type   QuestionType `json:"type" gorm:"not null" validate:"required,question_type"`

	// Options is a JSON string array; shape depends on Type (see validator).
	Options       datatypes.JSON `json:"options" gorm:"type:jsonb"`
	CorrectAnswer string         `json:"correct_answer" gorm:"not null" validate:"required"`
	Points        int            `json:"points" gorm:"not null" validate:"required,min=1"`
	OrderIndex    int            `json:"order_index" gorm:"not null;default:0"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (Question) TableName() string {
	return "questions"
}

// SumPoints returns the total points across all questions of the quiz.
// Unanswered questions still count toward a session's denominator, so
// this is always computed over the full question set.
func (q *Quiz) SumPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}
