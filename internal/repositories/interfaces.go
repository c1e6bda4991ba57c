package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/quizforge/quiz-service/internal/models"
)

// QuizFilters narrows quiz listing queries
type QuizFilters struct {
	IsPublic  *bool  `json:"is_public"`
	CreatedBy string `json:"created_by"`
	Search    string `json:"search"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "created_at", "title"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

// QuizRepository covers quiz and question persistence
type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters QuizFilters) ([]*models.Quiz, int64, error)

	// ReplaceQuestions swaps the full question set of a quiz
	ReplaceQuestions(ctx context.Context, quizID uint, questions []*models.Question) error
}

// SessionRepository covers quiz session persistence
type SessionRepository interface {
	Create(ctx context.Context, session *models.QuizSession) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.QuizSession, error)
	GetCompletedByQuiz(ctx context.Context, quizID uint) ([]*models.QuizSession, error)
	CountByQuiz(ctx context.Context, quizID uint) (int64, error)
	DeleteByQuiz(ctx context.Context, quizID uint) error

	// Complete finalizes a session if and only if it has not been completed
	// before. Returns false when another submission already won.
	Complete(ctx context.Context, sessionID string, score, totalPoints int, completedAt time.Time) (bool, error)
}

// AnswerRepository covers per-question answer persistence
type AnswerRepository interface {
	CreateBatch(ctx context.Context, answers []*models.Answer) error
	GetBySession(ctx context.Context, sessionID string) ([]*models.Answer, error)
	GetByQuiz(ctx context.Context, quizID uint) ([]*models.Answer, error)
	DeleteByQuiz(ctx context.Context, quizID uint) error
}

// Repository aggregates all sub-repositories behind one handle
type Repository interface {
	Quiz() QuizRepository
	Session() SessionRepository
	Answer() AnswerRepository

	// WithTransaction runs fn against a repository bound to a single
	// database transaction. Returning an error rolls the transaction back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error
}

// IsNotFound reports whether err signals a missing record
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
