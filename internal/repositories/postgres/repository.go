package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/repositories"
)

type Repository struct {
	db      *gorm.DB
	quiz    repositories.QuizRepository
	session repositories.SessionRepository
	answer  repositories.AnswerRepository
}

// NewRepository builds the postgres-backed repository facade
func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		db:      db,
		quiz:    NewQuizPostgreSQL(db),
		session: NewSessionPostgreSQL(db),
		answer:  NewAnswerPostgreSQL(db),
	}
}

func (r *Repository) Quiz() repositories.QuizRepository {
	return r.quiz
}

func (r *Repository) Session() repositories.SessionRepository {
	return r.session
}

func (r *Repository) Answer() repositories.AnswerRepository {
	return r.answer
}

// WithTransaction runs fn against a repository bound to one transaction
func (r *Repository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// AutoMigrate creates or updates the schema for all quiz tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Quiz{},
		&models.Question{},
		&models.QuizSession{},
		&models.Answer{},
	)
}
