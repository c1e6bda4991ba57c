package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/repositories"
)

type AnswerPostgreSQL struct {
	db *gorm.DB
}

func NewAnswerPostgreSQL(db *gorm.DB) repositories.AnswerRepository {
	return &AnswerPostgreSQL{db: db}
}

func (a AnswerPostgreSQL) CreateBatch(ctx context.Context, answers []*models.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return a.db.WithContext(ctx).Create(&answers).Error
}

func (a AnswerPostgreSQL) GetBySession(ctx context.Context, sessionID string) ([]*models.Answer, error) {
	var answers []*models.Answer
	if err := a.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("question_id ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (a AnswerPostgreSQL) GetByQuiz(ctx context.Context, quizID uint) ([]*models.Answer, error) {
	var answers []*models.Answer
	if err := a.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (a AnswerPostgreSQL) DeleteByQuiz(ctx context.Context, quizID uint) error {
	return a.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Delete(&models.Answer{}).Error
}
