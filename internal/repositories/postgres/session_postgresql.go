package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/repositories"
)

type SessionPostgreSQL struct {
	db *gorm.DB
}

func NewSessionPostgreSQL(db *gorm.DB) repositories.SessionRepository {
	return &SessionPostgreSQL{db: db}
}

func (s SessionPostgreSQL) Create(ctx context.Context, session *models.QuizSession) error {
	return s.db.WithContext(ctx).Create(session).Error
}

func (s SessionPostgreSQL) GetBySessionID(ctx context.Context, sessionID string) (*models.QuizSession, error) {
	var session models.QuizSession
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (s SessionPostgreSQL) GetCompletedByQuiz(ctx context.Context, quizID uint) ([]*models.QuizSession, error) {
	var sessions []*models.QuizSession
	if err := s.db.WithContext(ctx).
		Where("quiz_id = ? AND completed_at IS NOT NULL", quizID).
		Order("completed_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s SessionPostgreSQL) CountByQuiz(ctx context.Context, quizID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.QuizSession{}).
		Where("quiz_id = ?", quizID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s SessionPostgreSQL) DeleteByQuiz(ctx context.Context, quizID uint) error {
	return s.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Delete(&models.QuizSession{}).Error
}

// Complete finalizes the session with a compare-and-set on completed_at so
// that concurrent submissions cannot both win.
func (s SessionPostgreSQL) Complete(ctx context.Context, sessionID string, score, totalPoints int, completedAt time.Time) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&models.QuizSession{}).
		Where("session_id = ? AND completed_at IS NULL", sessionID).
		Updates(map[string]interface{}{
			"score":        score,
			"total_points": totalPoints,
			"completed_at": completedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
