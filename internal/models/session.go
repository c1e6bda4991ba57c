package models

import "time"

type QuizSession struct {
	ID uint `json:"-" gorm:"primaryKey"`

	// SessionID is the external token handed to the client at quiz start.
	SessionID string `json:"session_id" gorm:"not null;uniqueIndex;size:64"`
	QuizID    uint   `json:"quiz_id" gorm:"not null;index"`
	UserName  string `json:"user_name" gorm:"not null;size:100" validate:"required,min=1,max=100"`

	StartedAt   time.Time  `json:"started_at"`
	EndsAt      time.Time  `json:"-"` // Server-side deadline, StartedAt + quiz time limit
	CompletedAt *time.Time `json:"completed_at"`

	Score       int `json:"score" gorm:"not null;default:0"`
	TotalPoints int `json:"total_points" gorm:"not null;default:0"`
}

type Answer struct {
	ID         uint   `json:"-" gorm:"primaryKey"`
	SessionID  string `json:"session_id" gorm:"not null;index;size:64"`
	QuizID     uint   `json:"quiz_id" gorm:"not null;index"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`

	Answer       string    `json:"answer" gorm:"type:text"`
	IsCorrect    bool      `json:"is_correct"`
	PointsEarned int       `json:"points_earned" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}

func (Answer) TableName() string {
	return "quiz_answers"
}

// IsCompleted reports whether the session has been submitted and scored.
func (s *QuizSession) IsCompleted() bool {
	return s.CompletedAt != nil
}

// CompletionTime returns the elapsed whole seconds between start and
// completion. A session that never completed yields 0 rather than an error.
func (s *QuizSession) CompletionTime() int {
	if s.CompletedAt == nil {
		return 0
	}
	return int(s.CompletedAt.Sub(s.StartedAt).Seconds())
}

// ScorePercentage returns score over total points as a percentage rounded
// to one decimal place, 0 when the session has no points to earn.
func (s *QuizSession) ScorePercentage() float64 {
	if s.TotalPoints <= 0 {
		return 0
	}
	raw := float64(s.Score) / float64(s.TotalPoints) * 1000
	return float64(int(raw+0.5)) / 10
}
