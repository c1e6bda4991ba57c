package services

import (
	"context"
	"time"

	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/repositories"
)

// ===== REQUEST / RESPONSE TYPES =====

type QuestionInput struct {
	Text          string              `json:"text" validate:"required"`
	Type          models.QuestionType `json:"type" validate:"required,question_type"`
	Options       []string            `json:"options"`
	CorrectAnswer string              `json:"correct_answer" validate:"required"`
	Points        int                 `json:"points" validate:"required,min=1"`
}

type CreateQuizRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	TimeLimit   int             `json:"time_limit" validate:"required,min=1"`
	IsPublic    *bool           `json:"is_public"`
	CreatedBy   string          `json:"created_by"`
	Questions   []QuestionInput `json:"questions" validate:"required,min=1,dive"`
}

type UpdateQuizRequest struct {
	Title       *string         `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string         `json:"description" validate:"omitempty,max=1000"`
	TimeLimit   *int            `json:"time_limit" validate:"omitempty,min=1"`
	IsPublic    *bool           `json:"is_public"`
	Questions   []QuestionInput `json:"questions" validate:"omitempty,min=1,dive"`
}

type QuizListResponse struct {
	Quizzes []*models.Quiz `json:"quizzes"`
	Total   int64          `json:"total"`
}

type StartSessionRequest struct {
	UserName string `json:"user_name" validate:"required,max=100"`
}

type StartSessionResponse struct {
	SessionID   string     `json:"session_id"`
	QuizID      uint       `json:"quiz_id"`
	UserName    string     `json:"user_name"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Score       int        `json:"score"`
	TotalPoints int        `json:"total_points"`
	TimeLimit   int        `json:"time_limit"`
}

type AnswerInput struct {
	QuestionID uint   `json:"question_id" validate:"required"`
	Answer     string `json:"answer"`
}

type SubmitSessionRequest struct {
	SessionID string        `json:"session_id" validate:"required"`
	Answers   []AnswerInput `json:"answers" validate:"required,min=1,dive"`
}

type SubmitSessionResponse struct {
	SessionID   string    `json:"session_id"`
	TotalScore  int       `json:"total_score"`
	TotalPoints int       `json:"total_points"`
	CompletedAt time.Time `json:"completed_at"`
}

type AnswerDetail struct {
	QuestionID    uint   `json:"question_id"`
	QuestionText  string `json:"question_text"`
	Answer        string `json:"answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	PointsEarned  int    `json:"points_earned"`
	Points        int    `json:"points"`
}

type SessionResultsResponse struct {
	SessionID       string         `json:"session_id"`
	QuizID          uint           `json:"quiz_id"`
	QuizTitle       string         `json:"quiz_title"`
	UserName        string         `json:"user_name"`
	StartedAt       time.Time      `json:"started_at"`
	CompletedAt     *time.Time     `json:"completed_at"`
	Score           int            `json:"score"`
	TotalPoints     int            `json:"total_points"`
	ScorePercentage float64        `json:"score_percentage"`
	Answers         []AnswerDetail `json:"answers"`
}

// ===== SERVICE INTERFACES =====

type QuizService interface {
	Create(ctx context.Context, req *CreateQuizRequest) (*models.Quiz, error)
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	List(ctx context.Context, filters repositories.QuizFilters) (*QuizListResponse, error)
	Update(ctx context.Context, id uint, req *UpdateQuizRequest) (*models.Quiz, error)
	Delete(ctx context.Context, id uint) error
}

// ScoringService grades a submission and finalizes its session
type ScoringService interface {
	Score(ctx context.Context, quizID uint, req *SubmitSessionRequest) (*SubmitSessionResponse, error)
}

type SessionService interface {
	Start(ctx context.Context, quizID uint, req *StartSessionRequest) (*StartSessionResponse, error)
	Submit(ctx context.Context, quizID uint, req *SubmitSessionRequest) (*SubmitSessionResponse, error)
	Results(ctx context.Context, quizID uint, sessionID string) (*SessionResultsResponse, error)
}

type AnalyticsService interface {
	GetQuizAnalytics(ctx context.Context, quizID uint) (*models.QuizAnalytics, error)
	InvalidateCache(ctx context.Context, quizID uint) error
}

type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatJSON ExportFormat = "json"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ExportResult is a rendered download ready to stream to the client
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

type ExportService interface {
	ExportResults(ctx context.Context, quizID uint, format ExportFormat) (*ExportResult, error)
}
