package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quiz-service/internal/events"
	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/repositories"
	"github.com/quizforge/quiz-service/internal/validator"
)

type sessionService struct {
	repo      repositories.Repository
	scoring   ScoringService
	analytics AnalyticsService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewSessionService(
	repo repositories.Repository,
	scoring ScoringService,
	analytics AnalyticsService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) SessionService {
	return &sessionService{
		repo:      repo,
		scoring:   scoring,
		analytics: analytics,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		now:       time.Now,
	}
}

func (s *sessionService) Start(ctx context.Context, quizID uint, req *StartSessionRequest) (*StartSessionResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, ErrorsFromValidator(err)
	}

	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, quizID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz %d: %w", quizID, err)
	}

	startedAt := s.now()
	session := &models.QuizSession{
		SessionID:   uuid.NewString(),
		QuizID:      quiz.ID,
		UserName:    req.UserName,
		StartedAt:   startedAt,
		EndsAt:      startedAt.Add(time.Duration(quiz.TimeLimit) * time.Minute),
		Score:       0,
		TotalPoints: quiz.SumPoints(),
	}

	if err := s.repo.Session().Create(ctx, session); err != nil {
		s.logger.Error("Failed to create session", "quiz_id", quizID, "error", err)
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("Session started",
		"session_id", session.SessionID,
		"quiz_id", quiz.ID,
		"user_name", session.UserName)

	event := events.NewSessionStartedEvent(
		session.SessionID, quiz.ID, quiz.Title, session.UserName,
		session.StartedAt, session.EndsAt, quiz.TimeLimit)
	if err := s.publisher.PublishSessionEvent(ctx, event); err != nil {
		// Event delivery must not fail the request
		s.logger.Warn("Failed to publish session.started event",
			"session_id", session.SessionID, "error", err)
	}

	return &StartSessionResponse{
		SessionID:   session.SessionID,
		QuizID:      session.QuizID,
		UserName:    session.UserName,
		StartedAt:   session.StartedAt,
		CompletedAt: nil,
		Score:       0,
		TotalPoints: session.TotalPoints,
		TimeLimit:   quiz.TimeLimit,
	}, nil
}

func (s *sessionService) Submit(ctx context.Context, quizID uint, req *SubmitSessionRequest) (*SubmitSessionResponse, error) {
	result, err := s.scoring.Score(ctx, quizID, req)
	if err != nil {
		return nil, err
	}

	if err := s.analytics.InvalidateCache(ctx, quizID); err != nil {
		s.logger.Warn("Failed to invalidate analytics cache",
			"quiz_id", quizID, "error", err)
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		s.logger.Warn("Failed to load quiz for submitted event",
			"quiz_id", quizID, "error", err)
		return result, nil
	}

	session, err := s.repo.Session().GetBySessionID(ctx, result.SessionID)
	if err != nil {
		s.logger.Warn("Failed to load session for submitted event",
			"session_id", result.SessionID, "error", err)
		return result, nil
	}

	event := events.NewSessionSubmittedEvent(
		result.SessionID, quizID, quiz.Title, session.UserName,
		result.CompletedAt, result.TotalScore, result.TotalPoints,
		session.ScorePercentage())
	if err := s.publisher.PublishSessionEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish session.submitted event",
			"session_id", result.SessionID, "error", err)
	}

	return result, nil
}

func (s *sessionService) Results(ctx context.Context, quizID uint, sessionID string) (*SessionResultsResponse, error) {
	session, err := s.repo.Session().GetBySessionID(ctx, sessionID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if session.QuizID != quizID {
		return nil, ErrSessionNotFound
	}
	if !session.IsCompleted() {
		return nil, ErrSessionNotCompleted
	}

	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, quizID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz %d: %w", quizID, err)
	}

	answers, err := s.repo.Answer().GetBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers for session %s: %w", sessionID, err)
	}

	questionsByID := make(map[uint]*models.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		questionsByID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	details := make([]AnswerDetail, 0, len(answers))
	for _, answer := range answers {
		detail := AnswerDetail{
			QuestionID:   answer.QuestionID,
			Answer:       answer.Answer,
			IsCorrect:    answer.IsCorrect,
			PointsEarned: answer.PointsEarned,
		}
		if question, ok := questionsByID[answer.QuestionID]; ok {
			detail.QuestionText = question.Text
			detail.CorrectAnswer = question.CorrectAnswer
			detail.Points = question.Points
		}
		details = append(details, detail)
	}

	return &SessionResultsResponse{
		SessionID:       session.SessionID,
		QuizID:          session.QuizID,
		QuizTitle:       quiz.Title,
		UserName:        session.UserName,
		StartedAt:       session.StartedAt,
		CompletedAt:     session.CompletedAt,
		Score:           session.Score,
		TotalPoints:     session.TotalPoints,
		ScorePercentage: session.ScorePercentage(),
		Answers:         details,
	}, nil
}
