package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/repositories"
	"github.com/quizforge/quiz-service/internal/validator"
)

type scoringService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewScoringService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ScoringService {
	return &scoringService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		now:       time.Now,
	}
}

func (s *scoringService) Score(ctx context.Context, quizID uint, req *SubmitSessionRequest) (*SubmitSessionResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, ErrorsFromValidator(err)
	}

	session, err := s.repo.Session().GetBySessionID(ctx, req.SessionID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session %s: %w", req.SessionID, err)
	}
	if session.QuizID != quizID {
		return nil, ErrSessionNotFound
	}
	if session.IsCompleted() {
		return nil, ErrSessionAlreadyCompleted
	}

	completedAt := s.now()
	if completedAt.After(session.EndsAt) {
		return nil, ErrSessionExpired
	}

	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, quizID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz %d: %w", quizID, err)
	}

	answers, totalScore := gradeAnswers(quiz.Questions, session, req.Answers, completedAt)
	totalPoints := quiz.SumPoints()

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Answer().CreateBatch(ctx, answers); err != nil {
			return fmt.Errorf("failed to store answers: %w", err)
		}

		completed, err := tx.Session().Complete(ctx, session.SessionID, totalScore, totalPoints, completedAt)
		if err != nil {
			return fmt.Errorf("failed to complete session: %w", err)
		}
		if !completed {
			// A concurrent submission won the race
			return ErrSessionAlreadyCompleted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Session scored",
		"session_id", session.SessionID,
		"quiz_id", quizID,
		"score", totalScore,
		"total_points", totalPoints)

	return &SubmitSessionResponse{
		SessionID:   session.SessionID,
		TotalScore:  totalScore,
		TotalPoints: totalPoints,
		CompletedAt: completedAt,
	}, nil
}

// gradeAnswers matches submitted answers against quiz questions. Submissions
// referencing unknown question ids are dropped.
func gradeAnswers(questions []models.Question, session *models.QuizSession, inputs []AnswerInput, gradedAt time.Time) ([]*models.Answer, int) {
	byID := make(map[uint]*models.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	var answers []*models.Answer
	totalScore := 0
	for _, input := range inputs {
		question, ok := byID[input.QuestionID]
		if !ok {
			continue
		}

		correct := AnswerMatches(question.CorrectAnswer, input.Answer)
		earned := 0
		if correct {
			earned = question.Points
		}
		totalScore += earned

		answers = append(answers, &models.Answer{
			SessionID:    session.SessionID,
			QuizID:       session.QuizID,
			QuestionID:   question.ID,
			Answer:       input.Answer,
			IsCorrect:    correct,
			PointsEarned: earned,
			CreatedAt:    gradedAt,
		})
	}
	return answers, totalScore
}

// AnswerMatches compares a submitted answer against the expected one using
// case-insensitive, whitespace-trimmed equality.
func AnswerMatches(correctAnswer, submitted string) bool {
	return strings.EqualFold(strings.TrimSpace(correctAnswer), strings.TrimSpace(submitted))
}
