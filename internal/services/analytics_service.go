package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quizforge/quiz-service/internal/cache"
	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/repositories"
)

type analyticsService struct {
	repo     repositories.Repository
	cache    cache.CacheService
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewAnalyticsService(repo repositories.Repository, cacheService cache.CacheService, cacheTTL time.Duration, logger *slog.Logger) AnalyticsService {
	return &analyticsService{
		repo:     repo,
		cache:    cacheService,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (s *analyticsService) GetQuizAnalytics(ctx context.Context, quizID uint) (*models.QuizAnalytics, error) {
	key := analyticsCacheKey(quizID)

	var cached models.QuizAnalytics
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Analytics cache read failed", "quiz_id", quizID, "error", err)
	}

	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, quizID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz %d: %w", quizID, err)
	}

	sessions, err := s.repo.Session().GetCompletedByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions for quiz %d: %w", quizID, err)
	}

	answers, err := s.repo.Answer().GetByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers for quiz %d: %w", quizID, err)
	}

	report := BuildQuizReport(quiz, sessions, answers)

	if err := s.cache.Set(ctx, key, report, s.cacheTTL); err != nil {
		s.logger.Warn("Analytics cache write failed", "quiz_id", quizID, "error", err)
	}

	return report, nil
}

func (s *analyticsService) InvalidateCache(ctx context.Context, quizID uint) error {
	return s.cache.Delete(ctx, analyticsCacheKey(quizID))
}

func analyticsCacheKey(quizID uint) string {
	return fmt.Sprintf("analytics:quiz:%d", quizID)
}
