package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/repositories"
	"github.com/quizforge/quiz-service/internal/validator"
)

type quizService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuizService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) QuizService {
	return &quizService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *quizService) Create(ctx context.Context, req *CreateQuizRequest) (*models.Quiz, error) {
	s.logger.Info("Creating quiz", "title", req.Title, "questions", len(req.Questions))

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, ErrorsFromValidator(err)
	}

	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Question().ValidateBatch(questions); err != nil {
		return nil, NewBusinessRuleError("question_shape", err.Error(), nil)
	}

	quiz := &models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		TimeLimit:   req.TimeLimit,
		IsPublic:    true,
		CreatedBy:   req.CreatedBy,
	}
	if req.IsPublic != nil {
		quiz.IsPublic = *req.IsPublic
	}
	for _, q := range questions {
		quiz.Questions = append(quiz.Questions, *q)
	}

	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		s.logger.Error("Failed to create quiz", "title", req.Title, "error", err)
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	quiz.TotalPoints = quiz.SumPoints()
	s.logger.Info("Quiz created", "quiz_id", quiz.ID)
	return quiz, nil
}

func (s *quizService) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz %d: %w", id, err)
	}

	quiz.TotalPoints = quiz.SumPoints()
	return quiz, nil
}

func (s *quizService) List(ctx context.Context, filters repositories.QuizFilters) (*QuizListResponse, error) {
	quizzes, total, err := s.repo.Quiz().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	for _, quiz := range quizzes {
		quiz.TotalPoints = quiz.SumPoints()
	}

	return &QuizListResponse{Quizzes: quizzes, Total: total}, nil
}

func (s *quizService) Update(ctx context.Context, id uint, req *UpdateQuizRequest) (*models.Quiz, error) {
	s.logger.Info("Updating quiz", "quiz_id", id)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, ErrorsFromValidator(err)
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz %d: %w", id, err)
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.TimeLimit != nil {
		quiz.TimeLimit = *req.TimeLimit
	}
	if req.IsPublic != nil {
		quiz.IsPublic = *req.IsPublic
	}

	var questions []*models.Question
	if req.Questions != nil {
		questions, err = buildQuestions(req.Questions)
		if err != nil {
			return nil, err
		}
		if err := s.validator.Question().ValidateBatch(questions); err != nil {
			return nil, NewBusinessRuleError("question_shape", err.Error(), nil)
		}
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Quiz().Update(ctx, quiz); err != nil {
			return err
		}
		if questions != nil {
			return tx.Quiz().ReplaceQuestions(ctx, id, questions)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to update quiz", "quiz_id", id, "error", err)
		return nil, fmt.Errorf("failed to update quiz %d: %w", id, err)
	}

	return s.GetByID(ctx, id)
}

func (s *quizService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting quiz", "quiz_id", id)

	if _, err := s.repo.Quiz().GetByID(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("failed to get quiz %d: %w", id, err)
	}

	// Sessions and answers go with the quiz
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Answer().DeleteByQuiz(ctx, id); err != nil {
			return err
		}
		if err := tx.Session().DeleteByQuiz(ctx, id); err != nil {
			return err
		}
		return tx.Quiz().Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("Failed to delete quiz", "quiz_id", id, "error", err)
		return fmt.Errorf("failed to delete quiz %d: %w", id, err)
	}

	s.logger.Info("Quiz deleted", "quiz_id", id)
	return nil
}

func buildQuestions(inputs []QuestionInput) ([]*models.Question, error) {
	questions := make([]*models.Question, 0, len(inputs))
	for i, input := range inputs {
		var options datatypes.JSON
		if len(input.Options) > 0 {
			raw, err := json.Marshal(input.Options)
			if err != nil {
				return nil, fmt.Errorf("failed to encode options for question %d: %w", i+1, err)
			}
			options = datatypes.JSON(raw)
		}

		questions = append(questions, &models.Question{
			Text:          input.Text,
			Type:          input.Type,
			Options:       options,
			CorrectAnswer: input.CorrectAnswer,
			Points:        input.Points,
			OrderIndex:    i,
		})
	}
	return questions, nil
}
