package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/repositories"
)

// MockQuizRepository is a mock implementation of QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) Update(ctx context.Context, quiz *models.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuizRepository) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Quiz), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuizRepository) ReplaceQuestions(ctx context.Context, quizID uint, questions []*models.Question) error {
	args := m.Called(ctx, quizID, questions)
	return args.Error(0)
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.QuizSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.QuizSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizSession), args.Error(1)
}

func (m *MockSessionRepository) GetCompletedByQuiz(ctx context.Context, quizID uint) ([]*models.QuizSession, error) {
	args := m.Called(ctx, quizID)
	return args.Get(0).([]*models.QuizSession), args.Error(1)
}

func (m *MockSessionRepository) CountByQuiz(ctx context.Context, quizID uint) (int64, error) {
	args := m.Called(ctx, quizID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) DeleteByQuiz(ctx context.Context, quizID uint) error {
	args := m.Called(ctx, quizID)
	return args.Error(0)
}

func (m *MockSessionRepository) Complete(ctx context.Context, sessionID string, score, totalPoints int, completedAt time.Time) (bool, error) {
	args := m.Called(ctx, sessionID, score, totalPoints, completedAt)
	return args.Bool(0), args.Error(1)
}

// MockAnswerRepository is a mock implementation of AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) CreateBatch(ctx context.Context, answers []*models.Answer) error {
	args := m.Called(ctx, answers)
	return args.Error(0)
}

func (m *MockAnswerRepository) GetBySession(ctx context.Context, sessionID string) ([]*models.Answer, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]*models.Answer), args.Error(1)
}

func (m *MockAnswerRepository) GetByQuiz(ctx context.Context, quizID uint) ([]*models.Answer, error) {
	args := m.Called(ctx, quizID)
	return args.Get(0).([]*models.Answer), args.Error(1)
}

func (m *MockAnswerRepository) DeleteByQuiz(ctx context.Context, quizID uint) error {
	args := m.Called(ctx, quizID)
	return args.Error(0)
}

// MockRepository bundles the sub-repository mocks and runs transactions
// against itself
type MockRepository struct {
	quiz    *MockQuizRepository
	session *MockSessionRepository
	answer  *MockAnswerRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		quiz:    new(MockQuizRepository),
		session: new(MockSessionRepository),
		answer:  new(MockAnswerRepository),
	}
}

func (m *MockRepository) Quiz() repositories.QuizRepository       { return m.quiz }
func (m *MockRepository) Session() repositories.SessionRepository { return m.session }
func (m *MockRepository) Answer() repositories.AnswerRepository   { return m.answer }

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

// MockCacheService is an in-memory CacheService for tests
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}
