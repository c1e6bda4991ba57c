package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/quizforge/quiz-service/internal/events"
	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/validator"
)

type MockScoringService struct {
	mock.Mock
}

func (m *MockScoringService) Score(ctx context.Context, quizID uint, req *SubmitSessionRequest) (*SubmitSessionResponse, error) {
	args := m.Called(ctx, quizID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SubmitSessionResponse), args.Error(1)
}

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) GetQuizAnalytics(ctx context.Context, quizID uint) (*models.QuizAnalytics, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizAnalytics), args.Error(1)
}

func (m *MockAnalyticsService) InvalidateCache(ctx context.Context, quizID uint) error {
	args := m.Called(ctx, quizID)
	return args.Error(0)
}

type sessionServiceFixture struct {
	repo      *MockRepository
	scoring   *MockScoringService
	analytics *MockAnalyticsService
	publisher *events.MockEventPublisher
	service   SessionService
}

func newSessionServiceFixture() *sessionServiceFixture {
	repo := NewMockRepository()
	scoring := new(MockScoringService)
	analytics := new(MockAnalyticsService)
	publisher := events.NewMockEventPublisher(slog.Default())

	service := NewSessionService(repo, scoring, analytics, publisher, slog.Default(), validator.New())

	return &sessionServiceFixture{
		repo:      repo,
		scoring:   scoring,
		analytics: analytics,
		publisher: publisher,
		service:   service,
	}
}

func TestStart_Success(t *testing.T) {
	f := newSessionServiceFixture()

	quiz := scoringQuiz()
	f.repo.quiz.On("GetByIDWithQuestions", mock.Anything, uint(1)).Return(quiz, nil)
	f.repo.session.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.service.Start(context.Background(), 1, &StartSessionRequest{UserName: "alice"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, uint(1), resp.QuizID)
	assert.Equal(t, "alice", resp.UserName)
	assert.Nil(t, resp.CompletedAt)
	assert.Equal(t, 0, resp.Score)
	assert.Equal(t, 8, resp.TotalPoints)
	assert.Equal(t, 10, resp.TimeLimit)

	published := f.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventSessionStarted, published[0].Type)
}

func TestStart_EmptyUserName(t *testing.T) {
	f := newSessionServiceFixture()

	_, err := f.service.Start(context.Background(), 1, &StartSessionRequest{})
	assert.True(t, IsValidation(err))
	assert.Empty(t, f.publisher.GetPublishedEvents())
}

func TestStart_QuizNotFound(t *testing.T) {
	f := newSessionServiceFixture()

	f.repo.quiz.On("GetByIDWithQuestions", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.service.Start(context.Background(), 99, &StartSessionRequest{UserName: "alice"})
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestStart_DeadlineFromTimeLimit(t *testing.T) {
	f := newSessionServiceFixture()

	quiz := scoringQuiz()
	f.repo.quiz.On("GetByIDWithQuestions", mock.Anything, uint(1)).Return(quiz, nil)

	var created *models.QuizSession
	f.repo.session.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.QuizSession)
	}).Return(nil)

	_, err := f.service.Start(context.Background(), 1, &StartSessionRequest{UserName: "alice"})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, 10*time.Minute, created.EndsAt.Sub(created.StartedAt))
}

func TestSubmit_InvalidatesCacheAndPublishes(t *testing.T) {
	f := newSessionServiceFixture()

	completedAt := time.Now()
	result := &SubmitSessionResponse{
		SessionID:   "sess-1",
		TotalScore:  5,
		TotalPoints: 8,
		CompletedAt: completedAt,
	}
	req := &SubmitSessionRequest{
		SessionID: "sess-1",
		Answers:   []AnswerInput{{QuestionID: 10, Answer: "Paris"}},
	}

	f.scoring.On("Score", mock.Anything, uint(1), req).Return(result, nil)
	f.analytics.On("InvalidateCache", mock.Anything, uint(1)).Return(nil)
	f.repo.quiz.On("GetByID", mock.Anything, uint(1)).Return(scoringQuiz(), nil)

	session := activeSession(time.Minute)
	session.Score = 5
	session.CompletedAt = &completedAt
	f.repo.session.On("GetBySessionID", mock.Anything, "sess-1").Return(session, nil)

	resp, err := f.service.Submit(context.Background(), 1, req)
	require.NoError(t, err)
	assert.Equal(t, result, resp)

	f.analytics.AssertExpectations(t)

	published := f.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventSessionSubmitted, published[0].Type)
}

func TestSubmit_ScoringFailurePropagates(t *testing.T) {
	f := newSessionServiceFixture()

	req := &SubmitSessionRequest{
		SessionID: "sess-1",
		Answers:   []AnswerInput{{QuestionID: 10, Answer: "Paris"}},
	}
	f.scoring.On("Score", mock.Anything, uint(1), req).Return(nil, ErrSessionExpired)

	_, err := f.service.Submit(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, f.publisher.GetPublishedEvents())
}

func TestResults_Success(t *testing.T) {
	f := newSessionServiceFixture()

	completedAt := time.Now()
	session := activeSession(time.Minute)
	session.Score = 5
	session.CompletedAt = &completedAt

	f.repo.session.On("GetBySessionID", mock.Anything, "sess-1").Return(session, nil)
	f.repo.quiz.On("GetByIDWithQuestions", mock.Anything, uint(1)).Return(scoringQuiz(), nil)
	f.repo.answer.On("GetBySession", mock.Anything, "sess-1").Return([]*models.Answer{
		{SessionID: "sess-1", QuizID: 1, QuestionID: 10, Answer: "Paris", IsCorrect: true, PointsEarned: 5},
	}, nil)

	resp, err := f.service.Results(context.Background(), 1, "sess-1")
	require.NoError(t, err)

	assert.Equal(t, "Geography", resp.QuizTitle)
	assert.Equal(t, 5, resp.Score)
	require.Len(t, resp.Answers, 1)
	assert.Equal(t, "Capital of France?", resp.Answers[0].QuestionText)
	assert.Equal(t, "Paris", resp.Answers[0].CorrectAnswer)
	assert.Equal(t, 5, resp.Answers[0].Points)
}

func TestResults_NotCompleted(t *testing.T) {
	f := newSessionServiceFixture()

	f.repo.session.On("GetBySessionID", mock.Anything, "sess-1").Return(activeSession(time.Minute), nil)

	_, err := f.service.Results(context.Background(), 1, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotCompleted)
}

func TestResults_WrongQuiz(t *testing.T) {
	f := newSessionServiceFixture()

	session := activeSession(time.Minute)
	session.QuizID = 7
	f.repo.session.On("GetBySessionID", mock.Anything, "sess-1").Return(session, nil)

	_, err := f.service.Results(context.Background(), 2, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
