package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quizforge/quiz-service/internal/models"
)

func reportQuiz() *models.Quiz {
	return &models.Quiz{
		ID:    1,
		Title: "Geography",
		Questions: []models.Question{
			{ID: 10, QuizID: 1, Text: "Capital of France?", Points: 5},
			{ID: 11, QuizID: 1, Text: "Capital of Spain?", Points: 5},
		},
	}
}

func completedSession(sessionID string, score, totalPoints int, duration time.Duration) *models.QuizSession {
	startedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	completedAt := startedAt.Add(duration)
	return &models.QuizSession{
		SessionID:   sessionID,
		QuizID:      1,
		UserName:    "player",
		StartedAt:   startedAt,
		CompletedAt: &completedAt,
		Score:       score,
		TotalPoints: totalPoints,
	}
}

func TestBuildQuizReport_NoSessions(t *testing.T) {
	report := BuildQuizReport(reportQuiz(), nil, nil)

	assert.Equal(t, uint(1), report.QuizID)
	assert.Equal(t, "Geography", report.Title)
	assert.Equal(t, 0, report.TotalAttempts)
	assert.Equal(t, 0.0, report.AverageScore)
	assert.Equal(t, 0, report.AverageCompletionTime)

	assert.Len(t, report.QuestionStatistics, 2)
	for _, stat := range report.QuestionStatistics {
		assert.Equal(t, 0, stat.TotalAttempts)
		assert.Equal(t, 0.0, stat.Accuracy)
	}

	assert.Len(t, report.ScoreDistribution, 5)
	for _, bucket := range report.ScoreDistribution {
		assert.Equal(t, 0, bucket.Count)
	}

	assert.Empty(t, report.CompletionTimes)
}

func TestBuildQuizReport_AveragesAndDistribution(t *testing.T) {
	sessions := []*models.QuizSession{
		completedSession("s1", 10, 10, 90*time.Second),
		completedSession("s2", 0, 10, 30*time.Second),
	}

	report := BuildQuizReport(reportQuiz(), sessions, nil)

	assert.Equal(t, 2, report.TotalAttempts)
	assert.Equal(t, 5.0, report.AverageScore)
	assert.Equal(t, 60, report.AverageCompletionTime)

	counts := map[string]int{}
	for _, bucket := range report.ScoreDistribution {
		counts[bucket.Range] = bucket.Count
	}
	assert.Equal(t, 1, counts["0-20%"])
	assert.Equal(t, 1, counts["80-100%"])
}

func TestBuildQuizReport_BucketBoundaries(t *testing.T) {
	sessions := []*models.QuizSession{
		completedSession("s1", 2, 10, time.Minute),  // exactly 20%
		completedSession("s2", 8, 10, time.Minute),  // exactly 80%
		completedSession("s3", 10, 10, time.Minute), // exactly 100%
		completedSession("s4", 0, 0, time.Minute),   // zero total points
	}

	report := BuildQuizReport(reportQuiz(), sessions, nil)

	counts := map[string]int{}
	total := 0
	for _, bucket := range report.ScoreDistribution {
		counts[bucket.Range] = bucket.Count
		total += bucket.Count
	}

	// Boundary values land in exactly one bucket
	assert.Equal(t, report.TotalAttempts, total)
	assert.Equal(t, 1, counts["0-20%"])
	assert.Equal(t, 1, counts["20-40%"])
	assert.Equal(t, 2, counts["80-100%"])
}

func TestBuildQuizReport_QuestionStatistics(t *testing.T) {
	answers := []*models.Answer{
		{SessionID: "s1", QuizID: 1, QuestionID: 10, IsCorrect: true},
		{SessionID: "s2", QuizID: 1, QuestionID: 10, IsCorrect: false},
		{SessionID: "s1", QuizID: 1, QuestionID: 11, IsCorrect: true},
	}

	report := BuildQuizReport(reportQuiz(), nil, answers)

	assert.Len(t, report.QuestionStatistics, 2)

	first := report.QuestionStatistics[0]
	assert.Equal(t, uint(10), first.QuestionID)
	assert.Equal(t, 2, first.TotalAttempts)
	assert.Equal(t, 1, first.CorrectAnswers)
	assert.Equal(t, 50.0, first.Accuracy)

	second := report.QuestionStatistics[1]
	assert.Equal(t, uint(11), second.QuestionID)
	assert.Equal(t, 100.0, second.Accuracy)
}

func TestBuildQuizReport_CompletionRows(t *testing.T) {
	session := completedSession("s1", 2, 3, 95*time.Second)
	report := BuildQuizReport(reportQuiz(), []*models.QuizSession{session}, nil)

	assert.Len(t, report.CompletionTimes, 1)
	row := report.CompletionTimes[0]
	assert.Equal(t, "s1", row.SessionID)
	assert.Equal(t, 95, row.CompletionTime)
	assert.Equal(t, 66.7, row.ScorePercentage)
}

func TestBuildQuizReport_MissingCompletedAt(t *testing.T) {
	session := completedSession("s1", 5, 10, time.Minute)
	session.CompletedAt = nil

	report := BuildQuizReport(reportQuiz(), []*models.QuizSession{session}, nil)

	assert.Equal(t, 1, report.TotalAttempts)
	assert.Equal(t, 0, report.AverageCompletionTime)
	assert.Equal(t, 0, report.CompletionTimes[0].CompletionTime)
}
