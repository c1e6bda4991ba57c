package services

import (
	"fmt"
	"math"

	"github.com/quizforge/quiz-service/internal/models"
)

// scoreBoundaries defines the percentage histogram. Buckets are half-open
// [min, max) except the last, which includes 100.
var scoreBoundaries = []float64{0, 20, 40, 60, 80, 100}

// BuildQuizReport computes the analytics report for a quiz from its
// completed sessions and recorded answers. Pure; no side effects.
func BuildQuizReport(quiz *models.Quiz, sessions []*models.QuizSession, answers []*models.Answer) *models.QuizAnalytics {
	report := &models.QuizAnalytics{
		QuizID:             quiz.ID,
		Title:              quiz.Title,
		TotalAttempts:      len(sessions),
		QuestionStatistics: buildQuestionStatistics(quiz.Questions, answers),
		ScoreDistribution:  buildScoreDistribution(sessions),
		CompletionTimes:    buildSessionResults(sessions),
	}

	if len(sessions) > 0 {
		scoreSum := 0
		timeSum := 0
		for _, session := range sessions {
			scoreSum += session.Score
			timeSum += session.CompletionTime()
		}
		n := float64(len(sessions))
		report.AverageScore = math.Round(float64(scoreSum)/n*10) / 10
		report.AverageCompletionTime = int(math.Round(float64(timeSum) / n))
	}

	return report
}

func buildQuestionStatistics(questions []models.Question, answers []*models.Answer) []models.QuestionStatistic {
	byQuestion := make(map[uint][]*models.Answer)
	for _, answer := range answers {
		byQuestion[answer.QuestionID] = append(byQuestion[answer.QuestionID], answer)
	}

	stats := make([]models.QuestionStatistic, 0, len(questions))
	for _, question := range questions {
		questionAnswers := byQuestion[question.ID]
		correct := 0
		for _, answer := range questionAnswers {
			if answer.IsCorrect {
				correct++
			}
		}

		accuracy := 0.0
		if len(questionAnswers) > 0 {
			accuracy = float64(correct) / float64(len(questionAnswers)) * 100
		}

		stats = append(stats, models.QuestionStatistic{
			QuestionID:     question.ID,
			Text:           question.Text,
			TotalAttempts:  len(questionAnswers),
			CorrectAnswers: correct,
			Accuracy:       accuracy,
		})
	}
	return stats
}

func buildScoreDistribution(sessions []*models.QuizSession) []models.ScoreBucket {
	buckets := make([]models.ScoreBucket, len(scoreBoundaries)-1)
	for i := range buckets {
		buckets[i].Range = fmt.Sprintf("%g-%g%%", scoreBoundaries[i], scoreBoundaries[i+1])
	}

	for _, session := range sessions {
		percentage := rawPercentage(session)
		for i := range buckets {
			min, max := scoreBoundaries[i], scoreBoundaries[i+1]
			last := i == len(buckets)-1
			if percentage >= min && (percentage < max || (last && percentage <= max)) {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

func buildSessionResults(sessions []*models.QuizSession) []models.SessionResult {
	results := make([]models.SessionResult, 0, len(sessions))
	for _, session := range sessions {
		results = append(results, models.SessionResult{
			SessionID:       session.SessionID,
			UserName:        session.UserName,
			Score:           session.Score,
			TotalPoints:     session.TotalPoints,
			ScorePercentage: session.ScorePercentage(),
			CompletionTime:  session.CompletionTime(),
		})
	}
	return results
}

func rawPercentage(session *models.QuizSession) float64 {
	if session.TotalPoints <= 0 {
		return 0
	}
	return float64(session.Score) / float64(session.TotalPoints) * 100
}
