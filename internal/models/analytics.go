package models

// QuizAnalytics is the derived analytics report for one quiz. It is never
// persisted; callers may cache it freely since building it has no side
// effects.
type QuizAnalytics struct {
	QuizID                uint                `json:"quiz_id"`
	Title                 string              `json:"title"`
	TotalAttempts         int                 `json:"total_attempts"`
	AverageScore          float64             `json:"average_score"`
	AverageCompletionTime int                 `json:"average_completion_time"`
	QuestionStatistics    []QuestionStatistic `json:"question_statistics"`
	ScoreDistribution     []ScoreBucket       `json:"score_distribution"`
	CompletionTimes       []SessionResult     `json:"completion_times"`
}

type QuestionStatistic struct {
	QuestionID     uint    `json:"question_id"`
	Text           string  `json:"text"`
	TotalAttempts  int     `json:"total_attempts"`
	CorrectAnswers int     `json:"correct_answers"`
	Accuracy       float64 `json:"accuracy"`
}

type ScoreBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// SessionResult is one per-session row of the analytics report.
type SessionResult struct {
	SessionID       string  `json:"session_id"`
	UserName        string  `json:"user_name"`
	Score           int     `json:"score"`
	TotalPoints     int     `json:"total_points"`
	ScorePercentage float64 `json:"score_percentage"`
	CompletionTime  int     `json:"completion_time"`
}
