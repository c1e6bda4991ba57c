package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of session events
type EventType string

const (
	EventSessionStarted   EventType = "session.started"
	EventSessionSubmitted EventType = "session.submitted"
)

// SessionEvent is the base event structure for all session events
type SessionEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// SessionStartedEvent is the payload for session.started events
type SessionStartedEvent struct {
	SessionID string    `json:"session_id"`
	QuizID    uint      `json:"quiz_id"`
	QuizTitle string    `json:"quiz_title"`
	UserName  string    `json:"user_name"`
	StartedAt time.Time `json:"started_at"`
	EndsAt    time.Time `json:"ends_at"`
	TimeLimit int       `json:"time_limit"` // minutes
}

// SessionSubmittedEvent is the payload for session.submitted events
type SessionSubmittedEvent struct {
	SessionID   string    `json:"session_id"`
	QuizID      uint      `json:"quiz_id"`
	QuizTitle   string    `json:"quiz_title"`
	UserName    string    `json:"user_name"`
	SubmittedAt time.Time `json:"submitted_at"`
	Score       int       `json:"score"`
	TotalPoints int       `json:"total_points"`
	Percentage  float64   `json:"percentage"`
}

func NewSessionStartedEvent(sessionID string, quizID uint, quizTitle, userName string, startedAt, endsAt time.Time, timeLimit int) *SessionEvent {
	return &SessionEvent{
		ID:        generateEventID(),
		Type:      EventSessionStarted,
		Timestamp: time.Now(),
		Source:    "quiz-service",
		Version:   "1.0",
		Data: SessionStartedEvent{
			SessionID: sessionID,
			QuizID:    quizID,
			QuizTitle: quizTitle,
			UserName:  userName,
			StartedAt: startedAt,
			EndsAt:    endsAt,
			TimeLimit: timeLimit,
		},
	}
}

func NewSessionSubmittedEvent(sessionID string, quizID uint, quizTitle, userName string, submittedAt time.Time, score, totalPoints int, percentage float64) *SessionEvent {
	return &SessionEvent{
		ID:        generateEventID(),
		Type:      EventSessionSubmitted,
		Timestamp: time.Now(),
		Source:    "quiz-service",
		Version:   "1.0",
		Data: SessionSubmittedEvent{
			SessionID:   sessionID,
			QuizID:      quizID,
			QuizTitle:   quizTitle,
			UserName:    userName,
			SubmittedAt: submittedAt,
			Score:       score,
			TotalPoints: totalPoints,
			Percentage:  percentage,
		},
	}
}

func generateEventID() string {
	return uuid.NewString()
}
