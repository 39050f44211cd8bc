package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"skillpath-backend/internal/curriculum"
)

const (
	PathStatusPending = "pending"
	PathStatusReady   = "ready"
	PathStatusFailed  = "failed"
)

// LearnerProfile is what the learner tells us before a path is generated.
// Field names match the web form.
type LearnerProfile struct {
	Objective       string   `json:"objective" validate:"min=5,max=120"`
	Area            string   `json:"area" validate:"area"`
	Level           string   `json:"level" validate:"level"`
	WeeklyTime      float64  `json:"weeklyTime" validate:"min=1,max=20"`
	DeadlineWeeks   *float64 `json:"deadlineWeeks,omitempty" validate:"omitempty,min=2,max=26"`
	PreferredFormat []string `json:"preferredFormat,omitempty" validate:"omitempty,dive,format"`
}

type LearningPath struct {
	ID            uuid.UUID       `json:"id"`
	SessionID     uuid.UUID       `json:"session_id"`
	Objective     string          `json:"objective"`
	Area          string          `json:"area"`
	Level         string          `json:"level"`
	ProfileJSON   json.RawMessage `json:"profile"`
	Markdown      *string         `json:"markdown,omitempty"`
	Status        string          `json:"status"` // "pending" | "ready" | "failed"
	Provider      string          `json:"provider"`
	Model         string          `json:"model"`
	QuizCount     int             `json:"quiz_count"`
	QuestionCount int             `json:"question_count"`
	ErrorMessage  *string         `json:"error_message"`
	CreatedAt     time.Time       `json:"created_at"`
	GeneratedAt   *time.Time      `json:"generated_at"`
}

// GeneratedPlan is the body of a successful synchronous generation.
type GeneratedPlan struct {
	Markdown    string `json:"markdown"`
	GeneratedAt string `json:"generatedAt"`
}

type GeneratePathResponse struct {
	JobID  uuid.UUID `json:"job_id"`
	PathID uuid.UUID `json:"path_id"`
}

// DocumentSection is one prose fragment and the quiz displayed after it.
// QuizIndex addresses the quiz in the /quizzes/{index} routes.
type DocumentSection struct {
	Prose     string                `json:"prose"`
	Quiz      *curriculum.TopicQuiz `json:"quiz,omitempty"`
	QuizIndex *int                  `json:"quiz_index,omitempty"`
}

type PathDocument struct {
	PathID        uuid.UUID         `json:"path_id"`
	Sections      []DocumentSection `json:"sections"`
	QuizCount     int               `json:"quiz_count"`
	QuestionCount int               `json:"question_count"`
}
