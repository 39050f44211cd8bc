package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type QuizAttempt struct {
	ID            uuid.UUID       `json:"id"`
	PathID        uuid.UUID       `json:"path_id"`
	SessionID     uuid.UUID       `json:"session_id"`
	QuizIndex     int             `json:"quiz_index"`
	TopicTitle    string          `json:"topic_title"`
	AnswersJSON   json.RawMessage `json:"answers"`
	CorrectCount  int             `json:"correct_count"`
	QuestionCount int             `json:"question_count"`
	ScorePercent  float64         `json:"score_percent"`
	Band          string          `json:"band"`
	CreatedAt     time.Time       `json:"created_at"`
}

type SelectAnswerRequest struct {
	Question int `json:"question"`
	Option   int `json:"option"`
}
