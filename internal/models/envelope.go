package models

import (
	"time"

	"github.com/google/uuid"
)

// Envelope is the uniform response returned for every processed question.
// It is the only contract presentation layers may depend on. Text is never
// empty; Chart and Data are nil for scalar or failed answers.
type Envelope struct {
	ResponseID  string    `json:"response_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Intent      Intent    `json:"intent"`
	Text        string    `json:"text"`
	Chart       *Chart    `json:"chart"`
	Data        any       `json:"data"`
}

// NewEnvelope stamps a response with a fresh ID and UTC timestamp.
func NewEnvelope(intent Intent, text string, chart *Chart, data any) Envelope {
	return Envelope{
		ResponseID:  uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Intent:      intent,
		Text:        text,
		Chart:       chart,
		Data:        data,
	}
}
