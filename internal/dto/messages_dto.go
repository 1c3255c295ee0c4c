package dto

import (
	"time"

	"github.com/google/uuid"
)

// RaiseIssueMessage travels over the in-process issue bus from the
// inspection services to the issue consumer.
type RaiseIssueMessage struct {
	SessionId  uuid.UUID `json:"session_id"`
	StationId  uuid.UUID `json:"station_id"`
	TargetKey  string    `json:"target_key"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Severity   string    `json:"severity"`
	Notes      string    `json:"notes,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}
