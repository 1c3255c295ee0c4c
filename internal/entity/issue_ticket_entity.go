package entity

import (
	"time"

	"github.com/google/uuid"
)

// IssueTicket is the persisted follow-up work item created by the issue
// consumer whenever an outcome requires one. The engine only supplies the
// classification; rendering and resolution workflow live outside this core.
type IssueTicket struct {
	Id         uuid.UUID
	StationId  uuid.UUID
	SessionId  uuid.UUID
	TargetKey  string
	Title      string
	Category   IssueCategory
	Severity   IssueSeverity
	Notes      string
	Status     string
	CreatedAt  time.Time
	ResolvedAt *time.Time
}
