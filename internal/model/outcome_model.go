package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OutcomeRecord stores one per-item finding. The unique (session_id,
// target_key) index backs the duplicate-submission rule at the database in
// addition to the service-level check.
type OutcomeRecord struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_outcomes_session_target"`
	TargetKey  string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_outcomes_session_target"`
	TargetKind string         `gorm:"type:varchar(16);not null"`
	TargetId   uuid.UUID      `gorm:"type:uuid;not null"`
	Status     string         `gorm:"type:varchar(32);not null"`
	Details    datatypes.JSON `gorm:"type:jsonb"`
	RecordedAt time.Time      `gorm:"not null"`
}

func (OutcomeRecord) TableName() string {
	return "outcome_records"
}
