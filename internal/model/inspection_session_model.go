package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusAbandoned = "abandoned"
)

// InspectionSession is the status-discriminated row behind the sealed
// session variants. The mapper enforces which nullable columns must be set
// for which status.
type InspectionSession struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UnitId          uuid.UUID  `gorm:"type:uuid;not null;index:idx_sessions_unit_status"`
	InspectorId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	StationId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Kind            string     `gorm:"type:varchar(32);not null"`
	Status          string     `gorm:"type:varchar(16);not null;index:idx_sessions_unit_status"`
	TotalItems      int        `gorm:"not null"`
	CompletedCount  int        `gorm:"not null"`
	IssueCount      int        `gorm:"not null"`
	UnexpectedCount int        `gorm:"not null"`
	StartedAt       time.Time  `gorm:"not null"`
	LastActivityAt  time.Time  `gorm:"not null;index"`
	PausedAt        *time.Time
	CompletedAt     *time.Time
	AbandonedAt     *time.Time
	AbandonReason   string `gorm:"type:text"`
}

func (InspectionSession) TableName() string {
	return "inspection_sessions"
}
