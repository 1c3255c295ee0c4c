package model

import (
	"time"

	"github.com/google/uuid"
)

type IssueTicket struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StationId  uuid.UUID `gorm:"type:uuid;not null;index"`
	SessionId  uuid.UUID `gorm:"type:uuid;not null;index"`
	TargetKey  string    `gorm:"type:varchar(64);not null"`
	Title      string    `gorm:"type:text;not null"`
	Category   string    `gorm:"type:varchar(32);not null"`
	Severity   string    `gorm:"type:varchar(16);not null"`
	Notes      string    `gorm:"type:text"`
	Status     string    `gorm:"type:varchar(16);not null;default:'open'"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	ResolvedAt *time.Time
}

func (IssueTicket) TableName() string {
	return "issue_tickets"
}
