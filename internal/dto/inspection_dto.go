package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartSessionRequest struct {
	UnitId uuid.UUID `json:"unit_id" validate:"required"`
}

type SessionResponse struct {
	Id          uuid.UUID        `json:"id"`
	UnitId      uuid.UUID        `json:"unit_id"`
	InspectorId uuid.UUID        `json:"inspector_id"`
	StationId   uuid.UUID        `json:"station_id"`
	Kind        string           `json:"kind"`
	Status      string           `json:"status"`
	Progress    ProgressResponse `json:"progress"`
	StartedAt   time.Time        `json:"started_at"`
	PausedAt    *time.Time       `json:"paused_at,omitempty"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	AbandonedAt *time.Time       `json:"abandoned_at,omitempty"`
	Reason      string           `json:"reason,omitempty"`
	Resumed     bool             `json:"resumed,omitempty"`
}

type ProgressResponse struct {
	TotalItems      int  `json:"total_items"`
	CompletedCount  int  `json:"completed_count"`
	IssueCount      int  `json:"issue_count"`
	UnexpectedCount int  `json:"unexpected_count"`
	Percentage      int  `json:"percentage"`
	IsComplete      bool `json:"is_complete"`
}

// RecordOutcomeRequest carries one per-item finding. Exactly one of
// equipment_id and consumable_id must be set; the field groups below are
// legal only for the matching target kind.
type RecordOutcomeRequest struct {
	EquipmentId  *uuid.UUID `json:"equipment_id" validate:"required_without=ConsumableId,excluded_with=ConsumableId"`
	ConsumableId *uuid.UUID `json:"consumable_id" validate:"required_without=EquipmentId,excluded_with=EquipmentId"`
	Status       string     `json:"status" validate:"required"`
	Condition    string     `json:"condition,omitempty"`
	TestResult   string     `json:"test_result,omitempty"`
	Expiry       string     `json:"expiry,omitempty"`
	ExpectedQty  *int       `json:"expected_qty,omitempty"`
	CountedQty   *int       `json:"counted_qty,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Unexpected   bool       `json:"unexpected,omitempty"`
}

type OutcomeResponse struct {
	TargetKey   string           `json:"target_key"`
	Status      string           `json:"status"`
	IssueRaised bool             `json:"issue_raised"`
	Progress    ProgressResponse `json:"progress"`
}

type OutcomeListItemResponse struct {
	TargetKey  string    `json:"target_key"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

type AbandonSessionRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type ListSessionsRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=active completed abandoned"`
	UnitId string `query:"unit_id" validate:"omitempty,uuid"`
	Page   int    `query:"page" validate:"omitempty,min=1"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
}
