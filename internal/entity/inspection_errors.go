package entity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNegativeTotalItems = errors.New("total items must not be negative")
	ErrAlreadyPaused      = errors.New("session is already paused")
	ErrNotPaused          = errors.New("session is not paused")
	ErrSessionNotActive   = errors.New("session is not active")
)

// IncompleteSessionError is returned when completion is attempted before
// every manifest item has a recorded outcome.
type IncompleteSessionError struct {
	Remaining int
}

func (e *IncompleteSessionError) Error() string {
	return fmt.Sprintf("session is incomplete: %d item(s) remaining", e.Remaining)
}

// DuplicateOutcomeError is returned when a second outcome is submitted for
// the same target within one session.
type DuplicateOutcomeError struct {
	TargetKey string
}

func (e *DuplicateOutcomeError) Error() string {
	return fmt.Sprintf("outcome already recorded for target %s", e.TargetKey)
}

// ActiveSessionExistsError is returned when a session start is attempted
// while the unit already has an active session.
type ActiveSessionExistsError struct {
	UnitId uuid.UUID
}

func (e *ActiveSessionExistsError) Error() string {
	return fmt.Sprintf("unit %s already has an active inspection session", e.UnitId)
}

// InvalidTargetError is returned when an item target or an outcome record
// is constructed with fields that contradict the target kind.
type InvalidTargetError struct {
	Reason string
}

func (e *InvalidTargetError) Error() string {
	return "invalid item target: " + e.Reason
}
