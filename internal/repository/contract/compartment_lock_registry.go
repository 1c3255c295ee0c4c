package contract

import (
	"firecheck-be/internal/entity"

	"github.com/google/uuid"
)

// CompartmentLockRegistry grants one active editor per (session,
// sub-location) pair. Acquire and TakeOver report their outcome by return
// value: contention is routine, not an error.
type CompartmentLockRegistry interface {
	// Acquire succeeds when the slot is free or already held by userId.
	// It fails fast when another user holds it; it never waits.
	Acquire(sessionId, subLocationId, userId uuid.UUID) bool

	// Release is a no-op unless userId is the current holder. Two clients
	// racing to release on navigation-away is expected.
	Release(sessionId, subLocationId, userId uuid.UUID)

	// Get returns the current lock, or nil when the slot is free.
	Get(sessionId, subLocationId uuid.UUID) *entity.CompartmentLock

	// TakeOver unconditionally grants the slot to newUserId and returns
	// the displaced holder, or nil when the slot was free.
	TakeOver(sessionId, subLocationId, newUserId uuid.UUID) *uuid.UUID

	// ListForSession snapshots subLocationId -> holderId for one session.
	ListForSession(sessionId uuid.UUID) map[uuid.UUID]uuid.UUID

	// ReleaseAllForUser drops every lock the user holds across all
	// sessions, invoked when their connection ends.
	ReleaseAllForUser(userId uuid.UUID)

	// ClearForSession drops every lock of one session, invoked on
	// completion or abandonment.
	ClearForSession(sessionId uuid.UUID)
}
