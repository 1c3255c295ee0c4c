package entity

import (
	"time"

	"github.com/google/uuid"
)

// CompartmentLock marks one inspector as the active editor of a compartment
// within one session. Advisory and process-local; it never survives a
// restart.
type CompartmentLock struct {
	SessionId     uuid.UUID
	SubLocationId uuid.UUID
	HolderId      uuid.UUID
	AcquiredAt    time.Time
}
