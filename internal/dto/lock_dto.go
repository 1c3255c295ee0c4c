package dto

import "github.com/google/uuid"

type AcquireLockRequest struct {
	SessionId     uuid.UUID `json:"session_id" validate:"required"`
	SubLocationId uuid.UUID `json:"sub_location_id" validate:"required"`
}

type AcquireLockResponse struct {
	Acquired   bool       `json:"acquired"`
	HolderId   *uuid.UUID `json:"holder_id,omitempty"`
	HolderName string     `json:"holder_name,omitempty"`
}

type ReleaseLockRequest struct {
	SessionId     uuid.UUID `json:"session_id" validate:"required"`
	SubLocationId uuid.UUID `json:"sub_location_id" validate:"required"`
}

type TakeOverLockRequest struct {
	SessionId     uuid.UUID `json:"session_id" validate:"required"`
	SubLocationId uuid.UUID `json:"sub_location_id" validate:"required"`
}

type TakeOverLockResponse struct {
	PreviousHolderId *uuid.UUID `json:"previous_holder_id,omitempty"`
}

type LockStateResponse struct {
	SubLocationId uuid.UUID  `json:"sub_location_id"`
	HolderId      *uuid.UUID `json:"holder_id,omitempty"`
	HolderName    string     `json:"holder_name,omitempty"`
}
