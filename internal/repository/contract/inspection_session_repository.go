package contract

import (
	"context"

	"firecheck-be/internal/entity"
	"firecheck-be/internal/repository/specification"

	"github.com/google/uuid"
)

// InspectionSessionRepository persists all three session variants behind a
// status-discriminated row. FindOne/FindAll rehydrate whichever variant the
// row currently holds.
type InspectionSessionRepository interface {
	Create(ctx context.Context, session entity.InspectionSession) error
	Update(ctx context.Context, session entity.InspectionSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (entity.InspectionSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]entity.InspectionSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindActiveByUnit backs the one-active-session-per-unit rule.
	FindActiveByUnit(ctx context.Context, unitId uuid.UUID, kind entity.InspectionKind) (*entity.ActiveSession, error)
}

// OutcomeRepository persists per-item findings. HasOutcome backs the
// duplicate-submission rule; a unique (session_id, target_key) index backs
// it again at the database.
type OutcomeRepository interface {
	Create(ctx context.Context, sessionId uuid.UUID, outcome entity.OutcomeRecord) error
	HasOutcome(ctx context.Context, sessionId uuid.UUID, targetKey string) (bool, error)
	FindBySession(ctx context.Context, sessionId uuid.UUID) ([]entity.OutcomeRecord, error)
	CountBySession(ctx context.Context, sessionId uuid.UUID) (int64, error)
}
