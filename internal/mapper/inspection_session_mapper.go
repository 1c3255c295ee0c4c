package mapper

import (
	"fmt"
	"time"

	"firecheck-be/internal/entity"
	"firecheck-be/internal/model"
)

// InspectionSessionMapper converts between the sealed session variants and
// the status-discriminated row. Policies are injected so rehydrated active
// sessions carry the configured thresholds, not whatever was compiled in
// when the row was written.
type InspectionSessionMapper struct {
	auditPolicy      entity.Policy
	shiftCheckPolicy entity.Policy
}

func NewInspectionSessionMapper(auditPolicy, shiftCheckPolicy entity.Policy) *InspectionSessionMapper {
	return &InspectionSessionMapper{
		auditPolicy:      auditPolicy,
		shiftCheckPolicy: shiftCheckPolicy,
	}
}

func (m *InspectionSessionMapper) policyFor(kind string) entity.Policy {
	if entity.InspectionKind(kind) == entity.KindShiftCheck {
		return m.shiftCheckPolicy
	}
	return m.auditPolicy
}

func (m *InspectionSessionMapper) ToModel(s entity.InspectionSession) (*model.InspectionSession, error) {
	row := &model.InspectionSession{
		Id:              s.Id(),
		UnitId:          s.UnitId(),
		InspectorId:     s.InspectorId(),
		StationId:       s.StationId(),
		Kind:            string(s.Kind()),
		TotalItems:      s.Progress().TotalItems(),
		CompletedCount:  s.Progress().CompletedCount(),
		IssueCount:      s.Progress().IssueCount(),
		UnexpectedCount: s.Progress().UnexpectedCount(),
		StartedAt:       s.StartedAt(),
	}

	switch v := s.(type) {
	case entity.ActiveSession:
		row.Status = model.SessionStatusActive
		row.LastActivityAt = v.LastActivityAt()
		row.PausedAt = v.PausedAt()
	case entity.CompletedSession:
		row.Status = model.SessionStatusCompleted
		completedAt := v.CompletedAt()
		row.CompletedAt = &completedAt
		row.LastActivityAt = completedAt
	case entity.AbandonedSession:
		row.Status = model.SessionStatusAbandoned
		abandonedAt := v.AbandonedAt()
		row.AbandonedAt = &abandonedAt
		row.LastActivityAt = abandonedAt
		row.AbandonReason = v.Reason()
	default:
		return nil, fmt.Errorf("unknown session variant %T", s)
	}

	return row, nil
}

func (m *InspectionSessionMapper) ToEntity(row *model.InspectionSession) (entity.InspectionSession, error) {
	if row == nil {
		return nil, nil
	}

	progress := entity.RehydrateProgress(row.TotalItems, row.CompletedCount, row.IssueCount, row.UnexpectedCount)
	kind := entity.InspectionKind(row.Kind)

	switch row.Status {
	case model.SessionStatusActive:
		return entity.RehydrateActiveSession(
			row.Id, row.UnitId, row.InspectorId, row.StationId,
			m.policyFor(row.Kind), row.StartedAt, progress,
			row.LastActivityAt, copyTime(row.PausedAt),
		), nil
	case model.SessionStatusCompleted:
		if row.CompletedAt == nil {
			return nil, fmt.Errorf("completed session %s has no completed_at", row.Id)
		}
		return entity.RehydrateCompletedSession(
			row.Id, row.UnitId, row.InspectorId, row.StationId,
			kind, row.StartedAt, progress, *row.CompletedAt,
		)
	case model.SessionStatusAbandoned:
		if row.AbandonedAt == nil {
			return nil, fmt.Errorf("abandoned session %s has no abandoned_at", row.Id)
		}
		return entity.RehydrateAbandonedSession(
			row.Id, row.UnitId, row.InspectorId, row.StationId,
			kind, row.StartedAt, progress, *row.AbandonedAt, row.AbandonReason,
		), nil
	default:
		return nil, fmt.Errorf("unknown session status %q for %s", row.Status, row.Id)
	}
}

func (m *InspectionSessionMapper) ToActiveEntity(row *model.InspectionSession) (*entity.ActiveSession, error) {
	s, err := m.ToEntity(row)
	if err != nil || s == nil {
		return nil, err
	}
	active, ok := s.(entity.ActiveSession)
	if !ok {
		return nil, nil
	}
	return &active, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
