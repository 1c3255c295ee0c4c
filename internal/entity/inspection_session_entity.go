package entity

import (
	"time"

	"github.com/google/uuid"
)

// InspectionSession is the sealed session hierarchy. Exactly three variants
// exist: ActiveSession, CompletedSession and AbandonedSession. Only the
// active variant exposes transitions; the terminal variants have none, which
// makes reverting a completed or abandoned session unrepresentable.
type InspectionSession interface {
	isInspectionSession()

	Id() uuid.UUID
	UnitId() uuid.UUID
	InspectorId() uuid.UUID
	StationId() uuid.UUID
	Kind() InspectionKind
	StartedAt() time.Time
	Progress() Progress
}

// ActiveSession is an inspection in flight. All transitions are pure: they
// return a new value and leave the receiver untouched, so concurrent readers
// need no locking. Serializing writes to the persisted aggregate is the
// persistence layer's concern.
type ActiveSession struct {
	id             uuid.UUID
	unitId         uuid.UUID
	inspectorId    uuid.UUID
	stationId      uuid.UUID
	policy         Policy
	startedAt      time.Time
	progress       Progress
	lastActivityAt time.Time
	pausedAt       *time.Time
}

func (ActiveSession) isInspectionSession() {}

// StartSession constructs the initial active state with all counters zero
// and lastActivityAt equal to startedAt.
func StartSession(id, unitId, inspectorId, stationId uuid.UUID, policy Policy, now time.Time, totalItems int) (ActiveSession, error) {
	progress, err := NewProgress(totalItems)
	if err != nil {
		return ActiveSession{}, err
	}
	return ActiveSession{
		id:             id,
		unitId:         unitId,
		inspectorId:    inspectorId,
		stationId:      stationId,
		policy:         policy,
		startedAt:      now,
		progress:       progress,
		lastActivityAt: now,
	}, nil
}

// RehydrateActiveSession rebuilds an active session from persistence.
func RehydrateActiveSession(id, unitId, inspectorId, stationId uuid.UUID, policy Policy, startedAt time.Time, progress Progress, lastActivityAt time.Time, pausedAt *time.Time) ActiveSession {
	return ActiveSession{
		id:             id,
		unitId:         unitId,
		inspectorId:    inspectorId,
		stationId:      stationId,
		policy:         policy,
		startedAt:      startedAt,
		progress:       progress,
		lastActivityAt: lastActivityAt,
		pausedAt:       pausedAt,
	}
}

func (s ActiveSession) Id() uuid.UUID             { return s.id }
func (s ActiveSession) UnitId() uuid.UUID         { return s.unitId }
func (s ActiveSession) InspectorId() uuid.UUID    { return s.inspectorId }
func (s ActiveSession) StationId() uuid.UUID      { return s.stationId }
func (s ActiveSession) Kind() InspectionKind      { return s.policy.Kind }
func (s ActiveSession) Policy() Policy            { return s.policy }
func (s ActiveSession) StartedAt() time.Time      { return s.startedAt }
func (s ActiveSession) Progress() Progress        { return s.progress }
func (s ActiveSession) LastActivityAt() time.Time { return s.lastActivityAt }

func (s ActiveSession) PausedAt() *time.Time {
	if s.pausedAt == nil {
		return nil
	}
	t := *s.pausedAt
	return &t
}

func (s ActiveSession) IsPaused() bool { return s.pausedAt != nil }

// RecordOutcome advances coverage by one item. Whether the outcome carries
// an issue is decided by the issue-derivation rule, not here.
func (s ActiveSession) RecordOutcome(hasIssue bool, now time.Time) ActiveSession {
	s.progress = s.progress.RecordItem(hasIssue)
	s.lastActivityAt = now
	return s
}

// RecordUnexpectedItem registers an item found outside the manifest. It
// never counts toward required coverage.
func (s ActiveSession) RecordUnexpectedItem(hasIssue bool, now time.Time) ActiveSession {
	s.progress = s.progress.RecordUnexpected(hasIssue)
	s.lastActivityAt = now
	return s
}

func (s ActiveSession) Pause(now time.Time) (ActiveSession, error) {
	if s.pausedAt != nil {
		return s, ErrAlreadyPaused
	}
	s.pausedAt = &now
	return s, nil
}

func (s ActiveSession) Resume(now time.Time) (ActiveSession, error) {
	if s.pausedAt == nil {
		return s, ErrNotPaused
	}
	s.pausedAt = nil
	s.lastActivityAt = now
	return s, nil
}

// Complete transitions to the terminal completed variant. It fails unless
// every manifest item has a recorded outcome.
func (s ActiveSession) Complete(now time.Time) (CompletedSession, error) {
	return newCompletedSession(s, now)
}

// Abandon always succeeds and preserves whatever partial progress exists.
func (s ActiveSession) Abandon(reason string, now time.Time) AbandonedSession {
	return AbandonedSession{
		id:          s.id,
		unitId:      s.unitId,
		inspectorId: s.inspectorId,
		stationId:   s.stationId,
		kind:        s.policy.Kind,
		startedAt:   s.startedAt,
		progress:    s.progress,
		abandonedAt: now,
		reason:      reason,
	}
}

// IsStale reports whether the session has idled past its policy threshold.
// A query only; the scheduled sweep performs the actual abandon.
func (s ActiveSession) IsStale(now time.Time) bool {
	return now.Sub(s.lastActivityAt) > s.policy.StaleAfter
}

// CompletedSession is terminal. It carries no transition methods and can
// only be constructed through ActiveSession.Complete or the persistence
// rehydrator, both of which demand full coverage.
type CompletedSession struct {
	id          uuid.UUID
	unitId      uuid.UUID
	inspectorId uuid.UUID
	stationId   uuid.UUID
	kind        InspectionKind
	startedAt   time.Time
	progress    Progress
	completedAt time.Time
}

func (CompletedSession) isInspectionSession() {}

func newCompletedSession(s ActiveSession, now time.Time) (CompletedSession, error) {
	if !s.progress.IsComplete() {
		return CompletedSession{}, &IncompleteSessionError{Remaining: s.progress.Remaining()}
	}
	if now.Before(s.startedAt) {
		now = s.startedAt
	}
	return CompletedSession{
		id:          s.id,
		unitId:      s.unitId,
		inspectorId: s.inspectorId,
		stationId:   s.stationId,
		kind:        s.policy.Kind,
		startedAt:   s.startedAt,
		progress:    s.progress,
		completedAt: now,
	}, nil
}

// RehydrateCompletedSession rebuilds a completed session from persistence.
// The full-coverage invariant is revalidated so a corrupted row cannot
// produce an illegal value.
func RehydrateCompletedSession(id, unitId, inspectorId, stationId uuid.UUID, kind InspectionKind, startedAt time.Time, progress Progress, completedAt time.Time) (CompletedSession, error) {
	if !progress.IsComplete() {
		return CompletedSession{}, &IncompleteSessionError{Remaining: progress.Remaining()}
	}
	return CompletedSession{
		id:          id,
		unitId:      unitId,
		inspectorId: inspectorId,
		stationId:   stationId,
		kind:        kind,
		startedAt:   startedAt,
		progress:    progress,
		completedAt: completedAt,
	}, nil
}

func (s CompletedSession) Id() uuid.UUID          { return s.id }
func (s CompletedSession) UnitId() uuid.UUID      { return s.unitId }
func (s CompletedSession) InspectorId() uuid.UUID { return s.inspectorId }
func (s CompletedSession) StationId() uuid.UUID   { return s.stationId }
func (s CompletedSession) Kind() InspectionKind   { return s.kind }
func (s CompletedSession) StartedAt() time.Time   { return s.startedAt }
func (s CompletedSession) Progress() Progress     { return s.progress }
func (s CompletedSession) CompletedAt() time.Time { return s.completedAt }

// AbandonedSession is terminal and preserves partial findings.
type AbandonedSession struct {
	id          uuid.UUID
	unitId      uuid.UUID
	inspectorId uuid.UUID
	stationId   uuid.UUID
	kind        InspectionKind
	startedAt   time.Time
	progress    Progress
	abandonedAt time.Time
	reason      string
}

func (AbandonedSession) isInspectionSession() {}

// RehydrateAbandonedSession rebuilds an abandoned session from persistence.
func RehydrateAbandonedSession(id, unitId, inspectorId, stationId uuid.UUID, kind InspectionKind, startedAt time.Time, progress Progress, abandonedAt time.Time, reason string) AbandonedSession {
	return AbandonedSession{
		id:          id,
		unitId:      unitId,
		inspectorId: inspectorId,
		stationId:   stationId,
		kind:        kind,
		startedAt:   startedAt,
		progress:    progress,
		abandonedAt: abandonedAt,
		reason:      reason,
	}
}

func (s AbandonedSession) Id() uuid.UUID          { return s.id }
func (s AbandonedSession) UnitId() uuid.UUID      { return s.unitId }
func (s AbandonedSession) InspectorId() uuid.UUID { return s.inspectorId }
func (s AbandonedSession) StationId() uuid.UUID   { return s.stationId }
func (s AbandonedSession) Kind() InspectionKind   { return s.kind }
func (s AbandonedSession) StartedAt() time.Time   { return s.startedAt }
func (s AbandonedSession) Progress() Progress     { return s.progress }
func (s AbandonedSession) AbandonedAt() time.Time { return s.abandonedAt }
func (s AbandonedSession) Reason() string         { return s.reason }
