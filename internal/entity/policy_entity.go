package entity

import "time"

// InspectionKind distinguishes the two inspection ceremonies performed
// against an apparatus manifest.
type InspectionKind string

const (
	KindFormalAudit InspectionKind = "formal_audit"
	KindShiftCheck  InspectionKind = "shift_check"
)

// Policy parameterizes the session state machine per inspection kind.
// Both kinds share the same state machine shape; only thresholds and the
// resume rule differ.
type Policy struct {
	Kind InspectionKind

	// StaleAfter is how long a session may sit idle before the sweep
	// reclassifies it as abandoned.
	StaleAfter time.Duration

	// ResumeWindow is how long after abandonment the same inspector may
	// resume into a fresh session carrying the old progress forward.
	// Zero means abandonment is final.
	ResumeWindow time.Duration
}

const (
	DefaultAuditStaleAfter        = 7 * 24 * time.Hour
	DefaultShiftCheckStaleAfter   = 4 * time.Hour
	DefaultShiftCheckResumeWindow = 30 * time.Minute
)

// FormalAuditPolicy builds the formal-audit policy. A zero staleAfter
// falls back to the default threshold.
func FormalAuditPolicy(staleAfter time.Duration) Policy {
	if staleAfter <= 0 {
		staleAfter = DefaultAuditStaleAfter
	}
	return Policy{
		Kind:       KindFormalAudit,
		StaleAfter: staleAfter,
	}
}

// ShiftCheckPolicy builds the shift-check policy.
func ShiftCheckPolicy(staleAfter, resumeWindow time.Duration) Policy {
	if staleAfter <= 0 {
		staleAfter = DefaultShiftCheckStaleAfter
	}
	if resumeWindow <= 0 {
		resumeWindow = DefaultShiftCheckResumeWindow
	}
	return Policy{
		Kind:         KindShiftCheck,
		StaleAfter:   staleAfter,
		ResumeWindow: resumeWindow,
	}
}

// Resumable reports whether an abandoned session of this kind may be
// resumed at all.
func (p Policy) Resumable() bool {
	return p.ResumeWindow > 0
}
