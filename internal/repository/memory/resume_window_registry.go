package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ResumeWindowRegistry remembers recently abandoned shift checks so the same
// inspector can pick the check back up within the policy's resume window.
// Entries expire on their own; a lapsed window simply means Lookup misses.
type ResumeWindowRegistry struct {
	cache *cache.Cache
}

type resumeEntry struct {
	InspectorId     uuid.UUID
	CompletedCount  int
	IssueCount      int
	UnexpectedCount int
}

func NewResumeWindowRegistry(window time.Duration) *ResumeWindowRegistry {
	// Purge at twice the window granularity; expiry per entry governs reads.
	return &ResumeWindowRegistry{
		cache: cache.New(window, window/2),
	}
}

// Remember stores an abandoned session's partial counters under its id for
// the given window.
func (r *ResumeWindowRegistry) Remember(sessionId, inspectorId uuid.UUID, completed, issues, unexpected int, window time.Duration) {
	r.cache.Set(sessionId.String(), resumeEntry{
		InspectorId:     inspectorId,
		CompletedCount:  completed,
		IssueCount:      issues,
		UnexpectedCount: unexpected,
	}, window)
}

// Lookup returns the stored counters when the window is still open AND the
// caller is the inspector who abandoned the session.
func (r *ResumeWindowRegistry) Lookup(sessionId, inspectorId uuid.UUID) (completed, issues, unexpected int, ok bool) {
	v, found := r.cache.Get(sessionId.String())
	if !found {
		return 0, 0, 0, false
	}
	entry := v.(resumeEntry)
	if entry.InspectorId != inspectorId {
		return 0, 0, 0, false
	}
	return entry.CompletedCount, entry.IssueCount, entry.UnexpectedCount, true
}

// Forget drops the entry once a resume has consumed it.
func (r *ResumeWindowRegistry) Forget(sessionId uuid.UUID) {
	r.cache.Delete(sessionId.String())
}
