package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

var testStart = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

func startTestSession(t *testing.T, policy Policy, totalItems int) ActiveSession {
	t.Helper()
	s, err := StartSession(uuid.New(), uuid.New(), uuid.New(), uuid.New(), policy, testStart, totalItems)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	return s
}

func TestStartSession(t *testing.T) {
	s := startTestSession(t, FormalAuditPolicy(0), 12)

	if s.Progress().TotalItems() != 12 {
		t.Errorf("TotalItems = %d, want 12", s.Progress().TotalItems())
	}
	if s.Progress().CompletedCount() != 0 || s.Progress().IssueCount() != 0 || s.Progress().UnexpectedCount() != 0 {
		t.Errorf("counters not zero: %+v", s.Progress())
	}
	if !s.LastActivityAt().Equal(s.StartedAt()) {
		t.Errorf("LastActivityAt = %v, want StartedAt %v", s.LastActivityAt(), s.StartedAt())
	}

	if _, err := StartSession(uuid.New(), uuid.New(), uuid.New(), uuid.New(), FormalAuditPolicy(0), testStart, -1); !errors.Is(err, ErrNegativeTotalItems) {
		t.Errorf("negative totalItems: err = %v, want ErrNegativeTotalItems", err)
	}
}

func TestCompleteFullCoverage(t *testing.T) {
	// Scenario: 3 items, two clean and one missing with an issue.
	s := startTestSession(t, FormalAuditPolicy(0), 3)
	now := testStart

	for i := 0; i < 2; i++ {
		now = now.Add(time.Minute)
		s = s.RecordOutcome(false, now)
	}
	now = now.Add(time.Minute)
	s = s.RecordOutcome(RequiresIssue(StatusMissing), now)

	p := s.Progress()
	if p.TotalItems() != 3 || p.CompletedCount() != 3 || p.IssueCount() != 1 || p.UnexpectedCount() != 0 {
		t.Fatalf("progress = {%d %d %d %d}, want {3 3 1 0}",
			p.TotalItems(), p.CompletedCount(), p.IssueCount(), p.UnexpectedCount())
	}

	done, err := s.Complete(now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if done.Progress().IssueCount() != 1 {
		t.Errorf("completed IssueCount = %d, want 1", done.Progress().IssueCount())
	}
	if done.CompletedAt().Before(done.StartedAt()) {
		t.Errorf("CompletedAt %v before StartedAt %v", done.CompletedAt(), done.StartedAt())
	}
	if done.Id() != s.Id() {
		t.Errorf("identity changed across transition")
	}
}

func TestCompleteIncomplete(t *testing.T) {
	// Scenario: 5 items, one recorded, Complete must fail with remaining=4
	// and leave the active value usable.
	s := startTestSession(t, FormalAuditPolicy(0), 5)
	s = s.RecordOutcome(false, testStart.Add(time.Minute))

	_, err := s.Complete(testStart.Add(2 * time.Minute))
	var incomplete *IncompleteSessionError
	if !errors.As(err, &incomplete) {
		t.Fatalf("err = %v, want IncompleteSessionError", err)
	}
	if incomplete.Remaining != 4 {
		t.Errorf("Remaining = %d, want 4", incomplete.Remaining)
	}
	if s.Progress().CompletedCount() != 1 {
		t.Errorf("CompletedCount = %d, want 1 after failed Complete", s.Progress().CompletedCount())
	}
}

func TestTransitionsAreImmutable(t *testing.T) {
	s1 := startTestSession(t, FormalAuditPolicy(0), 2)
	s2 := s1.RecordOutcome(true, testStart.Add(time.Minute))

	if s1.Progress().CompletedCount() != 0 || s1.Progress().IssueCount() != 0 {
		t.Errorf("receiver mutated by RecordOutcome: %+v", s1.Progress())
	}
	if s2.Progress().CompletedCount() != 1 || s2.Progress().IssueCount() != 1 {
		t.Errorf("returned value wrong: %+v", s2.Progress())
	}

	p1, err := s1.Pause(testStart.Add(time.Minute))
	if err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if s1.IsPaused() {
		t.Error("receiver mutated by Pause")
	}
	if !p1.IsPaused() {
		t.Error("returned value not paused")
	}
}

func TestCoverageNeverExceedsTotal(t *testing.T) {
	s := startTestSession(t, ShiftCheckPolicy(0, 0), 2)
	now := testStart
	for i := 0; i < 5; i++ {
		now = now.Add(time.Minute)
		s = s.RecordOutcome(false, now)
	}
	if got := s.Progress().CompletedCount(); got != 2 {
		t.Errorf("CompletedCount = %d, want capped at 2", got)
	}
	if !s.Progress().IsComplete() {
		t.Error("expected complete coverage")
	}
}

func TestUnexpectedItemDoesNotAdvanceCoverage(t *testing.T) {
	s := startTestSession(t, FormalAuditPolicy(0), 1)
	s = s.RecordUnexpectedItem(true, testStart.Add(time.Minute))

	p := s.Progress()
	if p.CompletedCount() != 0 {
		t.Errorf("CompletedCount = %d, want 0", p.CompletedCount())
	}
	if p.UnexpectedCount() != 1 || p.IssueCount() != 1 {
		t.Errorf("progress = {%d %d %d %d}, want unexpected=1 issue=1",
			p.TotalItems(), p.CompletedCount(), p.IssueCount(), p.UnexpectedCount())
	}
	if _, err := s.Complete(testStart.Add(2 * time.Minute)); err == nil {
		t.Error("Complete succeeded without covering the manifest item")
	}
}

func TestPauseResume(t *testing.T) {
	s := startTestSession(t, FormalAuditPolicy(0), 1)

	if _, err := s.Resume(testStart.Add(time.Minute)); !errors.Is(err, ErrNotPaused) {
		t.Errorf("Resume on running session: err = %v, want ErrNotPaused", err)
	}

	paused, err := s.Pause(testStart.Add(time.Minute))
	if err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if _, err := paused.Pause(testStart.Add(2 * time.Minute)); !errors.Is(err, ErrAlreadyPaused) {
		t.Errorf("double Pause: err = %v, want ErrAlreadyPaused", err)
	}

	resumed, err := paused.Resume(testStart.Add(3 * time.Minute))
	if err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if resumed.IsPaused() {
		t.Error("resumed session still paused")
	}
	if !resumed.LastActivityAt().Equal(testStart.Add(3 * time.Minute)) {
		t.Errorf("Resume did not refresh LastActivityAt")
	}
}

func TestAbandonPreservesProgress(t *testing.T) {
	s := startTestSession(t, ShiftCheckPolicy(0, 0), 4)
	s = s.RecordOutcome(false, testStart.Add(time.Minute))
	s = s.RecordOutcome(true, testStart.Add(2*time.Minute))

	gone := s.Abandon("shift ended", testStart.Add(3*time.Minute))
	if gone.Progress().CompletedCount() != 2 || gone.Progress().IssueCount() != 1 {
		t.Errorf("abandoned progress = %+v, want completed=2 issue=1", gone.Progress())
	}
	if gone.Reason() != "shift ended" {
		t.Errorf("Reason = %q", gone.Reason())
	}
	if gone.Id() != s.Id() {
		t.Error("identity changed across abandon")
	}
}

func TestIsStalePerPolicy(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		idle   time.Duration
		want   bool
	}{
		{"audit under threshold", FormalAuditPolicy(0), 6 * 24 * time.Hour, false},
		{"audit over threshold", FormalAuditPolicy(0), 8 * 24 * time.Hour, true},
		{"shift check under threshold", ShiftCheckPolicy(0, 0), 3 * time.Hour, false},
		{"shift check over threshold", ShiftCheckPolicy(0, 0), 5 * time.Hour, true},
		{"custom threshold", ShiftCheckPolicy(time.Hour, 0), 90 * time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := startTestSession(t, tt.policy, 3)
			if got := s.IsStale(testStart.Add(tt.idle)); got != tt.want {
				t.Errorf("IsStale after %v = %v, want %v", tt.idle, got, tt.want)
			}
		})
	}
}

func TestStaleSessionAbandonKeepsPartialProgress(t *testing.T) {
	s := startTestSession(t, ShiftCheckPolicy(0, 0), 3)
	s = s.RecordOutcome(false, testStart.Add(time.Minute))

	now := testStart.Add(6 * time.Hour)
	if !s.IsStale(now) {
		t.Fatal("session should be stale")
	}
	gone := s.Abandon("stale", now)
	if gone.Progress().CompletedCount() != 1 {
		t.Errorf("CompletedCount = %d, want 1", gone.Progress().CompletedCount())
	}
}

func TestEmptyManifestIsVacuouslyComplete(t *testing.T) {
	s := startTestSession(t, FormalAuditPolicy(0), 0)
	if s.Progress().Percentage() != 100 {
		t.Errorf("Percentage = %d, want 100 for empty manifest", s.Progress().Percentage())
	}
	if _, err := s.Complete(testStart.Add(time.Minute)); err != nil {
		t.Errorf("Complete on empty manifest failed: %v", err)
	}
}

func TestRehydrateCompletedRejectsPartialCoverage(t *testing.T) {
	progress := RehydrateProgress(5, 3, 0, 0)
	_, err := RehydrateCompletedSession(uuid.New(), uuid.New(), uuid.New(), uuid.New(), KindFormalAudit, testStart, progress, testStart.Add(time.Hour))
	var incomplete *IncompleteSessionError
	if !errors.As(err, &incomplete) {
		t.Fatalf("err = %v, want IncompleteSessionError", err)
	}
	if incomplete.Remaining != 2 {
		t.Errorf("Remaining = %d, want 2", incomplete.Remaining)
	}
}
