package entity

import "testing"

func TestRequiresIssue(t *testing.T) {
	tests := []struct {
		status       OutcomeStatus
		wantIssue    bool
		wantCategory IssueCategory
		wantSeverity IssueSeverity
	}{
		{StatusVerified, false, "", ""},
		{StatusPresent, false, "", ""},
		{StatusMissing, true, CategoryMissing, SeverityHigh},
		{StatusDamaged, true, CategoryDamage, SeverityMedium},
		{StatusPresentDamaged, true, CategoryDamage, SeverityMedium},
		{StatusFailedInspection, true, CategoryMalfunction, SeverityHigh},
		{StatusExpired, true, CategoryExpired, SeverityMedium},
		{StatusLowQuantity, true, CategoryLowStock, SeverityMedium},
		{StatusSkipped, false, "", ""},
		{StatusNotAudited, false, "", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := RequiresIssue(tt.status); got != tt.wantIssue {
				t.Fatalf("RequiresIssue(%s) = %v, want %v", tt.status, got, tt.wantIssue)
			}

			c, ok := ClassifyOutcome(tt.status)
			if ok != tt.wantIssue {
				t.Fatalf("ClassifyOutcome(%s) ok = %v, want %v", tt.status, ok, tt.wantIssue)
			}
			if !ok {
				return
			}
			if c.Category != tt.wantCategory {
				t.Errorf("Category = %s, want %s", c.Category, tt.wantCategory)
			}
			if c.Severity != tt.wantSeverity {
				t.Errorf("Severity = %s, want %s", c.Severity, tt.wantSeverity)
			}
			if c.Title == "" {
				t.Error("classification has empty title")
			}
		})
	}
}

func TestRequiresIssueTotalOnUnknownStatus(t *testing.T) {
	if RequiresIssue(OutcomeStatus("bogus")) {
		t.Error("unknown status should not require an issue")
	}
}
