package entity

type IssueCategory string

const (
	CategoryMissing     IssueCategory = "MISSING"
	CategoryDamage      IssueCategory = "DAMAGE"
	CategoryMalfunction IssueCategory = "MALFUNCTION"
	CategoryExpired     IssueCategory = "EXPIRED"
	CategoryLowStock    IssueCategory = "LOW_STOCK"
)

type IssueSeverity string

const (
	SeverityHigh   IssueSeverity = "HIGH"
	SeverityMedium IssueSeverity = "MEDIUM"
)

// IssueClassification is handed to the issue-ticketing collaborator when an
// outcome requires a follow-up issue. The engine never creates the ticket
// itself.
type IssueClassification struct {
	Title    string
	Category IssueCategory
	Severity IssueSeverity
}

var issueTable = map[OutcomeStatus]IssueClassification{
	StatusMissing:          {Title: "Item missing", Category: CategoryMissing, Severity: SeverityHigh},
	StatusDamaged:          {Title: "Item damaged", Category: CategoryDamage, Severity: SeverityMedium},
	StatusPresentDamaged:   {Title: "Item damaged", Category: CategoryDamage, Severity: SeverityMedium},
	StatusFailedInspection: {Title: "Item failed inspection", Category: CategoryMalfunction, Severity: SeverityHigh},
	StatusExpired:          {Title: "Item expired", Category: CategoryExpired, Severity: SeverityMedium},
	StatusLowQuantity:      {Title: "Stock below threshold", Category: CategoryLowStock, Severity: SeverityMedium},
}

// RequiresIssue reports whether an outcome must raise a follow-up issue.
// Total over all statuses; unknown statuses raise nothing.
func RequiresIssue(status OutcomeStatus) bool {
	_, ok := issueTable[status]
	return ok
}

// ClassifyOutcome returns the issue classification for an outcome, or
// ok=false when the outcome raises no issue.
func ClassifyOutcome(status OutcomeStatus) (IssueClassification, bool) {
	c, ok := issueTable[status]
	return c, ok
}
