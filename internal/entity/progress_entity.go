package entity

// Progress tracks per-session coverage counters. It is a value type; the
// record methods return updated copies and never mutate the receiver.
type Progress struct {
	totalItems      int
	completedCount  int
	issueCount      int
	unexpectedCount int
}

func NewProgress(totalItems int) (Progress, error) {
	if totalItems < 0 {
		return Progress{}, ErrNegativeTotalItems
	}
	return Progress{totalItems: totalItems}, nil
}

// RehydrateProgress rebuilds a Progress from persisted counters. Used by the
// persistence mapper only; counters are trusted as previously validated.
func RehydrateProgress(totalItems, completedCount, issueCount, unexpectedCount int) Progress {
	return Progress{
		totalItems:      totalItems,
		completedCount:  completedCount,
		issueCount:      issueCount,
		unexpectedCount: unexpectedCount,
	}
}

func (p Progress) TotalItems() int { return p.totalItems }
func (p Progress) CompletedCount() int { return p.completedCount }
func (p Progress) IssueCount() int { return p.issueCount }
func (p Progress) UnexpectedCount() int { return p.unexpectedCount }

// RecordItem counts one manifest-expected item as covered. CompletedCount
// is capped at TotalItems so coverage can never exceed the manifest.
func (p Progress) RecordItem(hasIssue bool) Progress {
	if p.completedCount < p.totalItems {
		p.completedCount++
	}
	if hasIssue {
		p.issueCount++
	}
	return p
}

// RecordUnexpected counts an item found outside the manifest. It never
// advances coverage.
func (p Progress) RecordUnexpected(hasIssue bool) Progress {
	p.unexpectedCount++
	if hasIssue {
		p.issueCount++
	}
	return p
}

func (p Progress) IsComplete() bool {
	return p.completedCount == p.totalItems
}

func (p Progress) Remaining() int {
	return p.totalItems - p.completedCount
}

// Percentage returns whole-number coverage. An empty manifest is vacuously
// complete.
func (p Progress) Percentage() int {
	if p.totalItems == 0 {
		return 100
	}
	return p.completedCount * 100 / p.totalItems
}
