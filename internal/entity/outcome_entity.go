package entity

import "time"

// OutcomeStatus is the result recorded for one inspected item. The formal
// audit uses the full vocabulary; shift checks use the lighter
// Present/PresentDamaged/Missing subset plus an optional quantity comparison.
type OutcomeStatus string

const (
	StatusVerified         OutcomeStatus = "verified"
	StatusPresent          OutcomeStatus = "present"
	StatusMissing          OutcomeStatus = "missing"
	StatusDamaged          OutcomeStatus = "damaged"
	StatusPresentDamaged   OutcomeStatus = "present_damaged"
	StatusFailedInspection OutcomeStatus = "failed_inspection"
	StatusExpired          OutcomeStatus = "expired"
	StatusLowQuantity      OutcomeStatus = "low_quantity"
	StatusSkipped          OutcomeStatus = "skipped"
	StatusNotAudited       OutcomeStatus = "not_audited"
)

// QuantityComparison captures counted vs expected amounts for a consumable
// stock check.
type QuantityComparison struct {
	Expected int
	Counted  int
}

// OutcomeRecord is the per-item finding submitted against a session.
// Equipment-only fields (condition, test result, expiry) and the
// consumable-only quantity comparison are mutually exclusive with the
// target kind; NewOutcomeRecord rejects contradictions.
type OutcomeRecord struct {
	target     ItemTarget
	status     OutcomeStatus
	condition  string
	testResult string
	expiry     string
	quantity   *QuantityComparison
	notes      string
	recordedAt time.Time
}

type OutcomeDetails struct {
	Condition  string
	TestResult string
	Expiry     string
	Quantity   *QuantityComparison
	Notes      string
}

func NewOutcomeRecord(target ItemTarget, status OutcomeStatus, details OutcomeDetails, recordedAt time.Time) (OutcomeRecord, error) {
	if !target.IsValid() {
		return OutcomeRecord{}, &InvalidTargetError{Reason: "target is required"}
	}
	if target.IsConsumable() {
		if details.Condition != "" || details.TestResult != "" || details.Expiry != "" {
			return OutcomeRecord{}, &InvalidTargetError{Reason: "condition, test result and expiry apply to equipment targets only"}
		}
	}
	if target.IsEquipment() && details.Quantity != nil {
		return OutcomeRecord{}, &InvalidTargetError{Reason: "quantity comparison applies to consumable targets only"}
	}
	return OutcomeRecord{
		target:     target,
		status:     status,
		condition:  details.Condition,
		testResult: details.TestResult,
		expiry:     details.Expiry,
		quantity:   details.Quantity,
		notes:      details.Notes,
		recordedAt: recordedAt,
	}, nil
}

func (o OutcomeRecord) Target() ItemTarget { return o.target }
func (o OutcomeRecord) Status() OutcomeStatus { return o.status }
func (o OutcomeRecord) Condition() string { return o.condition }
func (o OutcomeRecord) TestResult() string { return o.testResult }
func (o OutcomeRecord) Expiry() string { return o.expiry }
func (o OutcomeRecord) Quantity() *QuantityComparison { return o.quantity }
func (o OutcomeRecord) Notes() string { return o.notes }
func (o OutcomeRecord) RecordedAt() time.Time { return o.recordedAt }
