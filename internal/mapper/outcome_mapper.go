package mapper

import (
	"encoding/json"
	"fmt"

	"firecheck-be/internal/entity"
	"firecheck-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	targetKindEquipment  = "equipment"
	targetKindConsumable = "consumable"
)

// outcomeDetails is the JSONB payload; only the fields legal for the target
// kind are ever populated (the entity constructor guarantees it).
type outcomeDetails struct {
	Condition  string                     `json:"condition,omitempty"`
	TestResult string                     `json:"test_result,omitempty"`
	Expiry     string                     `json:"expiry,omitempty"`
	Quantity   *entity.QuantityComparison `json:"quantity,omitempty"`
	Notes      string                     `json:"notes,omitempty"`
}

type OutcomeMapper struct{}

func NewOutcomeMapper() *OutcomeMapper {
	return &OutcomeMapper{}
}

func (m *OutcomeMapper) ToModel(sessionId uuid.UUID, o entity.OutcomeRecord) (*model.OutcomeRecord, error) {
	details := outcomeDetails{
		Condition:  o.Condition(),
		TestResult: o.TestResult(),
		Expiry:     o.Expiry(),
		Quantity:   o.Quantity(),
		Notes:      o.Notes(),
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}

	target := o.Target()
	row := &model.OutcomeRecord{
		Id:         uuid.New(),
		SessionId:  sessionId,
		TargetKey:  target.Key(),
		Status:     string(o.Status()),
		Details:    datatypes.JSON(payload),
		RecordedAt: o.RecordedAt(),
	}
	if id, ok := target.EquipmentId(); ok {
		row.TargetKind = targetKindEquipment
		row.TargetId = id
	} else if id, ok := target.ConsumableId(); ok {
		row.TargetKind = targetKindConsumable
		row.TargetId = id
	}
	return row, nil
}

func (m *OutcomeMapper) ToEntity(row *model.OutcomeRecord) (entity.OutcomeRecord, error) {
	if row == nil {
		return entity.OutcomeRecord{}, fmt.Errorf("nil outcome row")
	}

	var target entity.ItemTarget
	var err error
	switch row.TargetKind {
	case targetKindEquipment:
		target, err = entity.NewEquipmentTarget(row.TargetId)
	case targetKindConsumable:
		target, err = entity.NewConsumableTarget(row.TargetId)
	default:
		return entity.OutcomeRecord{}, fmt.Errorf("unknown target kind %q", row.TargetKind)
	}
	if err != nil {
		return entity.OutcomeRecord{}, err
	}

	var details outcomeDetails
	if len(row.Details) > 0 {
		if err := json.Unmarshal(row.Details, &details); err != nil {
			return entity.OutcomeRecord{}, err
		}
	}

	return entity.NewOutcomeRecord(target, entity.OutcomeStatus(row.Status), entity.OutcomeDetails{
		Condition:  details.Condition,
		TestResult: details.TestResult,
		Expiry:     details.Expiry,
		Quantity:   details.Quantity,
		Notes:      details.Notes,
	}, row.RecordedAt)
}
