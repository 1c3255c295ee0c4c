package entity

import "github.com/google/uuid"

// ItemTarget identifies the subject of one outcome record: exactly one of an
// individually tracked equipment item or a bulk consumable stock entry. The
// exclusive-or is enforced by the two constructors; the zero value is not a
// valid target.
type ItemTarget struct {
	equipmentId  uuid.UUID
	consumableId uuid.UUID
	isEquipment  bool
	valid        bool
}

func NewEquipmentTarget(equipmentId uuid.UUID) (ItemTarget, error) {
	if equipmentId == uuid.Nil {
		return ItemTarget{}, &InvalidTargetError{Reason: "equipment id is required"}
	}
	return ItemTarget{equipmentId: equipmentId, isEquipment: true, valid: true}, nil
}

func NewConsumableTarget(consumableId uuid.UUID) (ItemTarget, error) {
	if consumableId == uuid.Nil {
		return ItemTarget{}, &InvalidTargetError{Reason: "consumable stock id is required"}
	}
	return ItemTarget{consumableId: consumableId, valid: true}, nil
}

func (t ItemTarget) IsValid() bool { return t.valid }
func (t ItemTarget) IsEquipment() bool { return t.valid && t.isEquipment }
func (t ItemTarget) IsConsumable() bool {
	return t.valid && !t.isEquipment
}

func (t ItemTarget) EquipmentId() (uuid.UUID, bool) {
	if !t.IsEquipment() {
		return uuid.Nil, false
	}
	return t.equipmentId, true
}

func (t ItemTarget) ConsumableId() (uuid.UUID, bool) {
	if !t.IsConsumable() {
		return uuid.Nil, false
	}
	return t.consumableId, true
}

// Key returns a stable identifier used for per-session duplicate detection.
func (t ItemTarget) Key() string {
	if t.isEquipment {
		return "equipment:" + t.equipmentId.String()
	}
	return "consumable:" + t.consumableId.String()
}
