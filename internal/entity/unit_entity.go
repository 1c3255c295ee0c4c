package entity

import (
	"time"

	"github.com/google/uuid"
)

// Unit is one piece of fire apparatus (engine, ladder, rescue).
type Unit struct {
	Id        uuid.UUID
	StationId uuid.UUID
	Name      string
	CallSign  string
	UnitType  string
	InService bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// SubLocation is a discrete storage area on a unit, inspected as one piece.
type SubLocation struct {
	Id        uuid.UUID
	UnitId    uuid.UUID
	Name      string
	Position  int
	CreatedAt time.Time
}

// EquipmentItem is an individually tracked piece of equipment assigned to a
// sub-location.
type EquipmentItem struct {
	Id            uuid.UUID
	SubLocationId uuid.UUID
	Name          string
	SerialNumber  string
	Category      string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// ConsumableStock is a bulk stock entry (gauze, fuel, batteries) carried in
// a sub-location with an expected minimum quantity.
type ConsumableStock struct {
	Id            uuid.UUID
	SubLocationId uuid.UUID
	Name          string
	ExpectedQty   int
	MinimumQty    int
	Uom           string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
