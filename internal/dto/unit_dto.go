package dto

import (
	"time"

	"github.com/google/uuid"
)

type UnitResponse struct {
	Id        uuid.UUID `json:"id"`
	StationId uuid.UUID `json:"station_id"`
	Name      string    `json:"name"`
	CallSign  string    `json:"call_sign"`
	UnitType  string    `json:"unit_type"`
	InService bool      `json:"in_service"`
	ItemCount int64     `json:"item_count"`
}

type UnitDetailResponse struct {
	Id           uuid.UUID             `json:"id"`
	StationId    uuid.UUID             `json:"station_id"`
	Name         string                `json:"name"`
	CallSign     string                `json:"call_sign"`
	UnitType     string                `json:"unit_type"`
	InService    bool                  `json:"in_service"`
	SubLocations []SubLocationResponse `json:"sub_locations"`
}

type SubLocationResponse struct {
	Id          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Position    int                  `json:"position"`
	Equipment   []EquipmentResponse  `json:"equipment"`
	Consumables []ConsumableResponse `json:"consumables"`
}

type EquipmentResponse struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	SerialNumber string    `json:"serial_number,omitempty"`
	Category     string    `json:"category,omitempty"`
}

type ConsumableResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ExpectedQty int       `json:"expected_qty"`
	MinimumQty  int       `json:"minimum_qty"`
	Uom         string    `json:"uom,omitempty"`
}

type NotificationResponse struct {
	Id        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
