package model

import (
	"time"

	"github.com/google/uuid"
)

type Unit struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StationId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:text;not null"`
	CallSign  string    `gorm:"type:varchar(32);not null"`
	UnitType  string    `gorm:"type:varchar(32);not null"`
	InService bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Unit) TableName() string {
	return "units"
}

type SubLocation struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UnitId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:text;not null"`
	Position  int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (SubLocation) TableName() string {
	return "sub_locations"
}

type EquipmentItem struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubLocationId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:text;not null"`
	SerialNumber  string    `gorm:"type:varchar(64)"`
	Category      string    `gorm:"type:varchar(64)"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (EquipmentItem) TableName() string {
	return "equipment_items"
}

type ConsumableStock struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubLocationId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:text;not null"`
	ExpectedQty   int       `gorm:"not null;default:0"`
	MinimumQty    int       `gorm:"not null;default:0"`
	Uom           string    `gorm:"type:varchar(16)"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (ConsumableStock) TableName() string {
	return "consumable_stocks"
}
