package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByUnitID filters sessions or manifest rows by apparatus.
type ByUnitID struct {
	UnitID uuid.UUID
}

func (s ByUnitID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("unit_id = ?", s.UnitID)
}

// ByStationID scopes rows to one fire station.
type ByStationID struct {
	StationID uuid.UUID
}

func (s ByStationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("station_id = ?", s.StationID)
}

// ByInspectorID filters sessions by the initiating user.
type ByInspectorID struct {
	InspectorID uuid.UUID
}

func (s ByInspectorID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("inspector_id = ?", s.InspectorID)
}

// BySessionStatus filters by the persisted variant discriminator
// ("active", "completed", "abandoned").
type BySessionStatus struct {
	Status string
}

func (s BySessionStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByKind filters by inspection ceremony.
type ByKind struct {
	Kind string
}

func (s ByKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kind = ?", s.Kind)
}

// IdleSince selects sessions whose last activity predates the cutoff; used
// by the staleness sweep as a cheap pre-filter before IsStale decides.
type IdleSince struct {
	Cutoff time.Time
}

func (s IdleSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("last_activity_at < ?", s.Cutoff)
}

// BySubLocationID filters manifest rows by compartment.
type BySubLocationID struct {
	SubLocationID uuid.UUID
}

func (s BySubLocationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sub_location_id = ?", s.SubLocationID)
}

// ByEmail filters users by email.
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// ByUserID filters notifications by recipient.
type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}
