package mapper

import (
	"time"

	"firecheck-be/internal/entity"
	"firecheck-be/internal/model"
)

type ManifestMapper struct{}

func NewManifestMapper() *ManifestMapper {
	return &ManifestMapper{}
}

func (m *ManifestMapper) UnitToEntity(row *model.Unit) *entity.Unit {
	if row == nil {
		return nil
	}
	return &entity.Unit{
		Id:        row.Id,
		StationId: row.StationId,
		Name:      row.Name,
		CallSign:  row.CallSign,
		UnitType:  row.UnitType,
		InService: row.InService,
		CreatedAt: row.CreatedAt,
		UpdatedAt: nonZeroTime(row.UpdatedAt),
	}
}

func (m *ManifestMapper) UnitToModel(u *entity.Unit) *model.Unit {
	if u == nil {
		return nil
	}
	row := &model.Unit{
		Id:        u.Id,
		StationId: u.StationId,
		Name:      u.Name,
		CallSign:  u.CallSign,
		UnitType:  u.UnitType,
		InService: u.InService,
		CreatedAt: u.CreatedAt,
	}
	if u.UpdatedAt != nil {
		row.UpdatedAt = *u.UpdatedAt
	}
	return row
}

func (m *ManifestMapper) SubLocationToEntity(row *model.SubLocation) *entity.SubLocation {
	if row == nil {
		return nil
	}
	return &entity.SubLocation{
		Id:        row.Id,
		UnitId:    row.UnitId,
		Name:      row.Name,
		Position:  row.Position,
		CreatedAt: row.CreatedAt,
	}
}

func (m *ManifestMapper) SubLocationToModel(s *entity.SubLocation) *model.SubLocation {
	if s == nil {
		return nil
	}
	return &model.SubLocation{
		Id:        s.Id,
		UnitId:    s.UnitId,
		Name:      s.Name,
		Position:  s.Position,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ManifestMapper) EquipmentToEntity(row *model.EquipmentItem) *entity.EquipmentItem {
	if row == nil {
		return nil
	}
	return &entity.EquipmentItem{
		Id:            row.Id,
		SubLocationId: row.SubLocationId,
		Name:          row.Name,
		SerialNumber:  row.SerialNumber,
		Category:      row.Category,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     nonZeroTime(row.UpdatedAt),
	}
}

func (m *ManifestMapper) EquipmentToModel(e *entity.EquipmentItem) *model.EquipmentItem {
	if e == nil {
		return nil
	}
	row := &model.EquipmentItem{
		Id:            e.Id,
		SubLocationId: e.SubLocationId,
		Name:          e.Name,
		SerialNumber:  e.SerialNumber,
		Category:      e.Category,
		CreatedAt:     e.CreatedAt,
	}
	if e.UpdatedAt != nil {
		row.UpdatedAt = *e.UpdatedAt
	}
	return row
}

func (m *ManifestMapper) ConsumableToEntity(row *model.ConsumableStock) *entity.ConsumableStock {
	if row == nil {
		return nil
	}
	return &entity.ConsumableStock{
		Id:            row.Id,
		SubLocationId: row.SubLocationId,
		Name:          row.Name,
		ExpectedQty:   row.ExpectedQty,
		MinimumQty:    row.MinimumQty,
		Uom:           row.Uom,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     nonZeroTime(row.UpdatedAt),
	}
}

func (m *ManifestMapper) ConsumableToModel(c *entity.ConsumableStock) *model.ConsumableStock {
	if c == nil {
		return nil
	}
	row := &model.ConsumableStock{
		Id:            c.Id,
		SubLocationId: c.SubLocationId,
		Name:          c.Name,
		ExpectedQty:   c.ExpectedQty,
		MinimumQty:    c.MinimumQty,
		Uom:           c.Uom,
		CreatedAt:     c.CreatedAt,
	}
	if c.UpdatedAt != nil {
		row.UpdatedAt = *c.UpdatedAt
	}
	return row
}

func nonZeroTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	v := t
	return &v
}
