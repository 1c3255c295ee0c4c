package contract

import (
	"context"

	"firecheck-be/internal/entity"
	"firecheck-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	Update(ctx context.Context, unit *entity.Unit) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Unit, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Unit, error)
}

type SubLocationRepository interface {
	Create(ctx context.Context, subLocation *entity.SubLocation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SubLocation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SubLocation, error)
}

type EquipmentItemRepository interface {
	Create(ctx context.Context, item *entity.EquipmentItem) error
	Update(ctx context.Context, item *entity.EquipmentItem) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EquipmentItem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EquipmentItem, error)
	CountByUnit(ctx context.Context, unitId uuid.UUID) (int64, error)
}

type ConsumableStockRepository interface {
	Create(ctx context.Context, stock *entity.ConsumableStock) error
	Update(ctx context.Context, stock *entity.ConsumableStock) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConsumableStock, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConsumableStock, error)
	CountByUnit(ctx context.Context, unitId uuid.UUID) (int64, error)
}
