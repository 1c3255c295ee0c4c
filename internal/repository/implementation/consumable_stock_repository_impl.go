package implementation

import (
	"context"
	"errors"

	"firecheck-be/internal/entity"
	"firecheck-be/internal/mapper"
	"firecheck-be/internal/model"
	"firecheck-be/internal/repository/contract"
	"firecheck-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsumableStockRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ManifestMapper
}

func NewConsumableStockRepository(db *gorm.DB) contract.ConsumableStockRepository {
	return &ConsumableStockRepositoryImpl{
		db:     db,
		mapper: mapper.NewManifestMapper(),
	}
}

func (r *ConsumableStockRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConsumableStockRepositoryImpl) Create(ctx context.Context, stock *entity.ConsumableStock) error {
	m := r.mapper.ConsumableToModel(stock)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*stock = *r.mapper.ConsumableToEntity(m)
	return nil
}

func (r *ConsumableStockRepositoryImpl) Update(ctx context.Context, stock *entity.ConsumableStock) error {
	m := r.mapper.ConsumableToModel(stock)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*stock = *r.mapper.ConsumableToEntity(m)
	return nil
}

func (r *ConsumableStockRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConsumableStock, error) {
	var m model.ConsumableStock
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ConsumableToEntity(&m), nil
}

func (r *ConsumableStockRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConsumableStock, error) {
	var models []*model.ConsumableStock
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	stocks := make([]*entity.ConsumableStock, 0, len(models))
	for _, m := range models {
		stocks = append(stocks, r.mapper.ConsumableToEntity(m))
	}
	return stocks, nil
}

func (r *ConsumableStockRepositoryImpl) CountByUnit(ctx context.Context, unitId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ConsumableStock{}).
		Joins("JOIN sub_locations ON sub_locations.id = consumable_stocks.sub_location_id").
		Where("sub_locations.unit_id = ?", unitId).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
