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

type EquipmentItemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ManifestMapper
}

func NewEquipmentItemRepository(db *gorm.DB) contract.EquipmentItemRepository {
	return &EquipmentItemRepositoryImpl{
		db:     db,
		mapper: mapper.NewManifestMapper(),
	}
}

func (r *EquipmentItemRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *EquipmentItemRepositoryImpl) Create(ctx context.Context, item *entity.EquipmentItem) error {
	m := r.mapper.EquipmentToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.EquipmentToEntity(m)
	return nil
}

func (r *EquipmentItemRepositoryImpl) Update(ctx context.Context, item *entity.EquipmentItem) error {
	m := r.mapper.EquipmentToModel(item)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.EquipmentToEntity(m)
	return nil
}

func (r *EquipmentItemRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EquipmentItem, error) {
	var m model.EquipmentItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.EquipmentToEntity(&m), nil
}

func (r *EquipmentItemRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EquipmentItem, error) {
	var models []*model.EquipmentItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	items := make([]*entity.EquipmentItem, 0, len(models))
	for _, m := range models {
		items = append(items, r.mapper.EquipmentToEntity(m))
	}
	return items, nil
}

func (r *EquipmentItemRepositoryImpl) CountByUnit(ctx context.Context, unitId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.EquipmentItem{}).
		Joins("JOIN sub_locations ON sub_locations.id = equipment_items.sub_location_id").
		Where("sub_locations.unit_id = ?", unitId).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
