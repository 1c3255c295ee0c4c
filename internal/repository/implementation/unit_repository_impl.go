package implementation

import (
	"context"
	"errors"

	"firecheck-be/internal/entity"
	"firecheck-be/internal/mapper"
	"firecheck-be/internal/model"
	"firecheck-be/internal/repository/contract"
	"firecheck-be/internal/repository/specification"

	"gorm.io/gorm"
)

type UnitRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ManifestMapper
}

func NewUnitRepository(db *gorm.DB) contract.UnitRepository {
	return &UnitRepositoryImpl{
		db:     db,
		mapper: mapper.NewManifestMapper(),
	}
}

func (r *UnitRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UnitRepositoryImpl) Create(ctx context.Context, unit *entity.Unit) error {
	m := r.mapper.UnitToModel(unit)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*unit = *r.mapper.UnitToEntity(m)
	return nil
}

func (r *UnitRepositoryImpl) Update(ctx context.Context, unit *entity.Unit) error {
	m := r.mapper.UnitToModel(unit)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*unit = *r.mapper.UnitToEntity(m)
	return nil
}

func (r *UnitRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Unit, error) {
	var m model.Unit
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.UnitToEntity(&m), nil
}

func (r *UnitRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Unit, error) {
	var models []*model.Unit
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	units := make([]*entity.Unit, 0, len(models))
	for _, m := range models {
		units = append(units, r.mapper.UnitToEntity(m))
	}
	return units, nil
}
