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

type SubLocationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ManifestMapper
}

func NewSubLocationRepository(db *gorm.DB) contract.SubLocationRepository {
	return &SubLocationRepositoryImpl{
		db:     db,
		mapper: mapper.NewManifestMapper(),
	}
}

func (r *SubLocationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SubLocationRepositoryImpl) Create(ctx context.Context, subLocation *entity.SubLocation) error {
	m := r.mapper.SubLocationToModel(subLocation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*subLocation = *r.mapper.SubLocationToEntity(m)
	return nil
}

func (r *SubLocationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SubLocation, error) {
	var m model.SubLocation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SubLocationToEntity(&m), nil
}

func (r *SubLocationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SubLocation, error) {
	var models []*model.SubLocation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	subLocations := make([]*entity.SubLocation, 0, len(models))
	for _, m := range models {
		subLocations = append(subLocations, r.mapper.SubLocationToEntity(m))
	}
	return subLocations, nil
}
