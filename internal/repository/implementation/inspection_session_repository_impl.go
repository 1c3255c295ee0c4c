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

type InspectionSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InspectionSessionMapper
}

func NewInspectionSessionRepository(db *gorm.DB, m *mapper.InspectionSessionMapper) contract.InspectionSessionRepository {
	return &InspectionSessionRepositoryImpl{
		db:     db,
		mapper: m,
	}
}

func (r *InspectionSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InspectionSessionRepositoryImpl) Create(ctx context.Context, session entity.InspectionSession) error {
	row, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *InspectionSessionRepositoryImpl) Update(ctx context.Context, session entity.InspectionSession) error {
	row, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *InspectionSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (entity.InspectionSession, error) {
	var row model.InspectionSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&row)
}

func (r *InspectionSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]entity.InspectionSession, error) {
	var rows []*model.InspectionSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	sessions := make([]entity.InspectionSession, 0, len(rows))
	for _, row := range rows {
		s, err := r.mapper.ToEntity(row)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func (r *InspectionSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.InspectionSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *InspectionSessionRepositoryImpl) FindActiveByUnit(ctx context.Context, unitId uuid.UUID, kind entity.InspectionKind) (*entity.ActiveSession, error) {
	var row model.InspectionSession
	err := r.db.WithContext(ctx).
		Where("unit_id = ? AND kind = ? AND status = ?", unitId, string(kind), model.SessionStatusActive).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToActiveEntity(&row)
}
