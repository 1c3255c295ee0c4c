package implementation

import (
	"context"

	"firecheck-be/internal/entity"
	"firecheck-be/internal/mapper"
	"firecheck-be/internal/model"
	"firecheck-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OutcomeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OutcomeMapper
}

func NewOutcomeRepository(db *gorm.DB) contract.OutcomeRepository {
	return &OutcomeRepositoryImpl{
		db:     db,
		mapper: mapper.NewOutcomeMapper(),
	}
}

func (r *OutcomeRepositoryImpl) Create(ctx context.Context, sessionId uuid.UUID, outcome entity.OutcomeRecord) error {
	row, err := r.mapper.ToModel(sessionId, outcome)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *OutcomeRepositoryImpl) HasOutcome(ctx context.Context, sessionId uuid.UUID, targetKey string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OutcomeRecord{}).
		Where("session_id = ? AND target_key = ?", sessionId, targetKey).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *OutcomeRepositoryImpl) FindBySession(ctx context.Context, sessionId uuid.UUID) ([]entity.OutcomeRecord, error) {
	var rows []*model.OutcomeRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("recorded_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	outcomes := make([]entity.OutcomeRecord, 0, len(rows))
	for _, row := range rows {
		o, err := r.mapper.ToEntity(row)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

func (r *OutcomeRepositoryImpl) CountBySession(ctx context.Context, sessionId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OutcomeRecord{}).
		Where("session_id = ?", sessionId).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
