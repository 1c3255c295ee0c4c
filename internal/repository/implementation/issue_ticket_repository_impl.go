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

type IssueTicketRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IssueTicketMapper
}

func NewIssueTicketRepository(db *gorm.DB) contract.IssueTicketRepository {
	return &IssueTicketRepositoryImpl{
		db:     db,
		mapper: mapper.NewIssueTicketMapper(),
	}
}

func (r *IssueTicketRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *IssueTicketRepositoryImpl) Create(ctx context.Context, ticket *entity.IssueTicket) error {
	m := r.mapper.ToModel(ticket)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*ticket = *r.mapper.ToEntity(m)
	return nil
}

func (r *IssueTicketRepositoryImpl) Update(ctx context.Context, ticket *entity.IssueTicket) error {
	m := r.mapper.ToModel(ticket)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*ticket = *r.mapper.ToEntity(m)
	return nil
}

func (r *IssueTicketRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IssueTicket, error) {
	var m model.IssueTicket
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *IssueTicketRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IssueTicket, error) {
	var models []*model.IssueTicket
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	tickets := make([]*entity.IssueTicket, 0, len(models))
	for _, m := range models {
		tickets = append(tickets, r.mapper.ToEntity(m))
	}
	return tickets, nil
}

func (r *IssueTicketRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.IssueTicket{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
