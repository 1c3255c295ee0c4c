package unitofwork

import (
	"context"
	"fmt"

	"firecheck-be/internal/mapper"
	"firecheck-be/internal/repository/contract"
	"firecheck-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db            *gorm.DB
	tx            *gorm.DB // The active transaction (nil when not in a tx)
	sessionMapper *mapper.InspectionSessionMapper
}

func NewUnitOfWork(db *gorm.DB, sessionMapper *mapper.InspectionSessionMapper) UnitOfWork {
	return &UnitOfWorkImpl{
		db:            db,
		sessionMapper: sessionMapper,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) InspectionSessionRepository() contract.InspectionSessionRepository {
	return implementation.NewInspectionSessionRepository(u.getDB(), u.sessionMapper)
}

func (u *UnitOfWorkImpl) OutcomeRepository() contract.OutcomeRepository {
	return implementation.NewOutcomeRepository(u.getDB())
}

func (u *UnitOfWorkImpl) UnitRepository() contract.UnitRepository {
	return implementation.NewUnitRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SubLocationRepository() contract.SubLocationRepository {
	return implementation.NewSubLocationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) EquipmentItemRepository() contract.EquipmentItemRepository {
	return implementation.NewEquipmentItemRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ConsumableStockRepository() contract.ConsumableStockRepository {
	return implementation.NewConsumableStockRepository(u.getDB())
}

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) IssueTicketRepository() contract.IssueTicketRepository {
	return implementation.NewIssueTicketRepository(u.getDB())
}

func (u *UnitOfWorkImpl) NotificationRepository() contract.NotificationRepository {
	return implementation.NewNotificationRepository(u.getDB())
}
