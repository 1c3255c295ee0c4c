package unitofwork

import (
	"context"

	"firecheck-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	InspectionSessionRepository() contract.InspectionSessionRepository
	OutcomeRepository() contract.OutcomeRepository

	UnitRepository() contract.UnitRepository
	SubLocationRepository() contract.SubLocationRepository
	EquipmentItemRepository() contract.EquipmentItemRepository
	ConsumableStockRepository() contract.ConsumableStockRepository

	UserRepository() contract.UserRepository
	IssueTicketRepository() contract.IssueTicketRepository
	NotificationRepository() contract.NotificationRepository
}
