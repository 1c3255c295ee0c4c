package unitofwork

import (
	"context"

	"firecheck-be/internal/mapper"

	"gorm.io/gorm"
)

type RepositoryFactoryImpl struct {
	db            *gorm.DB
	sessionMapper *mapper.InspectionSessionMapper
}

// NewRepositoryFactory builds per-request units of work over the shared DB.
// The session mapper is shared so rehydrated sessions carry the configured
// staleness policies.
func NewRepositoryFactory(db *gorm.DB, sessionMapper *mapper.InspectionSessionMapper) RepositoryFactory {
	return &RepositoryFactoryImpl{
		db:            db,
		sessionMapper: sessionMapper,
	}
}

func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	// UoW is short lived per request; the context is used when calling Begin().
	return NewUnitOfWork(f.db, f.sessionMapper)
}
