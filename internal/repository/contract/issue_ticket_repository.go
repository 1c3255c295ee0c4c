package contract

import (
	"context"

	"firecheck-be/internal/entity"
	"firecheck-be/internal/repository/specification"
)

type IssueTicketRepository interface {
	Create(ctx context.Context, ticket *entity.IssueTicket) error
	Update(ctx context.Context, ticket *entity.IssueTicket) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IssueTicket, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IssueTicket, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
