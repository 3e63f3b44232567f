package repository

import (
	"context"

	"storefront-identity/internal/domain"
)

// ActivityRepository is the append-only store of identity audit events.
// Events are never updated or deleted once written.
type ActivityRepository interface {
	Init(ctx context.Context) error
	Append(ctx context.Context, event *domain.ActivityEvent) error
	List(ctx context.Context) ([]domain.ActivityEvent, error)
}
