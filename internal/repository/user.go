package repository

import (
	"context"

	"storefront-identity/internal/domain"
)

// UserFilter narrows Search results. Search is a case-insensitive substring
// match on name and email; Active filters by portal access when set.
type UserFilter struct {
	Search string
	Active *bool
}

// UserRepository defines persistence operations for User entities. Every read
// is authoritative; there is no caching layer in front of it.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter UserFilter) ([]domain.User, error)
}
