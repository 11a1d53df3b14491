package ports

import (
	"context"

	"github.com/br-labs/restaurant-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// RoleRepository resolves role rows by name, creating them on first use.
type RoleRepository interface {
	// FindOrCreate returns the role named name, inserting it when absent.
	// Concurrent first-time creation is resolved by the store's unique
	// constraint: a losing insert is retried as a lookup.
	FindOrCreate(ctx context.Context, name string) (*domain.Role, error)
}
