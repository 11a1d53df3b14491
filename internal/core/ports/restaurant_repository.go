package ports

import (
	"context"

	"github.com/br-labs/restaurant-api/internal/core/domain"
)

// ListRestaurantsFilter carries paging and sorting for a listing query.
// When OwnerID is non-empty the result is scoped to that owner.
type ListRestaurantsFilter struct {
	OwnerID   string
	SortField string // created_at, name or rating
	SortDesc  bool
	Page      int // 1-based
	Size      int // rows per page, capped by the service
}

// RestaurantRepository defines persistence operations for restaurants.
type RestaurantRepository interface {
	Create(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error)
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
	// List returns one page of restaurants matching filter plus the total
	// number of matching rows.
	List(ctx context.Context, filter ListRestaurantsFilter) ([]*domain.Restaurant, int64, error)
	Update(ctx context.Context, r *domain.Restaurant) error
	Delete(ctx context.Context, id string) error
}
