package ports

import (
	"context"

	"github.com/br-labs/restaurant-api/internal/core/domain"
)

// RestaurantInput carries the client-supplied fields for create and
// update. The owner never comes from the client; it is always the
// authenticated caller.
type RestaurantInput struct {
	Name        string
	Description string
	Location    string
	Rating      *int
}

// ListRestaurantsInput carries query parameters for the list endpoints.
type ListRestaurantsInput struct {
	Page int
	Size int
	Sort string // field name with optional ",desc" suffix
}

// ListRestaurantsResult is one page of restaurants.
type ListRestaurantsResult struct {
	Items      []*domain.Restaurant
	Total      int64
	Page       int
	Size       int
	TotalPages int
}

// RestaurantService defines the restaurant use cases. Reads are public;
// mutations require an authenticated caller and are ownership-checked.
type RestaurantService interface {
	Create(ctx context.Context, input RestaurantInput, ownerID string) (*domain.Restaurant, error)
	Get(ctx context.Context, id string) (*domain.Restaurant, error)
	List(ctx context.Context, input ListRestaurantsInput) (*ListRestaurantsResult, error)
	ListByOwner(ctx context.Context, ownerID string, input ListRestaurantsInput) (*ListRestaurantsResult, error)
	Update(ctx context.Context, id string, input RestaurantInput, userID string) (*domain.Restaurant, error)
	Delete(ctx context.Context, id string, userID string, roles []string) error
}
