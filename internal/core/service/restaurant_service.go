package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/br-labs/restaurant-api/internal/core/domain"
	"github.com/br-labs/restaurant-api/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// RestaurantService implements the restaurant use cases. Reads are
// public; create, update and delete require an authenticated caller and
// enforce the ownership policy after the resource has been resolved, so
// a missing resource always reports not-found before forbidden.
type RestaurantService struct {
	repo   ports.RestaurantRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewRestaurantService(repo ports.RestaurantRepository, users ports.UserRepository, logger zerolog.Logger) *RestaurantService {
	return &RestaurantService{repo: repo, users: users, logger: logger}
}

// Create persists a new restaurant owned by ownerID. Any client-supplied
// owner is ignored; ownership is fixed here and immutable afterwards.
func (s *RestaurantService) Create(ctx context.Context, input ports.RestaurantInput, ownerID string) (*domain.Restaurant, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	restaurant := &domain.Restaurant{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Location:    strings.TrimSpace(input.Location),
		Rating:      input.Rating,
		OwnerID:     owner.ID,
		OwnerName:   owner.Name,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, restaurant)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create restaurant")
		return nil, err
	}

	s.logger.Info().Str("restaurant_id", created.ID).Str("owner_id", ownerID).Msg("restaurant created")
	return created, nil
}

// Get returns one restaurant. Publicly readable.
func (s *RestaurantService) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns one page of all restaurants, ordered by creation time
// unless the sort parameter says otherwise. Publicly readable.
func (s *RestaurantService) List(ctx context.Context, input ports.ListRestaurantsInput) (*ports.ListRestaurantsResult, error) {
	return s.list(ctx, "", input)
}

// ListByOwner returns one page of restaurants owned by ownerID.
func (s *RestaurantService) ListByOwner(ctx context.Context, ownerID string, input ports.ListRestaurantsInput) (*ports.ListRestaurantsResult, error) {
	return s.list(ctx, ownerID, input)
}

func (s *RestaurantService) list(ctx context.Context, ownerID string, input ports.ListRestaurantsInput) (*ports.ListRestaurantsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	size := input.Size
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	field, desc := parseSort(input.Sort)

	items, total, err := s.repo.List(ctx, ports.ListRestaurantsFilter{
		OwnerID:   ownerID,
		SortField: field,
		SortDesc:  desc,
		Page:      page,
		Size:      size,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &ports.ListRestaurantsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	}, nil
}

// Update replaces all mutable fields of a restaurant. Only the owner may
// update; admin roles grant no override here.
func (s *RestaurantService) Update(ctx context.Context, id string, input ports.RestaurantInput, userID string) (*domain.Restaurant, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	restaurant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanModify(restaurant.OwnerID, userID) {
		return nil, domain.ErrForbidden
	}

	restaurant.Name = strings.TrimSpace(input.Name)
	restaurant.Description = strings.TrimSpace(input.Description)
	restaurant.Location = strings.TrimSpace(input.Location)
	restaurant.Rating = input.Rating

	if err := s.repo.Update(ctx, restaurant); err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", id).Msg("failed to update restaurant")
		return nil, err
	}

	return restaurant, nil
}

// Delete removes a restaurant. The owner may always delete; admins may
// delete restaurants they do not own.
func (s *RestaurantService) Delete(ctx context.Context, id string, userID string, roles []string) error {
	restaurant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !domain.CanDelete(restaurant.OwnerID, userID, roles) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", id).Msg("failed to delete restaurant")
		return err
	}

	s.logger.Info().Str("restaurant_id", id).Str("user_id", userID).Msg("restaurant deleted")
	return nil
}

// validateInput enforces the field rules shared by create and update.
func validateInput(input ports.RestaurantInput) error {
	fields := map[string]string{}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		fields["name"] = "is required"
	} else if len(name) > domain.MaxNameLength {
		fields["name"] = "must be at most 200 characters"
	}

	if strings.TrimSpace(input.Description) == "" {
		fields["description"] = "is required"
	}

	if len(strings.TrimSpace(input.Location)) > domain.MaxLocationLength {
		fields["location"] = "must be at most 300 characters"
	}

	if input.Rating != nil && (*input.Rating < domain.MinRating || *input.Rating > domain.MaxRating) {
		fields["rating"] = "must be between 1 and 5"
	}

	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}

// parseSort maps the API sort parameter ("createdAt", "name,desc", ...)
// to a whitelisted store field. Unknown fields fall back to creation time.
func parseSort(sort string) (field string, desc bool) {
	name := sort
	if i := strings.IndexByte(sort, ','); i >= 0 {
		name = sort[:i]
		desc = strings.EqualFold(strings.TrimSpace(sort[i+1:]), "desc")
	}

	switch strings.TrimSpace(name) {
	case "name":
		return "name", desc
	case "rating":
		return "rating", desc
	default:
		return "created_at", desc
	}
}
