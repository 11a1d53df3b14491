package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/br-labs/restaurant-api/internal/api/metrics"
	"github.com/br-labs/restaurant-api/internal/core/domain"
	"github.com/br-labs/restaurant-api/internal/core/ports"
)

// RestaurantHandler handles HTTP requests for restaurant operations.
type RestaurantHandler struct {
	service ports.RestaurantService
}

func NewRestaurantHandler(service ports.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{service: service}
}

// List handles GET /api/restaurants. Publicly readable.
//
// @Summary      List restaurants
// @Tags         restaurants
// @Produce      json
// @Param        page  query     int     false  "Page number (1-based)"
// @Param        size  query     int     false  "Page size (max 100)"
// @Param        sort  query     string  false  "Sort field, optionally suffixed with ,desc (createdAt, name, rating)"
// @Success      200   {object}  pagedRestaurantsResponse
// @Router       /restaurants [get]
func (h *RestaurantHandler) List(c echo.Context) error {
	result, err := h.service.List(c.Request().Context(), listInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPagedResponse(result))
}

// ListMine handles GET /api/restaurants/my, scoped to the caller.
//
// @Summary      List the caller's restaurants
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int     false  "Page number (1-based)"
// @Param        size  query     int     false  "Page size (max 100)"
// @Param        sort  query     string  false  "Sort field, optionally suffixed with ,desc"
// @Success      200   {object}  pagedRestaurantsResponse
// @Failure      401   {object}  errorResponse
// @Router       /restaurants/my [get]
func (h *RestaurantHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListByOwner(c.Request().Context(), userID, listInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPagedResponse(result))
}

// Get handles GET /api/restaurants/:id. Publicly readable.
//
// @Summary      Get a restaurant by id
// @Tags         restaurants
// @Produce      json
// @Param        id   path      string  true  "Restaurant id"
// @Success      200  {object}  restaurantResponse
// @Failure      404  {object}  errorResponse
// @Router       /restaurants/{id} [get]
func (h *RestaurantHandler) Get(c echo.Context) error {
	restaurant, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "restaurant not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toResponse(restaurant))
}

// Create handles POST /api/restaurants. The authenticated caller becomes
// the owner.
//
// @Summary      Create a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      restaurantRequest  true  "Restaurant details"
// @Success      201   {object}  restaurantResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /restaurants [post]
func (h *RestaurantHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	req, err := bindRestaurant(c)
	if err != nil {
		return err
	}

	restaurant, err := h.service.Create(c.Request().Context(), req, userID)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Error()})
		}
		return err
	}

	metrics.RestaurantsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toResponse(restaurant))
}

// Update handles PUT /api/restaurants/:id. Full replace of the mutable
// fields; only the owner may update.
//
// @Summary      Update a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Restaurant id"
// @Param        body  body      restaurantRequest  true  "Restaurant details"
// @Success      200   {object}  restaurantResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /restaurants/{id} [put]
func (h *RestaurantHandler) Update(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	req, err := bindRestaurant(c)
	if err != nil {
		return err
	}

	restaurant, err := h.service.Update(c.Request().Context(), c.Param("id"), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRestaurantNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "restaurant not found"})
		case errors.Is(err, domain.ErrForbidden):
			metrics.RestaurantMutationsDenied.WithLabelValues("update").Inc()
			return c.JSON(http.StatusForbidden, errorResponse{Error: "access forbidden"})
		}
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, toResponse(restaurant))
}

// Delete handles DELETE /api/restaurants/:id. Owner or admin only.
//
// @Summary      Delete a restaurant
// @Tags         restaurants
// @Security     BearerAuth
// @Param        id  path  string  true  "Restaurant id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /restaurants/{id} [delete]
func (h *RestaurantHandler) Delete(c echo.Context) error {
	userID, roles, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID, roles); err != nil {
		switch {
		case errors.Is(err, domain.ErrRestaurantNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "restaurant not found"})
		case errors.Is(err, domain.ErrForbidden):
			metrics.RestaurantMutationsDenied.WithLabelValues("delete").Inc()
			return c.JSON(http.StatusForbidden, errorResponse{Error: "access forbidden"})
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// bindRestaurant decodes and validates the shared create/update body.
func bindRestaurant(c echo.Context) (ports.RestaurantInput, error) {
	var req restaurantRequest
	if err := c.Bind(&req); err != nil {
		return ports.RestaurantInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.RestaurantInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return ports.RestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Rating:      req.Rating,
	}, nil
}

func listInput(c echo.Context) ports.ListRestaurantsInput {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	return ports.ListRestaurantsInput{
		Page: page,
		Size: size,
		Sort: c.QueryParam("sort"),
	}
}

func toResponse(r *domain.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Rating:      r.Rating,
		OwnerName:   r.OwnerName,
		CreatedAt:   r.CreatedAt,
	}
}

func toPagedResponse(result *ports.ListRestaurantsResult) pagedRestaurantsResponse {
	items := make([]restaurantResponse, 0, len(result.Items))
	for _, r := range result.Items {
		items = append(items, toResponse(r))
	}
	return pagedRestaurantsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Size:       result.Size,
		TotalPages: result.TotalPages,
	}
}
