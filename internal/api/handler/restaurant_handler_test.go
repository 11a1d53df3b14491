package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/br-labs/restaurant-api/internal/core/domain"
	"github.com/br-labs/restaurant-api/internal/core/ports"
)

type stubRestaurantService struct {
	createFn      func(ctx context.Context, input ports.RestaurantInput, ownerID string) (*domain.Restaurant, error)
	getFn         func(ctx context.Context, id string) (*domain.Restaurant, error)
	listFn        func(ctx context.Context, input ports.ListRestaurantsInput) (*ports.ListRestaurantsResult, error)
	listByOwnerFn func(ctx context.Context, ownerID string, input ports.ListRestaurantsInput) (*ports.ListRestaurantsResult, error)
	updateFn      func(ctx context.Context, id string, input ports.RestaurantInput, userID string) (*domain.Restaurant, error)
	deleteFn      func(ctx context.Context, id string, userID string, roles []string) error
}

func (s *stubRestaurantService) Create(ctx context.Context, input ports.RestaurantInput, ownerID string) (*domain.Restaurant, error) {
	return s.createFn(ctx, input, ownerID)
}

func (s *stubRestaurantService) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	return s.getFn(ctx, id)
}

func (s *stubRestaurantService) List(ctx context.Context, input ports.ListRestaurantsInput) (*ports.ListRestaurantsResult, error) {
	return s.listFn(ctx, input)
}

func (s *stubRestaurantService) ListByOwner(ctx context.Context, ownerID string, input ports.ListRestaurantsInput) (*ports.ListRestaurantsResult, error) {
	return s.listByOwnerFn(ctx, ownerID, input)
}

func (s *stubRestaurantService) Update(ctx context.Context, id string, input ports.RestaurantInput, userID string) (*domain.Restaurant, error) {
	return s.updateFn(ctx, id, input, userID)
}

func (s *stubRestaurantService) Delete(ctx context.Context, id string, userID string, roles []string) error {
	return s.deleteFn(ctx, id, userID, roles)
}

func sampleRestaurant(owner string) *domain.Restaurant {
	rating := 4
	return &domain.Restaurant{
		ID:          "rest-1",
		Name:        "Casa da Pizza",
		Description: "Wood-fired pizza",
		Location:    "Rua Augusta 100",
		Rating:      &rating,
		OwnerID:     owner,
		OwnerName:   "Alice",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestRestaurantHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubRestaurantService{
		createFn: func(ctx context.Context, input ports.RestaurantInput, ownerID string) (*domain.Restaurant, error) {
			if ownerID != "user-1" {
				t.Fatalf("owner must come from the token, got %q", ownerID)
			}
			if input.Name != "Casa da Pizza" {
				t.Fatalf("unexpected name: %q", input.Name)
			}
			return sampleRestaurant(ownerID), nil
		},
	}
	handler := NewRestaurantHandler(stub)

	body := strings.NewReader(`{"name":"Casa da Pizza","description":"Wood-fired pizza","location":"Rua Augusta 100","rating":4}`)
	req := httptest.NewRequest(http.MethodPost, "/api/restaurants", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user-1")
	c.Set("roles", []string{domain.RoleUser})

	resolve(e, c, handler.Create(c))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "rest-1" || resp["owner_name"] != "Alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestRestaurantHandler_Create_Unauthenticated(t *testing.T) {
	e := newTestEcho()
	stub := &stubRestaurantService{
		createFn: func(ctx context.Context, input ports.RestaurantInput, ownerID string) (*domain.Restaurant, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewRestaurantHandler(stub)

	body := strings.NewReader(`{"name":"X","description":"Y"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/restaurants", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	resolve(e, c, handler.Create(c))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRestaurantHandler_Create_InvalidRating(t *testing.T) {
	e := newTestEcho()
	stub := &stubRestaurantService{
		createFn: func(ctx context.Context, input ports.RestaurantInput, ownerID string) (*domain.Restaurant, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewRestaurantHandler(stub)

	for _, body := range []string{
		`{"name":"X","description":"Y","rating":0}`,
		`{"name":"X","description":"Y","rating":10}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/restaurants", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("user_id", "user-1")

		resolve(e, c, handler.Create(c))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, rec.Code)
		}
	}
}

func TestRestaurantHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubRestaurantService{
		getFn: func(ctx context.Context, id string) (*domain.Restaurant, error) {
			return nil, domain.ErrRestaurantNotFound
		},
	}
	handler := NewRestaurantHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants/99999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99999")

	resolve(e, c, handler.Get(c))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRestaurantHandler_Update_Forbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubRestaurantService{
		updateFn: func(ctx context.Context, id string, input ports.RestaurantInput, userID string) (*domain.Restaurant, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewRestaurantHandler(stub)

	body := strings.NewReader(`{"name":"New Name","description":"New description"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/restaurants/rest-1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("rest-1")
	c.Set("user_id", "user-2")

	resolve(e, c, handler.Update(c))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRestaurantHandler_Delete_Admin(t *testing.T) {
	e := newTestEcho()
	stub := &stubRestaurantService{
		deleteFn: func(ctx context.Context, id string, userID string, roles []string) error {
			if id != "rest-1" || userID != "admin-1" {
				t.Fatalf("unexpected args: %s %s", id, userID)
			}
			if !domain.HasRole(roles, domain.RoleAdmin) {
				t.Fatalf("expected admin role to be forwarded, got %v", roles)
			}
			return nil
		},
	}
	handler := NewRestaurantHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/restaurants/rest-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("rest-1")
	c.Set("user_id", "admin-1")
	c.Set("roles", []string{domain.RoleUser, domain.RoleAdmin})

	resolve(e, c, handler.Delete(c))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestRestaurantHandler_Delete_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubRestaurantService{
		deleteFn: func(ctx context.Context, id string, userID string, roles []string) error {
			return domain.ErrRestaurantNotFound
		},
	}
	handler := NewRestaurantHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/restaurants/99999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99999")
	c.Set("user_id", "user-1")

	resolve(e, c, handler.Delete(c))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRestaurantHandler_List_Paging(t *testing.T) {
	e := newTestEcho()
	stub := &stubRestaurantService{
		listFn: func(ctx context.Context, input ports.ListRestaurantsInput) (*ports.ListRestaurantsResult, error) {
			if input.Page != 2 || input.Size != 5 || input.Sort != "name,desc" {
				t.Fatalf("query params not forwarded: %+v", input)
			}
			return &ports.ListRestaurantsResult{
				Items:      []*domain.Restaurant{sampleRestaurant("user-1")},
				Total:      6,
				Page:       2,
				Size:       5,
				TotalPages: 2,
			}, nil
		},
	}
	handler := NewRestaurantHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants?page=2&size=5&sort=name,desc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	resolve(e, c, handler.List(c))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp pagedRestaurantsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 6 || resp.Page != 2 || resp.TotalPages != 2 || len(resp.Items) != 1 {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestRestaurantHandler_ListMine_ScopedToCaller(t *testing.T) {
	e := newTestEcho()
	stub := &stubRestaurantService{
		listByOwnerFn: func(ctx context.Context, ownerID string, input ports.ListRestaurantsInput) (*ports.ListRestaurantsResult, error) {
			if ownerID != "user-1" {
				t.Fatalf("expected owner scope user-1, got %q", ownerID)
			}
			return &ports.ListRestaurantsResult{Items: nil, Total: 0, Page: 1, Size: 10}, nil
		},
	}
	handler := NewRestaurantHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants/my", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user-1")
	c.Set("roles", []string{domain.RoleUser})

	resolve(e, c, handler.ListMine(c))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRestaurantHandler_ListMine_Unauthenticated(t *testing.T) {
	e := newTestEcho()
	stub := &stubRestaurantService{
		listByOwnerFn: func(ctx context.Context, ownerID string, input ports.ListRestaurantsInput) (*ports.ListRestaurantsResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewRestaurantHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants/my", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	resolve(e, c, handler.ListMine(c))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
