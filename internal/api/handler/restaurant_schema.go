package handler

import "time"

// errorResponse mirrors the envelope produced by the API error handler;
// declared here for the swagger annotations.
type errorResponse struct {
	Error string `json:"error"`
}

// restaurantRequest is the body for create and update. The owner is
// never part of the payload; it always comes from the bearer token.
type restaurantRequest struct {
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location"    validate:"omitempty,max=300"`
	Rating      *int   `json:"rating"      validate:"omitempty,min=1,max=5"`
}

type restaurantResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	Rating      *int      `json:"rating,omitempty"`
	OwnerName   string    `json:"owner_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type pagedRestaurantsResponse struct {
	Items      []restaurantResponse `json:"items"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	Size       int                  `json:"size"`
	TotalPages int                  `json:"total_pages"`
}
