package domain

import (
	"errors"
	"time"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")
var ErrForbidden = errors.New("access forbidden")

const (
	MaxNameLength     = 200
	MaxLocationLength = 300
	MinRating         = 1
	MaxRating         = 5
)

// Restaurant is the owned resource managed through the API. OwnerID is
// fixed at creation and never changes afterwards.
type Restaurant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	Rating      *int      `json:"rating,omitempty"`
	OwnerID     string    `json:"owner_id"`
	OwnerName   string    `json:"owner_name"`
	CreatedAt   time.Time `json:"created_at"`
}
