package types

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a persisted, owned record wrapping a saved itinerary plus sharing
// metadata. Only the owner may mutate or delete it; anyone may read it while
// is_public is true.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Destination string    `json:"destination"`
	Title       string    `json:"title"`
	Itinerary   Itinerary `json:"itinerary"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateTripRequest is the body of POST /api/trips. Any client-supplied
// sharing flag is ignored: trips are always created private.
type CreateTripRequest struct {
	Destination string    `json:"destination" validate:"required,max=200"`
	Title       string    `json:"title" validate:"required,max=200"`
	Itinerary   Itinerary `json:"itinerary" validate:"required"`
}

type UpdateTripSharingRequest struct {
	IsPublic *bool `json:"is_public" validate:"required"`
}

type DeleteTripRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

type TripResponse struct {
	Trip *Trip `json:"trip"`
}

type TripDetailResponse struct {
	Trip    *Trip `json:"trip"`
	IsOwner bool  `json:"isOwner"`
}

type TripListResponse struct {
	Trips []*Trip `json:"trips"`
}
