package trips

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// Ensure implementation satisfies the interface
var _ TripsService = (*ServiceImpl)(nil)

// TripsService defines the business logic contract for trip operations.
type TripsService interface {
	CreateTrip(ctx context.Context, userID uuid.UUID, req types.CreateTripRequest) (*types.Trip, error)
	GetTripsByUser(ctx context.Context, userID uuid.UUID) ([]*types.Trip, error)
	// GetTrip resolves visibility: public trips are readable by anyone,
	// private trips only by their owner. callerID is nil for anonymous reads.
	GetTrip(ctx context.Context, tripID uuid.UUID, callerID *uuid.UUID) (*types.Trip, bool, error)
	UpdateSharing(ctx context.Context, tripID, callerID uuid.UUID, isPublic bool) (*types.Trip, error)
	DeleteTrip(ctx context.Context, tripID, callerID uuid.UUID) error
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *ServiceImpl) CreateTrip(ctx context.Context, userID uuid.UUID, req types.CreateTripRequest) (*types.Trip, error) {
	return s.repo.CreateTrip(ctx, userID, req)
}

func (s *ServiceImpl) GetTripsByUser(ctx context.Context, userID uuid.UUID) ([]*types.Trip, error) {
	return s.repo.GetTripsByUser(ctx, userID)
}

// GetTrip returns the trip and whether the caller owns it. A private trip
// read by anyone but the owner fails with ErrForbidden rather than
// pretending the trip doesn't exist.
func (s *ServiceImpl) GetTrip(ctx context.Context, tripID uuid.UUID, callerID *uuid.UUID) (*types.Trip, bool, error) {
	trip, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, false, err
	}

	isOwner := callerID != nil && *callerID == trip.UserID
	if !trip.IsPublic && !isOwner {
		return nil, false, types.ErrForbidden
	}
	return trip, isOwner, nil
}

// UpdateSharing is owner-only. The repository's ownership predicate makes a
// foreign trip look absent, so distinguish forbidden from missing by checking
// the row first.
func (s *ServiceImpl) UpdateSharing(ctx context.Context, tripID, callerID uuid.UUID, isPublic bool) (*types.Trip, error) {
	trip, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.UserID != callerID {
		return nil, types.ErrForbidden
	}
	return s.repo.UpdateSharing(ctx, tripID, callerID, isPublic)
}

func (s *ServiceImpl) DeleteTrip(ctx context.Context, tripID, callerID uuid.UUID) error {
	return s.repo.DeleteTrip(ctx, tripID, callerID)
}
