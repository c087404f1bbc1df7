package trips

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// DB is the slice of pgxpool.Pool the repository needs. pgxmock satisfies it
// too, which keeps the queries testable without a live database.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Repository = (*PostgresTripsRepo)(nil)

type Repository interface {
	// CreateTrip inserts a new trip for the owner. Trips are always created
	// private; any sharing flag in the request never reaches this layer.
	CreateTrip(ctx context.Context, userID uuid.UUID, req types.CreateTripRequest) (*types.Trip, error)

	// GetTripsByUser returns all trips owned by the user, newest first.
	GetTripsByUser(ctx context.Context, userID uuid.UUID) ([]*types.Trip, error)

	// GetTrip returns a trip by id regardless of visibility.
	// Returns types.ErrNotFound when no such row exists.
	GetTrip(ctx context.Context, tripID uuid.UUID) (*types.Trip, error)

	// UpdateSharing flips is_public on a trip owned by userID.
	// Returns types.ErrNotFound when the row doesn't exist for that owner.
	UpdateSharing(ctx context.Context, tripID, userID uuid.UUID, isPublic bool) (*types.Trip, error)

	// DeleteTrip removes the trip if and only if userID owns it. A foreign or
	// unknown id matches zero rows and is NOT an error: the ownership
	// predicate makes the delete an idempotent no-op by policy.
	DeleteTrip(ctx context.Context, tripID, userID uuid.UUID) error
}

type PostgresTripsRepo struct {
	logger *slog.Logger
	db     DB
}

func NewPostgresTripsRepo(db DB, logger *slog.Logger) *PostgresTripsRepo {
	return &PostgresTripsRepo{
		logger: logger,
		db:     db,
	}
}

const tripColumns = `id, user_id, destination, title, itinerary, is_public, created_at`

func scanTrip(row pgx.Row) (*types.Trip, error) {
	var trip types.Trip
	var itineraryJSON []byte
	err := row.Scan(
		&trip.ID, &trip.UserID, &trip.Destination, &trip.Title,
		&itineraryJSON, &trip.IsPublic, &trip.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itineraryJSON, &trip.Itinerary); err != nil {
		return nil, fmt.Errorf("failed to decode stored itinerary: %w", err)
	}
	return &trip, nil
}

func (r *PostgresTripsRepo) CreateTrip(ctx context.Context, userID uuid.UUID, req types.CreateTripRequest) (*types.Trip, error) {
	ctx, span := otel.Tracer("TripsRepo").Start(ctx, "CreateTrip", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "trips"),
	))
	defer span.End()

	itineraryJSON, err := json.Marshal(req.Itinerary)
	if err != nil {
		return nil, fmt.Errorf("failed to encode itinerary: %w", err)
	}

	query := `
        INSERT INTO trips (user_id, destination, title, itinerary, is_public)
        VALUES ($1, $2, $3, $4, FALSE)
        RETURNING ` + tripColumns
	trip, err := scanTrip(r.db.QueryRow(ctx, query, userID, req.Destination, req.Title, itineraryJSON))
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		r.logger.ErrorContext(ctx, "Failed to create trip", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}
	return trip, nil
}

func (r *PostgresTripsRepo) GetTripsByUser(ctx context.Context, userID uuid.UUID) ([]*types.Trip, error) {
	query := `
        SELECT ` + tripColumns + `
        FROM trips
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		r.logger.ErrorContext(ctx, "Failed to get user trips", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get user trips: %w", err)
	}
	defer rows.Close()

	var trips []*types.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan trip", slog.Any("error", err))
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating trip rows", slog.Any("error", err))
		return nil, fmt.Errorf("error iterating trip rows: %w", err)
	}
	return trips, nil
}

func (r *PostgresTripsRepo) GetTrip(ctx context.Context, tripID uuid.UUID) (*types.Trip, error) {
	query := `
        SELECT ` + tripColumns + `
        FROM trips
        WHERE id = $1
    `
	trip, err := scanTrip(r.db.QueryRow(ctx, query, tripID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		r.logger.ErrorContext(ctx, "Failed to get trip", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}

func (r *PostgresTripsRepo) UpdateSharing(ctx context.Context, tripID, userID uuid.UUID, isPublic bool) (*types.Trip, error) {
	query := `
        UPDATE trips
        SET is_public = $1
        WHERE id = $2 AND user_id = $3
        RETURNING ` + tripColumns
	trip, err := scanTrip(r.db.QueryRow(ctx, query, isPublic, tripID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		r.logger.ErrorContext(ctx, "Failed to update trip sharing", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update trip sharing: %w", err)
	}
	return trip, nil
}

func (r *PostgresTripsRepo) DeleteTrip(ctx context.Context, tripID, userID uuid.UUID) error {
	query := `DELETE FROM trips WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, tripID, userID)
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		r.logger.ErrorContext(ctx, "Failed to delete trip", slog.Any("error", err))
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if result.RowsAffected() == 0 {
		// Zero rows means the id doesn't exist or belongs to someone else.
		// Both are reported as success; see Repository.DeleteTrip.
		r.logger.DebugContext(ctx, "Delete matched no owned trip",
			slog.String("trip_id", tripID.String()), slog.String("user_id", userID.String()))
	}
	return nil
}
