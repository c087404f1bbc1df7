package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// DB is the single-row query surface the repository needs, satisfied by both
// pgxpool.Pool and pgxmock.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Repository = (*PostgresProfileRepo)(nil)

type Repository interface {
	// GetProfile returns the user's identity plus their trip count. Aggregate
	// stats are computed on read; the count is never stored.
	GetProfile(ctx context.Context, userID string) (*types.ProfileResponse, error)
}

type PostgresProfileRepo struct {
	logger *slog.Logger
	db     DB
}

func NewPostgresProfileRepo(db DB, logger *slog.Logger) *PostgresProfileRepo {
	return &PostgresProfileRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresProfileRepo) GetProfile(ctx context.Context, userID string) (*types.ProfileResponse, error) {
	query := `
        SELECT u.id, u.username, u.email,
               (SELECT COUNT(*) FROM trips t WHERE t.user_id = u.id) AS trips_count
        FROM users u
        WHERE u.id = $1
    `
	var resp types.ProfileResponse
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&resp.User.ID, &resp.User.Username, &resp.User.Email, &resp.Stats.TripsCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		r.logger.ErrorContext(ctx, "Failed to get profile", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &resp, nil
}
