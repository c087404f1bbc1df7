package profile

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func TestMain(m *testing.M) {
	metrics.InitAppMetrics()
	m.Run()
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("UserWithTrips", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := NewPostgresProfileRepo(mockPool, slog.Default())

		mockPool.ExpectQuery(`SELECT u.id, u.username, u.email`).
			WithArgs("user123").
			WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "trips_count"}).
				AddRow("user123", "testuser", "test@example.com", 4))

		resp, err := repo.GetProfile(ctx, "user123")
		require.NoError(t, err)
		assert.Equal(t, "testuser", resp.User.Username)
		assert.Equal(t, 4, resp.Stats.TripsCount)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("UserWithoutTrips", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := NewPostgresProfileRepo(mockPool, slog.Default())

		mockPool.ExpectQuery(`SELECT u.id, u.username, u.email`).
			WithArgs("user456").
			WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "trips_count"}).
				AddRow("user456", "newbie", "new@example.com", 0))

		resp, err := repo.GetProfile(ctx, "user456")
		require.NoError(t, err)
		assert.Zero(t, resp.Stats.TripsCount)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("UnknownUser", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := NewPostgresProfileRepo(mockPool, slog.Default())

		mockPool.ExpectQuery(`SELECT u.id, u.username, u.email`).
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		_, err = repo.GetProfile(ctx, "ghost")
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
