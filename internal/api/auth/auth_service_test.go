package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/config"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func TestMain(m *testing.M) {
	metrics.InitAppMetrics()
	m.Run()
}

type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) CreateUser(ctx context.Context, username, email, passwordHash string) (*types.UserAuth, error) {
	args := m.Called(ctx, username, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func (m *MockAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.UserAuth, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func (m *MockAuthRepo) GetUserByID(ctx context.Context, userID string) (*types.UserAuth, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func (m *MockAuthRepo) StoreRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, token, expiresAt)
	return args.Error(0)
}

func (m *MockAuthRepo) GetRefreshToken(ctx context.Context, token string) (string, time.Time, *time.Time, error) {
	args := m.Called(ctx, token)
	var revokedAt *time.Time
	if args.Get(2) != nil {
		revokedAt = args.Get(2).(*time.Time)
	}
	return args.String(0), args.Get(1).(time.Time), revokedAt, args.Error(3)
}

func (m *MockAuthRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:  "test-access-secret",
		Issuer:     "test-issuer",
		Audience:   "test-audience",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

func TestLogin(t *testing.T) {
	logger := slog.Default()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewServiceImpl(mockRepo, testJWTConfig(), logger)

		ctx := context.Background()
		email := "test@example.com"
		password := "password123"
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		user := &types.UserAuth{
			ID:       "user123",
			Username: "testuser",
			Email:    email,
			Password: string(hashedPassword),
		}

		mockRepo.On("GetUserByEmail", ctx, email).Return(user, nil).Once()
		mockRepo.On("StoreRefreshToken", ctx, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

		resp, err := service.Login(ctx, LoginRequest{Email: email, Password: password})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "user123", resp.User.ID)
		mockRepo.AssertExpectations(t)

		// The access token must verify with the configured key and carry the
		// user as subject.
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-access-secret"), nil
		})
		require.NoError(t, err)
		assert.True(t, token.Valid)
		assert.Equal(t, "user123", claims.UserID)
		assert.Equal(t, "test-issuer", claims.Issuer)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewServiceImpl(mockRepo, testJWTConfig(), logger)

		ctx := context.Background()
		mockRepo.On("GetUserByEmail", ctx, "nobody@example.com").Return(nil, types.ErrNotFound).Once()

		resp, err := service.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "password123"})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("InvalidPassword", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewServiceImpl(mockRepo, testJWTConfig(), logger)

		ctx := context.Background()
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correctpassword"), bcrypt.DefaultCost)
		user := &types.UserAuth{ID: "user123", Email: "test@example.com", Password: string(hashedPassword)}

		mockRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()

		resp, err := service.Login(ctx, LoginRequest{Email: user.Email, Password: "wrongpassword"})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})
}

func TestRegister(t *testing.T) {
	logger := slog.Default()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewServiceImpl(mockRepo, testJWTConfig(), logger)

		ctx := context.Background()
		user := &types.UserAuth{ID: "new-user-id", Username: "newuser", Email: "new@example.com"}

		// The stored hash is opaque, but it must never be the plaintext.
		mockRepo.On("CreateUser", ctx, "newuser", "new@example.com", mock.MatchedBy(func(hash string) bool {
			return hash != "password123" && hash != ""
		})).Return(user, nil).Once()
		mockRepo.On("StoreRefreshToken", ctx, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

		resp, err := service.Register(ctx, RegisterRequest{Username: "newuser", Email: "new@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, "new-user-id", resp.User.ID)
		assert.NotEmpty(t, resp.AccessToken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("EmailExists", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewServiceImpl(mockRepo, testJWTConfig(), logger)

		ctx := context.Background()
		mockRepo.On("CreateUser", ctx, "existing", "existing@example.com", mock.AnythingOfType("string")).
			Return(nil, types.ErrConflict).Once()

		resp, err := service.Register(ctx, RegisterRequest{Username: "existing", Email: "existing@example.com", Password: "password123"})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, types.ErrConflict)
		mockRepo.AssertExpectations(t)
	})
}

func TestRefresh(t *testing.T) {
	logger := slog.Default()
	ctx := context.Background()

	t.Run("RotatesToken", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewServiceImpl(mockRepo, testJWTConfig(), logger)

		oldToken := "old-refresh-token"
		user := &types.UserAuth{ID: "user123", Username: "testuser", Email: "test@example.com"}

		mockRepo.On("GetRefreshToken", ctx, oldToken).
			Return(user.ID, time.Now().Add(time.Hour), nil, nil).Once()
		mockRepo.On("GetUserByID", ctx, user.ID).Return(user, nil).Once()
		mockRepo.On("StoreRefreshToken", ctx, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
		mockRepo.On("RevokeRefreshToken", ctx, oldToken).Return(nil).Once()

		resp, err := service.Refresh(ctx, oldToken)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEqual(t, oldToken, resp.RefreshToken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewServiceImpl(mockRepo, testJWTConfig(), logger)

		mockRepo.On("GetRefreshToken", ctx, "stale").
			Return("user123", time.Now().Add(-time.Hour), nil, nil).Once()

		resp, err := service.Refresh(ctx, "stale")
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("RevokedToken", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewServiceImpl(mockRepo, testJWTConfig(), logger)

		revokedAt := time.Now().Add(-time.Minute)
		mockRepo.On("GetRefreshToken", ctx, "revoked").
			Return("user123", time.Now().Add(time.Hour), &revokedAt, nil).Once()

		resp, err := service.Refresh(ctx, "revoked")
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := NewServiceImpl(mockRepo, testJWTConfig(), logger)

		mockRepo.On("GetRefreshToken", ctx, "unknown").
			Return("", time.Time{}, nil, types.ErrNotFound).Once()

		resp, err := service.Refresh(ctx, "unknown")
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})
}
