package images

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func newTestService(t *testing.T, upstream http.HandlerFunc) (*UnsplashService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	return &UnsplashService{
		logger:     slog.Default(),
		httpClient: srv.Client(),
		accessKey:  "test-key",
		baseURL:    srv.URL,
		memo:       cache.New(time.Minute, time.Minute),
	}, srv
}

func TestGetImageURL(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingKeyIsNotFound", func(t *testing.T) {
		svc := &UnsplashService{
			logger: slog.Default(),
			memo:   cache.New(time.Minute, time.Minute),
		}
		_, err := svc.GetImageURL(ctx, "lisbon tram")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("ReturnsFirstRegularURL", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Client-ID test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "lisbon tram", r.URL.Query().Get("query"))
			w.Write([]byte(`{"results": [{"urls": {"regular": "https://images.example/tram.jpg"}}]}`))
		})

		imageURL, err := svc.GetImageURL(ctx, "lisbon tram")
		require.NoError(t, err)
		assert.Equal(t, "https://images.example/tram.jpg", imageURL)
	})

	t.Run("EmptyResultsIsNotFound", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": []}`))
		})

		_, err := svc.GetImageURL(ctx, "zxqj")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("RepeatQueryServedFromCache", func(t *testing.T) {
		var calls atomic.Int32
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Write([]byte(`{"results": [{"urls": {"regular": "https://images.example/a.jpg"}}]}`))
		})

		_, err := svc.GetImageURL(ctx, "Lisbon")
		require.NoError(t, err)
		_, err = svc.GetImageURL(ctx, "  lisbon ")
		require.NoError(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("NoResultIsCachedToo", func(t *testing.T) {
		var calls atomic.Int32
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Write([]byte(`{"results": []}`))
		})

		_, err := svc.GetImageURL(ctx, "zxqj")
		assert.ErrorIs(t, err, types.ErrNotFound)
		_, err = svc.GetImageURL(ctx, "zxqj")
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("UpstreamErrorIsNotCached", func(t *testing.T) {
		var calls atomic.Int32
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusForbidden)
		})

		_, err := svc.GetImageURL(ctx, "lisbon")
		assert.Error(t, err)
		_, err = svc.GetImageURL(ctx, "lisbon")
		assert.Error(t, err)
		// Errors must not poison the cache; each attempt reaches upstream.
		assert.Equal(t, int32(2), calls.Load())
	})
}
