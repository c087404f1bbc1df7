package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ ImageService = (*UnsplashService)(nil)

type ImageService interface {
	// GetImageURL resolves a search query to one photo URL. A missing API key
	// or an empty result set is types.ErrNotFound, which the handler turns
	// into a 404 so clients fall back to their placeholder image.
	GetImageURL(ctx context.Context, query string) (string, error)
}

// UnsplashService proxies image search through the server so the Unsplash key
// never reaches the browser. Results are cached and concurrent lookups for the
// same query are collapsed into one upstream call.
type UnsplashService struct {
	logger     *slog.Logger
	httpClient *http.Client
	accessKey  string
	baseURL    string
	memo       *cache.Cache
	group      singleflight.Group
}

func NewUnsplashService(cacheTTL time.Duration, logger *slog.Logger) *UnsplashService {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &UnsplashService{
		logger:     logger,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		accessKey:  os.Getenv("UNSPLASH_ACCESS_KEY"),
		baseURL:    "https://api.unsplash.com",
		memo:       cache.New(cacheTTL, 10*time.Minute),
	}
}

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

func (s *UnsplashService) GetImageURL(ctx context.Context, query string) (string, error) {
	if s.accessKey == "" {
		return "", types.ErrNotFound
	}

	key := strings.ToLower(strings.TrimSpace(query))
	if v, found := s.memo.Get(key); found {
		if imageURL, ok := v.(string); ok {
			if imageURL == "" {
				// Cached no-result; don't hammer the API with known misses.
				return "", types.ErrNotFound
			}
			return imageURL, nil
		}
		s.memo.Delete(key)
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.search(ctx, query)
	})
	if err != nil {
		return "", err
	}

	imageURL := v.(string)
	s.memo.SetDefault(key, imageURL)
	if imageURL == "" {
		return "", types.ErrNotFound
	}
	return imageURL, nil
}

// search performs one upstream request and returns the first photo's regular
// URL, or "" when the search matched nothing.
func (s *UnsplashService) search(ctx context.Context, query string) (string, error) {
	endpoint := s.baseURL + "/search/photos?per_page=1&orientation=landscape&query=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build unsplash request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+s.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("unsplash request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.logger.WarnContext(ctx, "Unsplash answered non-200",
			slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", fmt.Errorf("unsplash answered status %d", resp.StatusCode)
	}

	var parsed unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode unsplash response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return "", nil
	}
	return parsed.Results[0].URLs.Regular, nil
}
