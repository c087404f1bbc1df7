package itinerary

import (
	"regexp"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// ResultCache memoizes generated itineraries so an identical repeated request
// within the TTL does not invoke the model again. Kept behind an interface so
// a shared store can replace the in-process map without touching call sites.
type ResultCache interface {
	Get(key string) (*types.Itinerary, bool)
	Set(key string, it *types.Itinerary)
}

type memoCache struct {
	c *cache.Cache
}

func NewResultCache(ttl time.Duration) ResultCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &memoCache{c: cache.New(ttl, 10*time.Minute)}
}

func (m *memoCache) Get(key string) (*types.Itinerary, bool) {
	v, found := m.c.Get(key)
	if !found {
		return nil, false
	}
	it, ok := v.(*types.Itinerary)
	if !ok {
		// Corrupt entry counts as a miss.
		m.c.Delete(key)
		return nil, false
	}
	return it, true
}

func (m *memoCache) Set(key string, it *types.Itinerary) {
	m.c.SetDefault(key, it)
}

var travelDateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// memoKey is destination plus the travel date, with a sentinel when the
// preferences carry no date.
func memoKey(destination, preferences string) string {
	date := travelDateRe.FindString(preferences)
	if date == "" {
		date = "any"
	}
	return strings.ToLower(strings.TrimSpace(destination)) + "|" + date
}
