package forecast

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/akosarev/weather-forecast/internal/cache"
	"github.com/akosarev/weather-forecast/internal/logger"
)

// Service orchestrates cache lookup, upstream fetch, aggregation and cache
// write for one place at a time. It holds no state between calls beyond the
// cache's side effects.
type Service struct {
	cache  *cache.Cache
	client Client
}

// NewService creates a Service over the given cache and upstream client.
func NewService(c *cache.Cache, client Client) *Service {
	return &Service{
		cache:  c,
		client: client,
	}
}

// NormalizePlace title-cases each whitespace-separated token and rejoins
// with single spaces. The result is both the display label and the cache
// key, so inputs differing only in case collide in the cache by design.
func NormalizePlace(place string) string {
	caser := cases.Title(language.Und)
	fields := strings.Fields(place)
	for i := range fields {
		fields[i] = caser.String(fields[i])
	}
	return strings.Join(fields, " ")
}

// GetData returns the aggregate for place, from the cache when fresh,
// otherwise fetched, aggregated and cached. Fetch and parse failures are
// logged and surface as nil; callers treat nil as "no data yet".
func (s *Service) GetData(ctx context.Context, place string) *ForecastData {
	key := NormalizePlace(place)

	var cached ForecastData
	if s.cache.Get(key, &cached) {
		return &cached
	}

	observations, err := s.client.Fetch(ctx, key)
	if err != nil {
		logger.Errorf("forecast: fetch failed for %s: %v", key, err)
		return nil
	}

	data, err := Build(observations)
	if err != nil {
		logger.Errorf("forecast: aggregation failed for %s: %v", key, err)
		return nil
	}

	s.cache.Set(key, data)
	return data
}

// GetCachedData returns whatever the cache holds for place, however stale.
// Used to paint a stale-but-present view before a refetch resolves.
func (s *Service) GetCachedData(place string) *ForecastData {
	var data ForecastData
	if s.cache.GetItem(NormalizePlace(place), &data) {
		return &data
	}
	return nil
}

// DeleteCachedData evicts the cached aggregate for place.
func (s *Service) DeleteCachedData(place string) {
	s.cache.Remove(NormalizePlace(place))
}
