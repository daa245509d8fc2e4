package forecast

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/akosarev/weather-forecast/internal/cache"
	"github.com/akosarev/weather-forecast/internal/storage"
)

// stubClient counts fetches and serves a canned batch or error.
type stubClient struct {
	calls int
	batch []Observation
	err   error
}

func (s *stubClient) Fetch(ctx context.Context, place string) ([]Observation, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.batch, nil
}

func testBatch() []Observation {
	return []Observation{
		obsAt("2025-03-01", 10, 4),
		obsAt("2025-03-01", 11, 6),
		obsAt("2025-03-02", 10, 2),
	}
}

func TestNormalizePlace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"new york", "New York"},
		{"NEW YORK", "New York"},
		{"  new   york  ", "New York"},
		{"moscow", "Moscow"},
	}
	for _, tc := range cases {
		if got := NormalizePlace(tc.in); got != tc.want {
			t.Fatalf("NormalizePlace(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGetDataFetchesOnceWithinTTL(t *testing.T) {
	client := &stubClient{batch: testBatch()}
	svc := NewService(cache.New(storage.NewMemoryStore(), cache.WithTTL(time.Hour)), client)

	first := svc.GetData(context.Background(), "paris")
	if first == nil {
		t.Fatal("expected data on first call")
	}

	second := svc.GetData(context.Background(), "paris")
	if second == nil {
		t.Fatal("expected data on second call")
	}

	if client.calls != 1 {
		t.Fatalf("expected exactly one upstream fetch, got %d", client.calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached result differs from fetched result:\n%+v\n%+v", first, second)
	}
}

func TestGetDataNormalizationSharesCacheKey(t *testing.T) {
	client := &stubClient{batch: testBatch()}
	svc := NewService(cache.New(storage.NewMemoryStore(), cache.WithTTL(time.Hour)), client)

	if svc.GetData(context.Background(), "new york") == nil {
		t.Fatal("expected data for lowercase place")
	}
	if svc.GetData(context.Background(), "New York") == nil {
		t.Fatal("expected data for title-case place")
	}

	if client.calls != 1 {
		t.Fatalf("case variants must share one cache key; got %d fetches", client.calls)
	}
}

func TestGetDataFetchFailure(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}
	svc := NewService(cache.New(storage.NewMemoryStore()), client)

	if data := svc.GetData(context.Background(), "paris"); data != nil {
		t.Fatalf("fetch failure must yield nil, got %+v", data)
	}
	if data := svc.GetCachedData("paris"); data != nil {
		t.Fatal("nothing may be cached after a failed fetch")
	}
}

func TestGetCachedDataIgnoresTTL(t *testing.T) {
	client := &stubClient{batch: testBatch()}
	// A nanosecond TTL truncates to zero milliseconds, so every
	// freshness-checked read misses while the raw path still hits.
	svc := NewService(cache.New(storage.NewMemoryStore(), cache.WithTTL(time.Nanosecond)), client)

	if svc.GetData(context.Background(), "paris") == nil {
		t.Fatal("expected data on first call")
	}
	if svc.GetData(context.Background(), "paris") == nil {
		t.Fatal("expected data on second call")
	}
	if client.calls != 2 {
		t.Fatalf("expired entries must refetch, got %d fetches", client.calls)
	}

	stale := svc.GetCachedData("paris")
	if stale == nil {
		t.Fatal("raw path must return the stale entry")
	}
	if stale.Now.Max != 6 || stale.Now.Min != 4 {
		t.Fatalf("unexpected stale aggregate: %+v", stale.Now)
	}
}

func TestDeleteCachedData(t *testing.T) {
	client := &stubClient{batch: testBatch()}
	svc := NewService(cache.New(storage.NewMemoryStore(), cache.WithTTL(time.Hour)), client)

	svc.GetData(context.Background(), "paris")
	svc.DeleteCachedData("PARIS")

	if data := svc.GetCachedData("paris"); data != nil {
		t.Fatal("eviction must remove the entry for all case variants")
	}
}
