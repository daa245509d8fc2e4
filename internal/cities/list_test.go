package cities

import (
	"context"
	"errors"
	"testing"

	"github.com/akosarev/weather-forecast/internal/cache"
	"github.com/akosarev/weather-forecast/internal/events"
	"github.com/akosarev/weather-forecast/internal/forecast"
	"github.com/akosarev/weather-forecast/internal/storage"
)

type stubClient struct {
	err error
}

func (s *stubClient) Fetch(ctx context.Context, place string) ([]forecast.Observation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []forecast.Observation{{Date: "2025-03-01 10:00", Temp: 5}}, nil
}

func newTestList(fetchErr error) (*List, *forecast.Service, *events.Bus) {
	c := cache.New(storage.NewMemoryStore())
	svc := forecast.NewService(c, &stubClient{err: fetchErr})
	bus := events.NewBus()
	return New(c, svc, bus), svc, bus
}

func TestAddTracksAndPublishes(t *testing.T) {
	list, _, bus := newTestList(nil)

	var got events.Payload
	bus.Subscribe(events.CityAdded, func(p events.Payload) { got = p })

	name, err := list.Add(context.Background(), "new york")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "New York" {
		t.Fatalf("added name = %q, want normalized %q", name, "New York")
	}
	if got.City != "New York" || got.Index != 0 {
		t.Fatalf("unexpected event payload: %+v", got)
	}

	cs := list.All()
	if len(cs) != 1 || cs[0] != "New York" {
		t.Fatalf("unexpected list: %v", cs)
	}
	if list.Selected() != 0 {
		t.Fatalf("selected = %d, want 0", list.Selected())
	}
}

func TestAddRejectsDuplicates(t *testing.T) {
	list, _, _ := newTestList(nil)

	if _, err := list.Add(context.Background(), "paris"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := list.Add(context.Background(), "PARIS"); !errors.Is(err, ErrAlreadyTracked) {
		t.Fatalf("expected ErrAlreadyTracked, got %v", err)
	}
}

func TestAddUnknownCity(t *testing.T) {
	list, _, _ := newTestList(errors.New("connection refused"))

	if _, err := list.Add(context.Background(), "atlantis"); !errors.Is(err, ErrUnknownCity) {
		t.Fatalf("expected ErrUnknownCity, got %v", err)
	}
	if len(list.All()) != 0 {
		t.Fatal("failed add must not grow the list")
	}
}

func TestRemoveEvictsForecast(t *testing.T) {
	list, svc, bus := newTestList(nil)

	var got events.Payload
	bus.Subscribe(events.CityRemoved, func(p events.Payload) { got = p })

	list.Add(context.Background(), "paris")
	list.Add(context.Background(), "berlin")

	if err := list.Remove(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Index != 0 {
		t.Fatalf("event index = %d, want 0", got.Index)
	}

	cs := list.All()
	if len(cs) != 1 || cs[0] != "Berlin" {
		t.Fatalf("unexpected list after removal: %v", cs)
	}
	if svc.GetCachedData("paris") != nil {
		t.Fatal("removal must evict the city's cached forecast")
	}
	if list.Selected() != 0 {
		t.Fatalf("selection must fall back to the last city, got %d", list.Selected())
	}
}

func TestRemoveLastCityClearsList(t *testing.T) {
	list, _, _ := newTestList(nil)

	list.Add(context.Background(), "paris")
	if err := list.Remove(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(list.All()) != 0 {
		t.Fatal("expected empty list")
	}
	if list.Selected() != -1 {
		t.Fatalf("selected = %d, want -1 for empty list", list.Selected())
	}
}

func TestSelectBounds(t *testing.T) {
	list, _, bus := newTestList(nil)

	var got events.Payload
	bus.Subscribe(events.CitySelected, func(p events.Payload) { got = p })

	list.Add(context.Background(), "paris")
	list.Add(context.Background(), "berlin")

	if err := list.Select(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.City != "Paris" || got.Index != 0 {
		t.Fatalf("unexpected event payload: %+v", got)
	}
	if list.Selected() != 0 {
		t.Fatalf("selected = %d, want 0", list.Selected())
	}

	if err := list.Select(5); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if err := list.Remove(5); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}
