// Package cities manages the user's tracked city list. The list and the
// selected index persist through the cache's raw path so they survive
// restarts and never expire.
package cities

import (
	"context"
	"errors"
	"sync"

	"github.com/akosarev/weather-forecast/internal/cache"
	"github.com/akosarev/weather-forecast/internal/events"
	"github.com/akosarev/weather-forecast/internal/forecast"
)

const (
	listKey     = "cities"
	selectedKey = "city"
)

var (
	// ErrUnknownCity means no forecast could be fetched for the city.
	ErrUnknownCity = errors.New("cities: no forecast available for city")

	// ErrAlreadyTracked means the city is in the list already.
	ErrAlreadyTracked = errors.New("cities: city is already tracked")

	// ErrOutOfRange means the index does not address a tracked city.
	ErrOutOfRange = errors.New("cities: index out of range")
)

// List is the tracked city list. All mutations publish the matching event.
type List struct {
	mu    sync.Mutex
	cache *cache.Cache
	svc   *forecast.Service
	bus   *events.Bus
}

// New creates a List over the given cache, facade and bus.
func New(c *cache.Cache, svc *forecast.Service, bus *events.Bus) *List {
	return &List{
		cache: c,
		svc:   svc,
		bus:   bus,
	}
}

// All returns the tracked cities in insertion order.
func (l *List) All() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

// Selected returns the index of the selected city. A missing or stale
// selection falls back to the last city; -1 means the list is empty.
func (l *List) Selected() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selected(l.load())
}

// Add validates city by fetching its forecast, appends it under its
// normalized name, selects it and publishes CityAdded. Duplicates are
// rejected.
func (l *List) Add(ctx context.Context, city string) (string, error) {
	name := forecast.NormalizePlace(city)

	if l.svc.GetData(ctx, name) == nil {
		return "", ErrUnknownCity
	}

	l.mu.Lock()
	cs := l.load()
	for _, c := range cs {
		if c == name {
			l.mu.Unlock()
			return "", ErrAlreadyTracked
		}
	}
	cs = append(cs, name)
	l.cache.Set(listKey, cs)
	l.cache.Set(selectedKey, len(cs)-1)
	l.mu.Unlock()

	l.bus.Publish(events.CityAdded, events.Payload{City: name, Index: len(cs) - 1})
	return name, nil
}

// Remove drops the city at index, evicts its cached forecast, resets the
// selection and publishes CityRemoved.
func (l *List) Remove(index int) error {
	l.mu.Lock()
	cs := l.load()
	if index < 0 || index >= len(cs) {
		l.mu.Unlock()
		return ErrOutOfRange
	}

	l.svc.DeleteCachedData(cs[index])
	cs = append(cs[:index], cs[index+1:]...)
	if len(cs) > 0 {
		l.cache.Set(listKey, cs)
	} else {
		l.cache.Remove(listKey)
	}
	l.cache.Remove(selectedKey)
	l.mu.Unlock()

	l.bus.Publish(events.CityRemoved, events.Payload{Index: index})
	return nil
}

// Select marks the city at index as selected and publishes CitySelected.
func (l *List) Select(index int) error {
	l.mu.Lock()
	cs := l.load()
	if index < 0 || index >= len(cs) {
		l.mu.Unlock()
		return ErrOutOfRange
	}
	l.cache.Set(selectedKey, index)
	l.mu.Unlock()

	l.bus.Publish(events.CitySelected, events.Payload{City: cs[index], Index: index})
	return nil
}

func (l *List) load() []string {
	var cs []string
	l.cache.GetItem(listKey, &cs)
	return cs
}

func (l *List) selected(cs []string) int {
	index := -1
	if !l.cache.GetItem(selectedKey, &index) || index > len(cs)-1 {
		index = len(cs) - 1
	}
	return index
}
