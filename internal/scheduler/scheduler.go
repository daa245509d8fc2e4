package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/akosarev/weather-forecast/internal/cities"
	"github.com/akosarev/weather-forecast/internal/forecast"
	"github.com/akosarev/weather-forecast/internal/logger"
)

// Scheduler periodically re-fetches forecasts for tracked cities so cached
// aggregates stay warm between user requests.
type Scheduler struct {
	scheduler *gocron.Scheduler
	svc       *forecast.Service
	list      *cities.List
	interval  time.Duration
}

// New creates a new Scheduler.
func New(list *cities.List, interval time.Duration, svc *forecast.Service) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		svc:       svc,
		list:      list,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		tracked := s.list.All()
		if len(tracked) == 0 {
			return
		}

		logger.Infof("scheduler: refreshing %d tracked cities", len(tracked))
		for _, city := range tracked {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if s.svc.GetData(ctx, city) == nil {
				logger.Errorf("scheduler: refresh failed for %s", city)
			}
			cancel()
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
