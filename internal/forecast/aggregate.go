package forecast

import (
	"errors"
	"time"
)

// ErrNoObservations is returned when a batch has no anchor observation.
// An empty aggregate would be indistinguishable from a legitimate
// single-anchor day, so this is a hard error rather than a degraded result.
var ErrNoObservations = errors.New("forecast: empty observation batch")

const (
	// hourlyWindow is how many post-anchor observations feed the hourly slice.
	hourlyWindow = 16

	// precipNoise is the day-close threshold below which rain/snow maxima
	// are treated as noise and clamped to zero.
	precipNoise = 0.5

	// cloudBuckets spreads cloud cover over a day of 3-hour samples.
	cloudBuckets = 8
)

// Build aggregates one time-ordered batch of hourly observations. The first
// observation is "now"; it seeds the anchor day's min/max and never
// contributes to a daily summary. It does not re-sort the input.
func Build(observations []Observation) (*ForecastData, error) {
	if len(observations) == 0 {
		return nil, ErrNoObservations
	}

	anchor := dayOf(observations[0].Date)
	maxToday := observations[0].Temp
	minToday := observations[0].Temp

	data := &ForecastData{
		Hourly: []HourlyRecord{},
		Daily:  []DailySummary{},
	}

	prevDay := anchor
	for i := 1; i < len(observations); i++ {
		obs := observations[i]
		day := dayOf(obs.Date)
		hour := hourOf(obs.Date)

		if day != prevDay {
			// Close the previous summary before opening the next day. The
			// final summary of a batch never gets this clamp.
			if n := len(data.Daily); n > 0 {
				clampPrecip(&data.Daily[n-1])
			}
			data.Daily = append(data.Daily, DailySummary{
				Weekday: weekday(day),
				Date:    obs.Date,
			})
			prevDay = day
		}

		if day == anchor {
			// The anchor day is represented by the "now" snapshot only.
			if obs.Temp > maxToday {
				maxToday = obs.Temp
			}
			if obs.Temp < minToday {
				minToday = obs.Temp
			}
		} else {
			s := &data.Daily[len(data.Daily)-1]
			s.Rain = maxFloat(deref(obs.Rain), s.Rain)
			s.Snow = maxFloat(deref(obs.Snow), s.Snow)
			s.WindSpeed = maxFloat(deref(obs.WindSpeed), s.WindSpeed)
			s.Clouds += deref(obs.Clouds) / cloudBuckets

			switch {
			case hour >= "00" && hour <= "08":
				s.Morning = runningMin(s.Morning, obs.Temp)
			case hour <= "20":
				s.Midday = runningMax(s.Midday, obs.Temp)
				s.WindDirection = obs.WindDirection
			default:
				s.Evening = runningMin(s.Evening, obs.Temp)
			}
		}

		if i <= hourlyWindow {
			data.Hourly = append(data.Hourly, project(obs))
		}
	}

	data.Now = CurrentConditions{
		HourlyRecord: project(observations[0]),
		Max:          maxToday,
		Min:          minToday,
		Timezone:     observations[0].Timezone,
	}

	return data, nil
}

func clampPrecip(s *DailySummary) {
	if s.Rain < precipNoise {
		s.Rain = 0
	}
	if s.Snow < precipNoise {
		s.Snow = 0
	}
}

// project maps an observation onto its display shape.
func project(obs Observation) HourlyRecord {
	return HourlyRecord{
		Temp:          obs.Temp,
		Time:          sliceFrom(obs.Date, 11),
		Hour:          hourOf(obs.Date),
		Day:           slice(obs.Date, 8, 10),
		WindSpeed:     obs.WindSpeed,
		WindDirection: obs.WindDirection,
		Pressure:      obs.Pressure,
		Humidity:      obs.Humidity,
		Clouds:        obs.Clouds,
		Rain:          obs.Rain,
		Snow:          obs.Snow,
		Description:   obs.Description,
	}
}

// weekday maps a "2006-01-02" date to 1=Monday .. 7=Sunday; 0 if unparseable.
func weekday(date string) int {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	w := int(t.Weekday())
	if w == 0 {
		w = 7
	}
	return w
}

func dayOf(date string) string  { return slice(date, 0, 10) }
func hourOf(date string) string { return slice(date, 11, 13) }

func slice(s string, from, to int) string {
	if len(s) < to {
		if len(s) <= from {
			return ""
		}
		return s[from:]
	}
	return s[from:to]
}

func sliceFrom(s string, from int) string {
	if len(s) <= from {
		return ""
	}
	return s[from:]
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func runningMin(cur *float64, v float64) *float64 {
	if cur == nil || v < *cur {
		return &v
	}
	return cur
}

func runningMax(cur *float64, v float64) *float64 {
	if cur == nil || v > *cur {
		return &v
	}
	return cur
}
