package forecast

// Observation is one raw hourly record from the upstream API. Date carries
// minute precision ("2006-01-02 15:04"); records arrive in non-decreasing
// Date order and the engine relies on that for day-boundary detection.
// Optional numeric fields stay nil when the upstream omitted them.
type Observation struct {
	Date          string   `json:"date"`
	Temp          float64  `json:"temp"`
	WindSpeed     *float64 `json:"wind_speed,omitempty"`
	WindDirection string   `json:"wind_direction,omitempty"`
	Pressure      float64  `json:"pressure"`
	Humidity      float64  `json:"humidity"`
	Clouds        *float64 `json:"clouds,omitempty"`
	Rain          *float64 `json:"rain,omitempty"`
	Snow          *float64 `json:"snow,omitempty"`
	Description   string   `json:"description"`

	// Timezone is the UTC offset in seconds; the upstream sets it only on
	// the first record of a batch.
	Timezone int `json:"timezone,omitempty"`
}

// HourlyRecord is the display projection of one observation. Optional fields
// are copied as-is, absent stays absent.
type HourlyRecord struct {
	Temp          float64  `json:"temp"`
	Time          string   `json:"time"` // "15:04"
	Hour          string   `json:"hour"` // "15"
	Day           string   `json:"day"`  // day of month, "02"
	WindSpeed     *float64 `json:"wind_speed,omitempty"`
	WindDirection string   `json:"wind_direction,omitempty"`
	Pressure      float64  `json:"pressure"`
	Humidity      float64  `json:"humidity"`
	Clouds        *float64 `json:"clouds,omitempty"`
	Rain          *float64 `json:"rain,omitempty"`
	Snow          *float64 `json:"snow,omitempty"`
	Description   string   `json:"description"`
}

// DailySummary aggregates one post-anchor calendar day. Morning holds the
// minimum over hours 00-08, Midday the maximum over 09-20, Evening the
// minimum from 21 on. A nil Evening marks the summary as incomplete and
// tells consumers to truncate the day list there.
type DailySummary struct {
	Weekday       int      `json:"weekday"` // 1=Monday .. 7=Sunday
	Date          string   `json:"date"`
	Rain          float64  `json:"rain"`
	Snow          float64  `json:"snow"`
	Clouds        float64  `json:"clouds"`
	WindSpeed     float64  `json:"wind_speed"`
	WindDirection string   `json:"wind_direction,omitempty"`
	Morning       *float64 `json:"morning,omitempty"`
	Midday        *float64 `json:"midday,omitempty"`
	Evening       *float64 `json:"evening,omitempty"`
}

// CurrentConditions is the "now" snapshot: the projection of the first
// observation extended with the anchor day's extremes and the batch's
// timezone offset.
type CurrentConditions struct {
	HourlyRecord
	Max      float64 `json:"max"`
	Min      float64 `json:"min"`
	Timezone int     `json:"timezone"`
}

// ForecastData is the aggregate the facade returns and the cache stores.
// Daily is chronological; its first entry is "tomorrow".
type ForecastData struct {
	Now    CurrentConditions `json:"now"`
	Hourly []HourlyRecord    `json:"hourly"`
	Daily  []DailySummary    `json:"daily"`
}
