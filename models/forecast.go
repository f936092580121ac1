package models

import (
	"time"
)

// ForecastSample is a single 3-hour forecast entry as reported by the provider
type ForecastSample struct {
	Time              time.Time `json:"time"`              // calendar time as written in dt_txt
	TimeText          string    `json:"timeText"`          // raw dt_txt value
	TemperatureKelvin float64   `json:"temperatureKelvin"` // provider default unit
	HumidityPercent   int       `json:"humidityPercent"`
	WindSpeed         float64   `json:"windSpeed"`
	IconCode          string    `json:"iconCode"`
}

// ForecastData represents a forecast payload from a provider
type ForecastData struct {
	Provider string           `json:"provider"` // weather data provider name
	Location string           `json:"location"` // city name reported by the provider
	Samples  []ForecastSample `json:"samples"`  // samples in provider order
	Updated  time.Time        `json:"updated"`  // when this forecast was fetched
}
