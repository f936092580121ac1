package datasource

import (
	"context"

	"weather-cards/models"
)

// ForecastSource is an interface for services that can fetch 3-hourly weather forecasts
type ForecastSource interface {
	// FetchForecast fetches the forecast samples for a city
	FetchForecast(ctx context.Context, city string) (models.ForecastData, error)

	// Name returns the source's name
	Name() string
}
