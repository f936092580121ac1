package forecast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"weather-cards/datasource"
	"weather-cards/models"
)

// ErrEmptyCity is returned when a search is attempted without a city name
var ErrEmptyCity = errors.New("enter city name")

// Result is the outcome of one successful search
type Result struct {
	Current models.CurrentWeather  `json:"current"`
	Samples []models.ForecastSample `json:"samples"`
	Days    []models.DailyForecast  `json:"days"` // windowed: tomorrow onwards, at most WindowSize
}

// Fetcher turns a city name into current weather plus day cards
type Fetcher struct {
	source datasource.ForecastSource
	logger *slog.Logger
}

// NewFetcher creates a fetcher backed by a forecast source
func NewFetcher(source datasource.ForecastSource, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		source: source,
		logger: logger.With("component", "fetcher", "source", source.Name()),
	}
}

// Fetch queries the source for city and normalizes the payload.
//
// An empty city returns ErrEmptyCity without contacting the source. Errors
// reported by the provider surface as *datasource.ProviderError; any other
// error means the request or the payload could not be processed.
func (f *Fetcher) Fetch(ctx context.Context, city string) (*Result, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrEmptyCity
	}

	f.logger.Debug("fetching forecast", "city", city)

	data, err := f.source.FetchForecast(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast for %q: %w", city, err)
	}
	if len(data.Samples) == 0 {
		return nil, fmt.Errorf("failed to fetch forecast for %q: %w", city, datasource.ErrNoSamples)
	}

	first := data.Samples[0]
	current := models.CurrentWeather{
		Location:           data.Location,
		TemperatureCelsius: KelvinToCelsius(first.TemperatureKelvin),
		IconKey:            IconFor(first.IconCode),
		IconCode:           first.IconCode,
		HumidityPercent:    first.HumidityPercent,
		WindSpeedKph:       first.WindSpeed,
		IsDay:              IsDay(first.IconCode),
	}

	days := Window(Aggregate(data.Samples))

	f.logger.Debug("forecast fetched",
		"city", city,
		"location", data.Location,
		"samples", len(data.Samples),
		"days", len(days),
	)

	return &Result{
		Current: current,
		Samples: data.Samples,
		Days:    days,
	}, nil
}
