package datasource

import (
	"context"
	"fmt"

	"weather-cards/models"

	"golang.org/x/time/rate"
)

// RateLimitedForecastSource spaces out provider calls so that bursts of user
// searches stay inside the OpenWeatherMap free-tier quota. Every search waits
// for one token before it reaches the wrapped source.
type RateLimitedForecastSource struct {
	source  ForecastSource
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedForecastSource allows rps searches per second on average and up
// to burst back-to-back searches. A burst below 1 would block every search and
// is raised to 1.
func NewRateLimitedForecastSource(source ForecastSource, rps float64, burst int) *RateLimitedForecastSource {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedForecastSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// FetchForecast blocks until the limiter admits the search, then forwards it.
// A search whose context ends while queued is not sent.
func (r *RateLimitedForecastSource) FetchForecast(ctx context.Context, city string) (models.ForecastData, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.ForecastData{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	return r.source.FetchForecast(ctx, city)
}

// Name reports the wrapped source's name with a rate-limit marker
func (r *RateLimitedForecastSource) Name() string {
	return r.name
}

var _ ForecastSource = (*RateLimitedForecastSource)(nil)
