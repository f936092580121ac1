package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weather-cards/models"
)

const (
	// DefaultOpenWeatherMapURL is the base URL of the free-tier API
	DefaultOpenWeatherMapURL = "https://api.openweathermap.org/data/2.5"

	// dtTextLayout is the layout of list[].dt_txt
	dtTextLayout = "2006-01-02 15:04:05"
)

// ErrNoSamples is returned when a successful response carries an empty list
var ErrNoSamples = errors.New("forecast response contains no samples")

// OpenWeatherMapProvider implements ForecastSource against the 5-day/3-hour forecast API
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Ensure OpenWeatherMapProvider implements ForecastSource
var _ ForecastSource = (*OpenWeatherMapProvider)(nil)

// NewOpenWeatherMapProvider creates a new OpenWeatherMap provider
func NewOpenWeatherMapProvider(apiKey string) *OpenWeatherMapProvider {
	return &OpenWeatherMapProvider{
		apiKey:  apiKey,
		baseURL: DefaultOpenWeatherMapURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetBaseURL points the provider at a different API root (useful for testing)
func (p *OpenWeatherMapProvider) SetBaseURL(baseURL string) {
	p.baseURL = strings.TrimRight(baseURL, "/")
}

// SetTimeout bounds every request made by the provider
func (p *OpenWeatherMapProvider) SetTimeout(timeout time.Duration) {
	p.httpClient.Timeout = timeout
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

// forecastResponse mirrors the subset of the /forecast payload we read
type forecastResponse struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Icon string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
}

// errorResponse is the body sent with non-2xx statuses; cod is a string or a number
type errorResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

// FetchForecast fetches the 3-hourly forecast for a city
func (p *OpenWeatherMapProvider) FetchForecast(ctx context.Context, city string) (models.ForecastData, error) {
	// Build URL
	endpoint := fmt.Sprintf("%s/forecast", p.baseURL)
	params := url.Values{}
	params.Add("q", city)
	params.Add("appid", p.apiKey)

	// Create request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return models.ForecastData{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	// Execute request
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return models.ForecastData{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ForecastData{}, fmt.Errorf("failed to read response body: %w", err)
	}

	// Check for error status code
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.ForecastData{}, newProviderError(resp.StatusCode, body)
	}

	// Parse response
	var response forecastResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return models.ForecastData{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.List) == 0 {
		return models.ForecastData{}, ErrNoSamples
	}

	forecast := models.ForecastData{
		Provider: p.Name(),
		Location: response.City.Name,
		Samples:  make([]models.ForecastSample, 0, len(response.List)),
		Updated:  time.Now(),
	}

	for i, item := range response.List {
		// dt_txt carries no zone; keep the calendar time exactly as written
		ts, err := time.Parse(dtTextLayout, item.DtTxt)
		if err != nil {
			return models.ForecastData{}, fmt.Errorf("failed to parse timestamp of sample %d: %w", i, err)
		}

		icon := ""
		if len(item.Weather) > 0 {
			icon = item.Weather[0].Icon
		}

		forecast.Samples = append(forecast.Samples, models.ForecastSample{
			Time:              ts,
			TimeText:          item.DtTxt,
			TemperatureKelvin: item.Main.Temp,
			HumidityPercent:   item.Main.Humidity,
			WindSpeed:         item.Wind.Speed,
			IconCode:          icon,
		})
	}

	return forecast, nil
}

// newProviderError builds a ProviderError from an error body, falling back to
// the raw body or the status text when the body is not the usual JSON shape.
func newProviderError(status int, body []byte) *ProviderError {
	perr := &ProviderError{StatusCode: status}

	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		perr.Message = payload.Message
		if payload.Cod != nil {
			perr.Code = fmt.Sprint(payload.Cod)
		}
	}

	if perr.Message == "" {
		perr.Message = strings.TrimSpace(string(body))
	}
	if perr.Message == "" {
		perr.Message = http.StatusText(status)
	}

	return perr
}
