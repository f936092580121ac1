package api

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"weather-cards/datasource"
	"weather-cards/forecast"
	"weather-cards/models"

	"github.com/google/uuid"
)

// EmptyCityPrompt is shown when a search is submitted without a city
const EmptyCityPrompt = "Enter city name"

// Searcher fetches weather for a city
type Searcher interface {
	Fetch(ctx context.Context, city string) (*forecast.Result, error)
}

// Outcome describes what a search did to the view state
type Outcome int

const (
	// OutcomeUpdated means the state was replaced with fresh data
	OutcomeUpdated Outcome = iota
	// OutcomeRejected means the input was empty; only the prompt changed
	OutcomeRejected
	// OutcomeProviderError means the provider refused the query; its message is shown
	OutcomeProviderError
	// OutcomeFailed means the request or payload failed; the state was cleared
	OutcomeFailed
	// OutcomeStale means a newer search had already been applied; the result was dropped
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeRejected:
		return "rejected"
	case OutcomeProviderError:
		return "provider_error"
	case OutcomeFailed:
		return "failed"
	case OutcomeStale:
		return "stale"
	default:
		return "unknown"
	}
}

// ViewState is everything the page renders
type ViewState struct {
	City     string                 `json:"city"`    // last submitted input
	Current  *models.CurrentWeather `json:"current"` // nil means "No data available"
	Forecast []models.DailyForecast `json:"forecast"`
	Message  string                 `json:"message,omitempty"` // prompt or provider message
	Updated  time.Time              `json:"updated"`
}

// Presenter owns the view state and applies search results to it
type Presenter struct {
	searcher Searcher
	logger   *slog.Logger

	mutex        sync.RWMutex
	state        ViewState
	issuedToken  uint64 // last token handed to a search
	appliedToken uint64 // token of the search whose outcome is on screen
}

// NewPresenter creates a presenter with an empty ("No data available") state
func NewPresenter(searcher Searcher, logger *slog.Logger) *Presenter {
	return &Presenter{
		searcher: searcher,
		logger:   logger.With("component", "presenter"),
		state: ViewState{
			Forecast: []models.DailyForecast{},
		},
	}
}

// Search runs one search and applies its outcome to the view state. It never
// returns an error: every failure is reflected in the state instead.
func (p *Presenter) Search(ctx context.Context, city string) Outcome {
	// Empty input never takes a token, so it cannot outrank a search in flight
	if strings.TrimSpace(city) == "" {
		p.mutex.Lock()
		p.state.Message = EmptyCityPrompt
		p.mutex.Unlock()
		return OutcomeRejected
	}

	token := p.nextToken()
	logger := p.logger.With("request_id", uuid.NewString(), "city", city)

	// The search outlives the triggering request; the HTTP client timeout bounds it.
	result, err := p.searcher.Fetch(context.WithoutCancel(ctx), city)

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if token < p.appliedToken {
		logger.Debug("discarding stale search result", "token", token, "applied", p.appliedToken)
		return OutcomeStale
	}

	if errors.Is(err, forecast.ErrEmptyCity) {
		p.state.Message = EmptyCityPrompt
		return OutcomeRejected
	}
	p.appliedToken = token

	var perr *datasource.ProviderError
	switch {
	case err == nil:
		p.state = ViewState{
			City:     strings.TrimSpace(city),
			Current:  &result.Current,
			Forecast: result.Days,
			Updated:  time.Now(),
		}
		logger.Info("weather updated", "location", result.Current.Location, "days", len(result.Days))
		return OutcomeUpdated

	case errors.As(err, &perr):
		// Keep the previous weather on screen and surface the provider's message
		p.state.City = strings.TrimSpace(city)
		p.state.Message = perr.Message
		logger.Warn("provider rejected search", "status", perr.StatusCode, "message", perr.Message)
		return OutcomeProviderError

	default:
		p.state = ViewState{
			City:     strings.TrimSpace(city),
			Forecast: []models.DailyForecast{},
			Updated:  time.Now(),
		}
		logger.Error("error in fetching weather data", "error", err)
		return OutcomeFailed
	}
}

// Snapshot returns a copy of the current view state
func (p *Presenter) Snapshot() ViewState {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.copyState()
}

// Flash returns a copy of the view state and clears its message, so a prompt
// or provider alert is shown once.
func (p *Presenter) Flash() ViewState {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	out := p.copyState()
	p.state.Message = ""
	return out
}

func (p *Presenter) copyState() ViewState {
	out := p.state
	if p.state.Current != nil {
		current := *p.state.Current
		out.Current = &current
	}
	out.Forecast = make([]models.DailyForecast, len(p.state.Forecast))
	copy(out.Forecast, p.state.Forecast)
	return out
}

func (p *Presenter) nextToken() uint64 {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.issuedToken++
	return p.issuedToken
}
