package datasource

import (
	"context"
	"sync"
	"testing"
	"time"

	"weather-cards/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockForecastSource counts calls and returns a fixed payload
type mockForecastSource struct {
	mutex     sync.Mutex
	callCount int
}

func (m *mockForecastSource) FetchForecast(ctx context.Context, city string) (models.ForecastData, error) {
	m.mutex.Lock()
	m.callCount++
	m.mutex.Unlock()
	return models.ForecastData{Provider: m.Name(), Location: city}, nil
}

func (m *mockForecastSource) Name() string {
	return "MockProvider"
}

func (m *mockForecastSource) calls() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.callCount
}

func TestRateLimitedForecastSource_Name(t *testing.T) {
	limited := NewRateLimitedForecastSource(&mockForecastSource{}, 1, 1)
	assert.Equal(t, "MockProvider [Rate Limited]", limited.Name())
}

func TestRateLimitedForecastSource_BurstPassesThrough(t *testing.T) {
	mock := &mockForecastSource{}
	limited := NewRateLimitedForecastSource(mock, 1, 3)

	start := time.Now()
	for i := 0; i < 3; i++ {
		data, err := limited.FetchForecast(context.Background(), "Paris")
		require.NoError(t, err)
		assert.Equal(t, "Paris", data.Location)
	}

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, 3, mock.calls())
}

func TestRateLimitedForecastSource_WaitHonorsContext(t *testing.T) {
	mock := &mockForecastSource{}
	// One token per minute, burst of one: the second call has to wait.
	limited := NewRateLimitedForecastSource(mock, 1.0/60, 1)

	_, err := limited.FetchForecast(context.Background(), "Paris")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = limited.FetchForecast(ctx, "Paris")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait canceled")
	assert.Equal(t, 1, mock.calls())
}

func TestRateLimitedForecastSource_ZeroBurstIsClamped(t *testing.T) {
	mock := &mockForecastSource{}
	limited := NewRateLimitedForecastSource(mock, 10, 0)

	_, err := limited.FetchForecast(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, 1, mock.calls())
}
