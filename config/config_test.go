package config

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", "")

	cfg, err := LoadFrom(strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5", cfg.OpenWeatherMap.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.OpenWeatherMap.Timeout)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 1.0, cfg.RateLimit.RPS)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, "New York", cfg.App.DefaultCity)
	assert.Equal(t, ":8080", cfg.GetServerAddr())

	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)
}

func TestLoadFrom_YAML(t *testing.T) {
	yaml := `
server:
  port: 9090
  ginmode: debug
log:
  level: debug
  format: json
openweathermap:
  apikey: from-file
  timeout: 3s
ratelimit:
  enabled: false
app:
  defaultcity: Lisbon
`
	cfg, err := LoadFrom(strings.NewReader(yaml))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.GinMode)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "from-file", cfg.OpenWeatherMap.APIKey)
	assert.Equal(t, 3*time.Second, cfg.OpenWeatherMap.Timeout)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "Lisbon", cfg.App.DefaultCity)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFrom_EnvironmentOverrides(t *testing.T) {
	t.Setenv("WEATHER_OPENWEATHERMAP_APIKEY", "from-env")
	t.Setenv("WEATHER_SERVER_PORT", "7000")
	t.Setenv("WEATHER_APP_DEFAULTCITY", "Paris")

	cfg, err := LoadFrom(strings.NewReader("openweathermap:\n  apikey: from-file\n"))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.OpenWeatherMap.APIKey)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "Paris", cfg.App.DefaultCity)
}

func TestLoadFrom_LegacyAPIKeyVariable(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", "legacy")

	cfg, err := LoadFrom(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.OpenWeatherMap.APIKey)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:         ServerConfig{Port: 8080, GinMode: "release"},
			OpenWeatherMap: OpenWeatherMapConfig{APIKey: "k"},
			RateLimit:      RateLimitConfig{Enabled: true, RPS: 1, Burst: 5},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "blank key", mutate: func(c *Config) { c.OpenWeatherMap.APIKey = "  " }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "unknown gin mode", mutate: func(c *Config) { c.Server.GinMode = "verbose" }, wantErr: true},
		{name: "zero rps", mutate: func(c *Config) { c.RateLimit.RPS = 0 }, wantErr: true},
		{name: "zero rps when disabled", mutate: func(c *Config) {
			c.RateLimit.Enabled = false
			c.RateLimit.RPS = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level     string
		format    string
		wantLevel slog.Level
		wantJSON  bool
	}{
		{level: "debug", format: "json", wantLevel: slog.LevelDebug, wantJSON: true},
		{level: "WARNING", format: "text", wantLevel: slog.LevelWarn},
		{level: "error", format: "", wantLevel: slog.LevelError},
		{level: "nonsense", format: "text", wantLevel: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := &Config{Log: LogConfig{Level: tt.level, Format: tt.format}}
			logger := cfg.newLogger(&buf)

			assert.True(t, logger.Enabled(context.Background(), tt.wantLevel))
			assert.False(t, logger.Enabled(context.Background(), tt.wantLevel-1))

			logger.Log(context.Background(), tt.wantLevel, "hello")
			if tt.wantJSON {
				assert.True(t, strings.HasPrefix(buf.String(), "{"), "expected JSON output, got %q", buf.String())
			} else {
				assert.Contains(t, buf.String(), "msg=hello")
			}
		})
	}
}
