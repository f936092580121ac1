package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKelvinToCelsius(t *testing.T) {
	tests := []struct {
		name     string
		kelvin   float64
		expected float64
	}{
		{name: "warm day", kelvin: 300.00, expected: 26.85},
		{name: "freezing point", kelvin: 273.15, expected: 0},
		{name: "below freezing", kelvin: 263.15, expected: -10},
		{name: "rounds to two decimals", kelvin: 295.123, expected: 21.97},
		{name: "absolute zero", kelvin: 0, expected: -273.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, KelvinToCelsius(tt.kelvin), 1e-9)
		})
	}
}

func TestKelvinToCelsius_MatchesRoundedDifference(t *testing.T) {
	for k := 200.0; k <= 330.0; k += 0.37 {
		want := math.Round((k-273.15)*100) / 100
		assert.Equal(t, want, KelvinToCelsius(k), "kelvin %v", k)
	}
}

func TestFormatCelsius(t *testing.T) {
	assert.Equal(t, "26.85", FormatCelsius(300.00))
	assert.Equal(t, "0.00", FormatCelsius(273.15))
	assert.Equal(t, "-10.00", FormatCelsius(263.15))
	assert.Equal(t, "21.85", FormatCelsius(295))
}
