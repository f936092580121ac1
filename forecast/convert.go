package forecast

import (
	"math"
	"strconv"
)

// absoluteZeroCelsius is 0 K expressed in Celsius
const absoluteZeroCelsius = 273.15

// KelvinToCelsius converts a provider temperature and rounds it to 2 decimals
func KelvinToCelsius(kelvin float64) float64 {
	return math.Round((kelvin-absoluteZeroCelsius)*100) / 100
}

// FormatCelsius renders a Kelvin reading the way the cards show it, e.g. "26.85"
func FormatCelsius(kelvin float64) string {
	return strconv.FormatFloat(KelvinToCelsius(kelvin), 'f', 2, 64)
}
