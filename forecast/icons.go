package forecast

import (
	"strings"

	"weather-cards/models"
)

// iconTable maps provider icon codes to display categories.
// Codes not listed here render as clear.
var iconTable = map[string]models.IconKey{
	"01d": models.IconClear,
	"01n": models.IconClear,
	"02d": models.IconCloud,
	"02n": models.IconCloud,
	"03d": models.IconCloud,
	"03n": models.IconCloud,
	"04d": models.IconCloud,
	"04n": models.IconCloud,
	"09d": models.IconDrizzle,
	"09n": models.IconDrizzle,
	"10d": models.IconRain,
	"10n": models.IconRain,
	"13d": models.IconSnow,
	"13n": models.IconSnow,
}

// IconFor returns the display category for a provider icon code
func IconFor(code string) models.IconKey {
	if key, ok := iconTable[code]; ok {
		return key
	}
	return models.IconClear
}

// IsDay reports whether an icon code carries the day marker ("d" suffix).
// Anything else, including the "n" night marker, is treated as night.
func IsDay(code string) bool {
	return strings.HasSuffix(code, "d")
}
