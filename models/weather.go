package models

// IconKey is the display category a provider icon code maps to
type IconKey string

const (
	IconClear   IconKey = "clear"
	IconCloud   IconKey = "cloud"
	IconDrizzle IconKey = "drizzle"
	IconRain    IconKey = "rain"
	IconSnow    IconKey = "snow"

	// Decorative keys, not selected by weather
	IconWind     IconKey = "wind"
	IconHumidity IconKey = "humidity"
)

// CurrentWeather is the headline card shown for the searched city
type CurrentWeather struct {
	Location           string  `json:"location"`
	TemperatureCelsius float64 `json:"temperatureCelsius"` // rounded to 2 decimals
	IconKey            IconKey `json:"iconKey"`
	IconCode           string  `json:"iconCode"` // raw provider code, e.g. "10d"
	HumidityPercent    int     `json:"humidityPercent"`
	WindSpeedKph       float64 `json:"windSpeedKph"`
	IsDay              bool    `json:"isDay"`
}

// DailyForecast is one aggregated day card
type DailyForecast struct {
	DayLabel           string  `json:"dayLabel"` // weekday name
	TemperatureCelsius float64 `json:"temperatureCelsius"`
	HumidityPercent    int     `json:"humidityPercent"`
	WindSpeedKph       float64 `json:"windSpeedKph"`
	IconKey            IconKey `json:"iconKey"`
}
