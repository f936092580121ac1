package forecast

import (
	"weather-cards/models"
)

// WindowSize is the number of day cards shown after today
const WindowSize = 4

// dayGroup accumulates the peak readings of one weekday
type dayGroup struct {
	label     string
	maxKelvin float64
	maxHumid  int
	maxWind   float64
	iconCode  string // icon of the first sample seen for the day
}

// Aggregate groups samples by weekday and reduces each group to its peak
// temperature, humidity and wind speed. Days come back in the order they
// first appear in samples. Aggregate does not modify samples.
func Aggregate(samples []models.ForecastSample) []models.DailyForecast {
	groups := make([]*dayGroup, 0, 6)
	byLabel := make(map[string]*dayGroup, 6)

	for _, s := range samples {
		label := s.Time.Weekday().String()

		g, ok := byLabel[label]
		if !ok {
			g = &dayGroup{
				label:     label,
				maxKelvin: s.TemperatureKelvin,
				maxHumid:  s.HumidityPercent,
				maxWind:   s.WindSpeed,
				iconCode:  s.IconCode,
			}
			byLabel[label] = g
			groups = append(groups, g)
			continue
		}

		g.maxKelvin = max(g.maxKelvin, s.TemperatureKelvin)
		g.maxHumid = max(g.maxHumid, s.HumidityPercent)
		g.maxWind = max(g.maxWind, s.WindSpeed)
	}

	days := make([]models.DailyForecast, 0, len(groups))
	for _, g := range groups {
		days = append(days, models.DailyForecast{
			DayLabel:           g.label,
			TemperatureCelsius: KelvinToCelsius(g.maxKelvin),
			HumidityPercent:    g.maxHumid,
			WindSpeedKph:       g.maxWind,
			IconKey:            IconFor(g.iconCode),
		})
	}

	return days
}

// Window drops the first day (today, already shown as current weather) and
// keeps at most the next WindowSize days.
func Window(days []models.DailyForecast) []models.DailyForecast {
	if len(days) <= 1 {
		return []models.DailyForecast{}
	}

	end := min(len(days), 1+WindowSize)
	out := make([]models.DailyForecast, end-1)
	copy(out, days[1:end])
	return out
}
