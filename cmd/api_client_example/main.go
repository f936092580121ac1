package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"weather-cards/models"
)

type weatherResponse struct {
	City     string                 `json:"city"`
	Current  *models.CurrentWeather `json:"current"`
	Forecast []models.DailyForecast `json:"forecast"`
	Message  string                 `json:"message"`
	Error    string                 `json:"error"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the weather server")
	city := flag.String("city", "London", "City to search for")
	flag.Parse()

	fmt.Println("Weather API Client Example")
	fmt.Println("=========================")

	client := &http.Client{Timeout: 15 * time.Second}

	weatherURL := fmt.Sprintf("%s/api/weather?city=%s", *baseURL, url.QueryEscape(*city))
	fmt.Printf("Fetching weather data for %s...\n", *city)

	resp, err := client.Get(weatherURL)
	if err != nil {
		fmt.Printf("Error fetching weather: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Error reading response: %v\n", err)
		os.Exit(1)
	}

	var data weatherResponse
	if err := json.Unmarshal(body, &data); err != nil {
		fmt.Printf("Error decoding response: %v\n", err)
		os.Exit(1)
	}

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Search failed (%d): %s\n", resp.StatusCode, data.Error)
		os.Exit(1)
	}

	if data.Current == nil {
		fmt.Println("No data available")
		return
	}

	c := data.Current
	fmt.Printf("\n%s: %.2f°C, %s\n", c.Location, c.TemperatureCelsius, c.IconKey)
	fmt.Printf("  Humidity:   %d%%\n", c.HumidityPercent)
	fmt.Printf("  Wind speed: %v km/h\n", c.WindSpeedKph)

	fmt.Println("\nForecast:")
	for _, day := range data.Forecast {
		fmt.Printf("  %-10s %6.2f°C  %3d%%  %5v km/h  %s\n",
			day.DayLabel, day.TemperatureCelsius, day.HumidityPercent, day.WindSpeedKph, day.IconKey)
	}
}
