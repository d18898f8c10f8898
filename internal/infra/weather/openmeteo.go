// Package weather adapts the Open-Meteo current-weather endpoint to the
// WeatherService capability.
package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"walkr/config"
	"walkr/internal/domain/entity"
	"walkr/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	hotAboveCelsius  = 30
	coldBelowCelsius = 5
)

type openMeteo struct {
	baseURL    string
	httpClient *http.Client
}

// New creates an Open-Meteo weather adapter.
func New(cfg *config.Config) (service.WeatherService, error) {
	if cfg.Weather == nil || cfg.Weather.URL == "" {
		return nil, errors.New("weather url is required")
	}

	return &openMeteo{
		baseURL: cfg.Weather.URL,
		httpClient: &http.Client{
			Timeout: cfg.Weather.Timeout,
		},
	}, nil
}

type currentWeather struct {
	Temperature float64 `json:"temperature"`
	WeatherCode int     `json:"weathercode"`
}

type forecastResponse struct {
	CurrentWeather *currentWeather `json:"current_weather"`
}

// WeatherAt buckets the current conditions at the point into a coarse
// weather class. One bounded attempt; the caller falls back to clear.
func (o *openMeteo) WeatherAt(ctx context.Context, point entity.GeoPoint) (entity.WeatherClass, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(point.Lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(point.Lon, 'f', -1, 64))
	query.Set("current_weather", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", errors.Wrap(err, "build weather request")
	}

	res, err := o.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "weather request failed")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", errors.Errorf("weather status %d", res.StatusCode)
	}

	var parsed forecastResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", errors.Wrap(err, "decode weather response")
	}
	if parsed.CurrentWeather == nil {
		return "", errors.New("weather response missing current_weather")
	}

	return classify(*parsed.CurrentWeather), nil
}

// classify maps WMO weather codes and temperature to a weather class.
func classify(w currentWeather) entity.WeatherClass {
	switch w.WeatherCode {
	case 61, 63, 65:
		return entity.WeatherRain
	case 71, 73, 75:
		return entity.WeatherSnow
	}

	if w.Temperature > hotAboveCelsius {
		return entity.WeatherHot
	}
	if w.Temperature < coldBelowCelsius {
		return entity.WeatherCold
	}

	return entity.WeatherClear
}
