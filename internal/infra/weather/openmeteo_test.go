package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"walkr/config"
	"walkr/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   currentWeather
		want entity.WeatherClass
	}{
		{name: "light rain", in: currentWeather{WeatherCode: 61, Temperature: 20}, want: entity.WeatherRain},
		{name: "heavy rain", in: currentWeather{WeatherCode: 65, Temperature: 20}, want: entity.WeatherRain},
		{name: "light snow", in: currentWeather{WeatherCode: 71, Temperature: -2}, want: entity.WeatherSnow},
		{name: "heavy snow", in: currentWeather{WeatherCode: 75, Temperature: -5}, want: entity.WeatherSnow},
		{name: "hot", in: currentWeather{WeatherCode: 0, Temperature: 33}, want: entity.WeatherHot},
		{name: "cold", in: currentWeather{WeatherCode: 0, Temperature: 2}, want: entity.WeatherCold},
		{name: "mild clear", in: currentWeather{WeatherCode: 0, Temperature: 22}, want: entity.WeatherClear},
		{name: "boundary 30 is not hot", in: currentWeather{WeatherCode: 0, Temperature: 30}, want: entity.WeatherClear},
		{name: "boundary 5 is not cold", in: currentWeather{WeatherCode: 0, Temperature: 5}, want: entity.WeatherClear},
		{name: "rain code wins over heat", in: currentWeather{WeatherCode: 63, Temperature: 35}, want: entity.WeatherRain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.in))
		})
	}
}

func TestWeatherAt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		assert.NotEmpty(t, r.URL.Query().Get("latitude"))
		assert.NotEmpty(t, r.URL.Query().Get("longitude"))

		json.NewEncoder(w).Encode(forecastResponse{
			CurrentWeather: &currentWeather{Temperature: 18, WeatherCode: 61},
		})
	}))
	defer server.Close()

	svc, err := New(&config.Config{Weather: &config.WeatherConfig{URL: server.URL, Timeout: time.Second}})
	require.NoError(t, err)

	class, err := svc.WeatherAt(context.Background(), entity.GeoPoint{Lat: 25.033, Lon: 121.5654})
	require.NoError(t, err)
	assert.Equal(t, entity.WeatherRain, class)
}

func TestWeatherAt_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc, err := New(&config.Config{Weather: &config.WeatherConfig{URL: server.URL, Timeout: time.Second}})
	require.NoError(t, err)

	_, err = svc.WeatherAt(context.Background(), entity.GeoPoint{Lat: 25.033, Lon: 121.5654})
	assert.Error(t, err)
}

func TestWeatherAt_MissingCurrentWeather(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(forecastResponse{})
	}))
	defer server.Close()

	svc, err := New(&config.Config{Weather: &config.WeatherConfig{URL: server.URL, Timeout: time.Second}})
	require.NoError(t, err)

	_, err = svc.WeatherAt(context.Background(), entity.GeoPoint{Lat: 25.033, Lon: 121.5654})
	assert.Error(t, err)
}

func TestNew_RequiresURL(t *testing.T) {
	_, err := New(&config.Config{})
	assert.Error(t, err)
}
