// Package daylight adapts the sunrise-sunset.org API to the
// DaylightService capability.
package daylight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"walkr/config"
	"walkr/internal/domain/entity"
	"walkr/internal/domain/service"

	"github.com/pkg/errors"
)

type sunriseSunset struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// New creates a sunrise-sunset daylight adapter.
func New(cfg *config.Config) (service.DaylightService, error) {
	if cfg.Daylight == nil || cfg.Daylight.URL == "" {
		return nil, errors.New("daylight url is required")
	}

	return &sunriseSunset{
		baseURL: cfg.Daylight.URL,
		httpClient: &http.Client{
			Timeout: cfg.Daylight.Timeout,
		},
		now: time.Now,
	}, nil
}

type sunTimes struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

type sunResponse struct {
	Results *sunTimes `json:"results"`
	Status  string    `json:"status"`
}

// IsNightAt reports whether the current UTC instant falls outside the
// sunrise-sunset window at the point.
func (s *sunriseSunset) IsNightAt(ctx context.Context, point entity.GeoPoint) (bool, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(point.Lat, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(point.Lon, 'f', -1, 64))
	query.Set("formatted", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return false, errors.Wrap(err, "build daylight request")
	}

	res, err := s.httpClient.Do(req)
	if err != nil {
		return false, errors.Wrap(err, "daylight request failed")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return false, errors.Errorf("daylight status %d", res.StatusCode)
	}

	var parsed sunResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return false, errors.Wrap(err, "decode daylight response")
	}
	if parsed.Results == nil {
		return false, errors.New("daylight response missing results")
	}

	sunrise, err := time.Parse(time.RFC3339, parsed.Results.Sunrise)
	if err != nil {
		return false, errors.Wrap(err, "parse sunrise")
	}

	sunset, err := time.Parse(time.RFC3339, parsed.Results.Sunset)
	if err != nil {
		return false, errors.Wrap(err, "parse sunset")
	}

	now := s.now().UTC()

	return now.Before(sunrise) || now.After(sunset), nil
}
