// Package geocode adapts Nominatim (with a Photon fallback) to the
// Geocoder capability.
package geocode

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

type nominatim struct {
	nominatimURL string
	photonURL    string
	userAgent    string
	httpClient   *http.Client
}

// New creates a Nominatim-backed geocoder with Photon as fallback for
// forward lookups.
func New(cfg *config.Config) (service.Geocoder, error) {
	if cfg.Geocoder == nil || cfg.Geocoder.NominatimURL == "" {
		return nil, errors.New("nominatim url is required")
	}

	return &nominatim{
		nominatimURL: cfg.Geocoder.NominatimURL,
		photonURL:    cfg.Geocoder.PhotonURL,
		userAgent:    cfg.Geocoder.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.Geocoder.Timeout,
		},
	}, nil
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a free-text query: Nominatim first (strict,
// accurate), Photon as fallback (fast, unlimited).
func (n *nominatim) Geocode(ctx context.Context, query string) (entity.GeoPoint, error) {
	point, err := n.geocodeNominatim(ctx, query)
	if err == nil {
		return point, nil
	}
	if n.photonURL == "" {
		return entity.GeoPoint{}, err
	}

	return n.geocodePhoton(ctx, query)
}

func (n *nominatim) geocodeNominatim(ctx context.Context, query string) (entity.GeoPoint, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")

	var results []searchResult
	if err := n.getJSON(ctx, n.nominatimURL+"/search?"+params.Encode(), &results); err != nil {
		return entity.GeoPoint{}, err
	}
	if len(results) == 0 {
		return entity.GeoPoint{}, errors.WithStack(service.ErrNoResults)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return entity.GeoPoint{}, errors.Wrap(err, "parse latitude")
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return entity.GeoPoint{}, errors.Wrap(err, "parse longitude")
	}

	return entity.GeoPoint{Lat: lat, Lon: lon}, nil
}

type photonResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // lon, lat
		} `json:"geometry"`
	} `json:"features"`
}

func (n *nominatim) geocodePhoton(ctx context.Context, query string) (entity.GeoPoint, error) {
	params := url.Values{}
	params.Set("q", query)

	var parsed photonResponse
	if err := n.getJSON(ctx, n.photonURL+"?"+params.Encode(), &parsed); err != nil {
		return entity.GeoPoint{}, err
	}

	if len(parsed.Features) == 0 || len(parsed.Features[0].Geometry.Coordinates) < 2 {
		return entity.GeoPoint{}, errors.WithStack(service.ErrNoResults)
	}

	coords := parsed.Features[0].Geometry.Coordinates

	return entity.GeoPoint{Lat: coords[1], Lon: coords[0]}, nil
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
}

// ReverseGeocode resolves a coordinate to a display name.
func (n *nominatim) ReverseGeocode(ctx context.Context, point entity.GeoPoint) (string, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(point.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(point.Lon, 'f', -1, 64))
	params.Set("format", "json")
	params.Set("zoom", "16")
	params.Set("addressdetails", "1")

	var parsed reverseResult
	if err := n.getJSON(ctx, n.nominatimURL+"/reverse?"+params.Encode(), &parsed); err != nil {
		return "", err
	}
	if parsed.DisplayName == "" {
		return "", errors.WithStack(service.ErrNoResults)
	}

	return parsed.DisplayName, nil
}

func (n *nominatim) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.Wrap(err, "build geocode request")
	}
	// Nominatim requires an identifying user agent
	if n.userAgent != "" {
		req.Header.Set("User-Agent", n.userAgent)
	}

	res, err := n.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "geocode request failed")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return errors.Errorf("geocode status %d", res.StatusCode)
	}

	return errors.Wrap(json.NewDecoder(res.Body).Decode(out), "decode geocode response")
}
