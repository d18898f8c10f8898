package daylight

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

func newTestService(t *testing.T, url string, now time.Time) *sunriseSunset {
	t.Helper()

	svc, err := New(&config.Config{Daylight: &config.DaylightConfig{URL: url, Timeout: time.Second}})
	require.NoError(t, err)

	impl := svc.(*sunriseSunset)
	impl.now = func() time.Time { return now }

	return impl
}

func sunWindowServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0", r.URL.Query().Get("formatted"))
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lng"))

		json.NewEncoder(w).Encode(sunResponse{
			Status: "OK",
			Results: &sunTimes{
				Sunrise: "2026-08-27T06:00:00+00:00",
				Sunset:  "2026-08-27T18:30:00+00:00",
			},
		})
	}))
}

func TestIsNightAt(t *testing.T) {
	server := sunWindowServer(t)
	defer server.Close()

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "midday", now: time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC), want: false},
		{name: "before dawn", now: time.Date(2026, 8, 27, 4, 30, 0, 0, time.UTC), want: true},
		{name: "after dusk", now: time.Date(2026, 8, 27, 21, 0, 0, 0, time.UTC), want: true},
		{name: "sunrise boundary", now: time.Date(2026, 8, 27, 6, 0, 0, 0, time.UTC), want: false},
		{name: "sunset boundary", now: time.Date(2026, 8, 27, 18, 30, 0, 0, time.UTC), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, server.URL, tt.now)

			night, err := svc.IsNightAt(context.Background(), entity.GeoPoint{Lat: 25.033, Lon: 121.5654})
			require.NoError(t, err)
			assert.Equal(t, tt.want, night)
		})
	}
}

func TestIsNightAt_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, time.Now())

	_, err := svc.IsNightAt(context.Background(), entity.GeoPoint{Lat: 25.033, Lon: 121.5654})
	assert.Error(t, err)
}

func TestIsNightAt_MissingResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sunResponse{Status: "INVALID_REQUEST"})
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, time.Now())

	_, err := svc.IsNightAt(context.Background(), entity.GeoPoint{Lat: 25.033, Lon: 121.5654})
	assert.Error(t, err)
}

func TestNew_RequiresURL(t *testing.T) {
	_, err := New(&config.Config{})
	assert.Error(t, err)
}
