package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(geocodingURL, forecastURL string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: time.Second},
		geocodingURL: geocodingURL,
		forecastURL:  forecastURL,
	}
}

func TestDailyForecast_Success(t *testing.T) {
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("name"); got != "Austin, TX" {
			t.Errorf("unexpected geocode query: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"latitude":30.26,"longitude":-97.74}]}`))
	}))
	defer geo.Close()

	fc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("latitude"); got != "30.260000" {
			t.Errorf("unexpected latitude: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"daily":{
			"time":["2026-09-04","2026-09-05"],
			"temperature_2m_max":[33.1,31.4],
			"temperature_2m_min":[22.0,21.5],
			"precipitation_probability_max":[10,45]
		}}`))
	}))
	defer fc.Close()

	client := newTestClient(geo.URL, fc.URL)
	forecast, err := client.DailyForecast(context.Background(), "Austin", "TX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forecast.Dates) != 2 || forecast.Dates[0] != "2026-09-04" {
		t.Fatalf("unexpected dates: %+v", forecast.Dates)
	}
	if forecast.TempMax[1] != 31.4 || forecast.PrecipChance[1] != 45 {
		t.Fatalf("unexpected forecast: %+v", forecast)
	}
}

func TestDailyForecast_LocationNotFound(t *testing.T) {
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer geo.Close()

	client := newTestClient(geo.URL, "http://unused.invalid")
	_, err := client.DailyForecast(context.Background(), "Nowhereville", "ZZ")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestDailyForecast_ProviderError(t *testing.T) {
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer geo.Close()

	client := newTestClient(geo.URL, "http://unused.invalid")
	_, err := client.DailyForecast(context.Background(), "Austin", "TX")
	if !errors.Is(err, ErrProviderFailed) {
		t.Fatalf("expected ErrProviderFailed, got %v", err)
	}
}
