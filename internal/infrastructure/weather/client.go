// Package weather fetches race weekend forecasts from Open-Meteo. No API key
// is required; the event's city and state are geocoded first, then the daily
// forecast is fetched for the resolved coordinates.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
	defaultTimeout      = 8 * time.Second
)

var (
	ErrProviderFailed   = errors.New("weather provider failed")
	ErrLocationNotFound = errors.New("location not found")
)

// Forecast is the daily forecast for a location.
type Forecast struct {
	Dates        []string  `json:"time"`
	TempMax      []float64 `json:"temperature_2m_max"`
	TempMin      []float64 `json:"temperature_2m_min"`
	PrecipChance []float64 `json:"precipitation_probability_max"`
}

// Client calls the Open-Meteo geocoding and forecast APIs.
type Client struct {
	httpClient   *http.Client
	geocodingURL string
	forecastURL  string
}

func NewClient() *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: defaultTimeout},
		geocodingURL: defaultGeocodingURL,
		forecastURL:  defaultForecastURL,
	}
}

// DailyForecast geocodes "city, state" and returns the daily forecast there.
func (c *Client) DailyForecast(ctx context.Context, city, state string) (*Forecast, error) {
	lat, lon, err := c.geocode(ctx, city, state)
	if err != nil {
		return nil, err
	}
	return c.forecast(ctx, lat, lon)
}

func (c *Client) geocode(ctx context.Context, city, state string) (lat, lon float64, err error) {
	params := url.Values{
		"name":     {fmt.Sprintf("%s, %s", city, state)},
		"count":    {"1"},
		"language": {"en"},
		"format":   {"json"},
	}

	var payload struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, c.geocodingURL, params, &payload); err != nil {
		return 0, 0, err
	}
	if len(payload.Results) == 0 {
		return 0, 0, ErrLocationNotFound
	}
	return payload.Results[0].Latitude, payload.Results[0].Longitude, nil
}

func (c *Client) forecast(ctx context.Context, lat, lon float64) (*Forecast, error) {
	params := url.Values{
		"latitude":  {fmt.Sprintf("%f", lat)},
		"longitude": {fmt.Sprintf("%f", lon)},
		"daily":     {"temperature_2m_max,temperature_2m_min,precipitation_probability_max"},
		"timezone":  {"auto"},
	}

	var payload struct {
		Daily Forecast `json:"daily"`
	}
	if err := c.getJSON(ctx, c.forecastURL, params, &payload); err != nil {
		return nil, err
	}
	return &payload.Daily, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrProviderFailed, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}
	return nil
}
