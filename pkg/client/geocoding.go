package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bobby-s-dev/birth-timing/internal/models"
	"go.uber.org/zap"
)

// GeocodingClient resolves free-text place names through the Open-Meteo
// geocoding API, with a small static coordinate table as a last resort when
// the API is unreachable.
type GeocodingClient struct {
	*BaseClient
	baseURL string
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}

// Offline fallback for a handful of major cities.
var fallbackLocations = map[string]models.LocationData{
	"prague":   {Latitude: 50.0755, Longitude: 14.4378, City: "Prague", Country: "Czechia", Timezone: "Europe/Prague"},
	"london":   {Latitude: 51.5074, Longitude: -0.1278, City: "London", Country: "United Kingdom", Timezone: "Europe/London"},
	"new york": {Latitude: 40.7128, Longitude: -74.0060, City: "New York", Country: "United States", Timezone: "America/New_York"},
	"tokyo":    {Latitude: 35.6762, Longitude: 139.6503, City: "Tokyo", Country: "Japan", Timezone: "Asia/Tokyo"},
	"sydney":   {Latitude: -33.8688, Longitude: 151.2093, City: "Sydney", Country: "Australia", Timezone: "Australia/Sydney"},
}

func NewGeocodingClient(baseURL string, config ClientConfig, logger *zap.Logger) *GeocodingClient {
	baseClient := NewBaseClient("geocoding", config, logger)
	return &GeocodingClient{
		BaseClient: baseClient,
		baseURL:    baseURL,
	}
}

// Resolve looks up a place name and returns its location. API failures fall
// back to the static table; an API answer with no match is an error, not a
// fallback.
func (c *GeocodingClient) Resolve(ctx context.Context, query string) (*models.LocationData, error) {
	endpoint := fmt.Sprintf("%s/search?name=%s&count=1&language=en&format=json",
		c.baseURL, url.QueryEscape(query))

	var response geocodingResponse
	if err := c.GetJSON(ctx, endpoint, &response); err != nil {
		if fallback, ok := lookupFallback(query); ok {
			c.logger.Warn("Geocoding API unavailable, using fallback coordinates",
				zap.String("query", query),
				zap.Error(err))
			return fallback, nil
		}
		return nil, fmt.Errorf("geocoding %q: %w", query, err)
	}

	if len(response.Results) == 0 {
		return nil, fmt.Errorf("no geocoding match for %q", query)
	}

	result := response.Results[0]
	return &models.LocationData{
		Latitude:  result.Latitude,
		Longitude: result.Longitude,
		City:      result.Name,
		Country:   result.Country,
		Timezone:  result.Timezone,
	}, nil
}

func lookupFallback(query string) (*models.LocationData, bool) {
	if loc, ok := fallbackLocations[strings.ToLower(strings.TrimSpace(query))]; ok {
		copied := loc
		return &copied, true
	}
	return nil, false
}
