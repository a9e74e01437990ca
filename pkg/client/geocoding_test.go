package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:        time.Second,
		MaxRetries:     0,
		RetryDelay:     time.Millisecond,
		Multiplier:     1,
		Threshold:      3,
		BreakerTimeout: time.Second,
	}
}

func TestResolveParsesAPIResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "name=Reykjavik")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"name":"Reykjavik","latitude":64.1466,"longitude":-21.9426,"country":"Iceland","timezone":"Atlantic/Reykjavik"}]}`))
	}))
	defer server.Close()

	geocoder := NewGeocodingClient(server.URL, testClientConfig(), zap.NewNop())

	location, err := geocoder.Resolve(context.Background(), "Reykjavik")
	require.NoError(t, err)

	assert.Equal(t, 64.1466, location.Latitude)
	assert.Equal(t, -21.9426, location.Longitude)
	assert.Equal(t, "Reykjavik", location.City)
	assert.Equal(t, "Iceland", location.Country)
	assert.Equal(t, "Atlantic/Reykjavik", location.Timezone)
}

func TestResolveNoMatchIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	geocoder := NewGeocodingClient(server.URL, testClientConfig(), zap.NewNop())

	_, err := geocoder.Resolve(context.Background(), "Nowhereville")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no geocoding match")
}

func TestResolveFallsBackWhenAPIUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	geocoder := NewGeocodingClient(server.URL, testClientConfig(), zap.NewNop())

	location, err := geocoder.Resolve(context.Background(), "London")
	require.NoError(t, err, "known city must fall back to static coordinates")
	assert.Equal(t, "London", location.City)
	assert.InDelta(t, 51.5074, location.Latitude, 0.001)
}

func TestResolveUnknownCityWithAPIDownFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	geocoder := NewGeocodingClient(server.URL, testClientConfig(), zap.NewNop())

	_, err := geocoder.Resolve(context.Background(), "Nowhereville")
	assert.Error(t, err)
}
