package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentUsesPrimaryWhenKeyed(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.Header.Get("X-Yandex-API-Key"))
		assert.Equal(t, "55.75", r.URL.Query().Get("lat"))
		assert.Equal(t, "37.61", r.URL.Query().Get("lon"))
		w.Write([]byte(`{"fact":{"condition":"light-snow","prec_type":2,"temp":-4.5}}`))
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("fallback must not be called when the primary answers")
	}))
	defer fallback.Close()

	client := NewClient(Config{
		APIKey:      "secret-key",
		PrimaryURL:  primary.URL,
		FallbackURL: fallback.URL,
	}, zerolog.Nop())

	obs, err := client.Current(context.Background(), 55.75, 37.61)
	require.NoError(t, err)
	assert.Equal(t, "yandex", obs.Provider)
	assert.Equal(t, "light-snow", obs.Condition)
	assert.Equal(t, 2, obs.PrecType)
	require.NotNil(t, obs.Temperature)
	assert.InDelta(t, -4.5, *obs.Temperature, 1e-9)
	assert.NotEmpty(t, obs.Raw)
}

func TestCurrentFallsBackWithoutKey(t *testing.T) {
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "55.75", r.URL.Query().Get("latitude"))
		assert.Equal(t, "37.61", r.URL.Query().Get("longitude"))
		w.Write([]byte(`{"current":{"temperature_2m":12.3,"weather_code":63}}`))
	}))
	defer fallback.Close()

	client := NewClient(Config{FallbackURL: fallback.URL}, zerolog.Nop())

	obs, err := client.Current(context.Background(), 55.75, 37.61)
	require.NoError(t, err)
	assert.Equal(t, "open-meteo", obs.Provider)
	assert.Equal(t, "rain", obs.Condition)
}

func TestCurrentFallsBackOnPrimaryFailure(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current":{"weather_code":95}}`))
	}))
	defer fallback.Close()

	client := NewClient(Config{
		APIKey:      "k",
		PrimaryURL:  primary.URL,
		FallbackURL: fallback.URL,
	}, zerolog.Nop())

	obs, err := client.Current(context.Background(), 43.25, 76.95)
	require.NoError(t, err)
	assert.Equal(t, "open-meteo", obs.Provider)
	assert.Equal(t, "thunderstorm", obs.Condition)
}

func TestCurrentErrorsWhenBothFail(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	client := NewClient(Config{
		APIKey:      "k",
		PrimaryURL:  down.URL,
		FallbackURL: down.URL,
	}, zerolog.Nop())

	_, err := client.Current(context.Background(), 0, 0)
	assert.Error(t, err)
}

func TestConditionFromWeatherCode(t *testing.T) {
	cases := map[int]string{
		0:   "clear",
		2:   "partly-cloudy",
		3:   "overcast",
		55:  "drizzle",
		61:  "light-rain",
		63:  "rain",
		81:  "showers",
		71:  "light-snow",
		75:  "snow",
		86:  "wet-snow",
		99:  "thunderstorm",
		200: "",
	}
	for code, want := range cases {
		assert.Equal(t, want, conditionFromWeatherCode(code), "code %d", code)
	}
}
