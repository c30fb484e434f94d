// Package weather resolves current conditions for a coordinate. A keyed
// primary provider is preferred; the keyless Open-Meteo API serves as the
// fallback, so the service keeps working without credentials.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultPrimaryURL  = "https://api.weather.yandex.ru/v2/informers"
	defaultFallbackURL = "https://api.open-meteo.com/v1/forecast"
	defaultTimeout     = 6 * time.Second
)

type Config struct {
	APIKey      string
	PrimaryURL  string
	FallbackURL string
	Timeout     time.Duration
}

type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.PrimaryURL == "" {
		cfg.PrimaryURL = defaultPrimaryURL
	}
	if cfg.FallbackURL == "" {
		cfg.FallbackURL = defaultFallbackURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

// Observation is the provider-independent view of current conditions.
// Raw carries the untouched provider payload for pricing audit records.
type Observation struct {
	Provider    string          `json:"provider"`
	Condition   string          `json:"condition"`
	PrecType    int             `json:"prec_type,omitempty"`
	Temperature *float64        `json:"temperature,omitempty"`
	FeelsLike   *float64        `json:"feels_like,omitempty"`
	WindSpeed   *float64        `json:"wind_speed,omitempty"`
	Raw         json.RawMessage `json:"raw,omitempty"`
}

// Current fetches conditions for the coordinate, trying the primary provider
// first when a key is configured. An error means both providers failed.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*Observation, error) {
	if c.cfg.APIKey != "" {
		obs, err := c.fromPrimary(ctx, lat, lon)
		if err == nil {
			return obs, nil
		}
		c.log.Warn().Err(err).Msg("primary weather provider failed, falling back")
	}

	obs, err := c.fromFallback(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("fetch weather: %w", err)
	}
	return obs, nil
}

type primaryPayload struct {
	Fact struct {
		Condition string   `json:"condition"`
		PrecType  int      `json:"prec_type"`
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		WindSpeed *float64 `json:"wind_speed"`
	} `json:"fact"`
}

func (c *Client) fromPrimary(ctx context.Context, lat, lon float64) (*Observation, error) {
	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.PrimaryURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Yandex-API-Key", c.cfg.APIKey)

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var payload primaryPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	return &Observation{
		Provider:    "yandex",
		Condition:   payload.Fact.Condition,
		PrecType:    payload.Fact.PrecType,
		Temperature: payload.Fact.Temp,
		FeelsLike:   payload.Fact.FeelsLike,
		WindSpeed:   payload.Fact.WindSpeed,
		Raw:         raw,
	}, nil
}

type fallbackPayload struct {
	Current struct {
		Temperature *float64 `json:"temperature_2m"`
		FeelsLike   *float64 `json:"apparent_temperature"`
		WeatherCode *int     `json:"weather_code"`
		WindSpeed   *float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

func (c *Client) fromFallback(ctx context.Context, lat, lon float64) (*Observation, error) {
	params := url.Values{}
	params.Set("latitude", formatCoord(lat))
	params.Set("longitude", formatCoord(lon))
	params.Set("current", "temperature_2m,apparent_temperature,weather_code,wind_speed_10m,pressure_msl")
	params.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.FallbackURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var payload fallbackPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	condition := ""
	if payload.Current.WeatherCode != nil {
		condition = conditionFromWeatherCode(*payload.Current.WeatherCode)
	}

	return &Observation{
		Provider:    "open-meteo",
		Condition:   condition,
		Temperature: payload.Current.Temperature,
		FeelsLike:   payload.Current.FeelsLike,
		WindSpeed:   payload.Current.WindSpeed,
		Raw:         raw,
	}, nil
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	return body, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
