package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"telegram-weather-notify/internal/domain"
	"telegram-weather-notify/internal/domain/model"
	"telegram-weather-notify/internal/domain/ports/adapter"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// Compile-time check
var _ adapter.WeatherProvider = (*OpenMeteoProvider)(nil)

// OpenMeteoProvider fetches the current conditions plus today's daily
// aggregates in a single request. Open-Meteo needs no API key.
type OpenMeteoProvider struct {
	baseURL string
	client  *http.Client
}

func NewOpenMeteoProvider(baseURL string, timeout time.Duration) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenMeteoProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type openMeteoResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		FeelsLike   float64 `json:"apparent_temperature"`
		Humidity    int     `json:"relative_humidity_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
	Daily struct {
		TempMax  []float64 `json:"temperature_2m_max"`
		TempMin  []float64 `json:"temperature_2m_min"`
		RainProb []int     `json:"precipitation_probability_max"`
	} `json:"daily"`
}

func (p *OpenMeteoProvider) Forecast(ctx context.Context, lat, lon float64) (*model.Forecast, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("current", "temperature_2m,apparent_temperature,relative_humidity_2m,wind_speed_10m,weather_code")
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_probability_max")
	q.Set("forecast_days", "1")
	q.Set("timezone", "UTC")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request: %v: %w", err, domain.ErrWeatherUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast status %d: %w", resp.StatusCode, domain.ErrWeatherUnavailable)
	}

	var body openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode forecast: %v: %w", err, domain.ErrWeatherUnavailable)
	}

	f := &model.Forecast{
		CurrentTemp: body.Current.Temperature,
		FeelsLike:   body.Current.FeelsLike,
		Description: describe(body.Current.WeatherCode),
		Humidity:    body.Current.Humidity,
		WindSpeed:   body.Current.WindSpeed,
	}
	if len(body.Daily.TempMax) > 0 {
		f.MaxTemp = body.Daily.TempMax[0]
	}
	if len(body.Daily.TempMin) > 0 {
		f.MinTemp = body.Daily.TempMin[0]
	}
	if len(body.Daily.RainProb) > 0 {
		f.RainProbability = body.Daily.RainProb[0]
	}
	return f, nil
}

// describe maps WMO weather interpretation codes to a short phrase.
func describe(code int) string {
	switch {
	case code == 0:
		return "clear sky"
	case code <= 2:
		return "partly cloudy"
	case code == 3:
		return "overcast"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case code >= 61 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "rain showers"
	case code == 85 || code == 86:
		return "snow showers"
	case code >= 95:
		return "thunderstorm"
	default:
		return "unknown"
	}
}
