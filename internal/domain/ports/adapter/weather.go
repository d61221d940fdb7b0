package adapter

import (
	"context"

	"telegram-weather-notify/internal/domain/model"
)

// WeatherProvider fetches today's forecast for a coordinate pair.
type WeatherProvider interface {
	Forecast(ctx context.Context, lat, lon float64) (*model.Forecast, error)
}

// ContentRenderer builds the localized message body for one user.
type ContentRenderer interface {
	Render(profile *model.NotificationProfile, forecast *model.Forecast, localDate string) string
}
