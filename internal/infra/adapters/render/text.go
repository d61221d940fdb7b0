package render

import (
	"fmt"
	"strings"

	"telegram-weather-notify/internal/domain/model"
	"telegram-weather-notify/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.ContentRenderer = (*TextRenderer)(nil)

// TextRenderer formats the daily message as plain text with emoji line
// markers. The header is localized, the figures are not.
type TextRenderer struct{}

func NewTextRenderer() *TextRenderer { return &TextRenderer{} }

func (r *TextRenderer) Render(p *model.NotificationProfile, f *model.Forecast, localDate string) string {
	var b strings.Builder

	city := p.CityName
	if city == "" {
		city = "your city"
	}
	fmt.Fprintf(&b, "%s %s, %s\n\n", header(p.Language), city, localDate)
	fmt.Fprintf(&b, "🌡 %.0f°C (feels like %.0f°C)\n", f.CurrentTemp, f.FeelsLike)
	fmt.Fprintf(&b, "📈 %.0f°C ... %.0f°C\n", f.MinTemp, f.MaxTemp)
	if f.Description != "" {
		fmt.Fprintf(&b, "☁️ %s\n", f.Description)
	}
	fmt.Fprintf(&b, "💧 humidity %d%%\n", f.Humidity)
	fmt.Fprintf(&b, "💨 wind %.1f km/h\n", f.WindSpeed)
	if f.RainProbability > 0 {
		fmt.Fprintf(&b, "🌧 rain chance %d%%\n", f.RainProbability)
	}
	return b.String()
}

func header(lang string) string {
	switch lang {
	case "uk":
		return "Погода:"
	case "ru":
		return "Погода:"
	default:
		return "Weather:"
	}
}
