package model

// Forecast is the plain weather snapshot the renderer turns into a message.
// Values come straight from the provider, no unit conversion happens here.
type Forecast struct {
	CurrentTemp     float64
	FeelsLike       float64
	MinTemp         float64
	MaxTemp         float64
	Description     string
	Humidity        int
	WindSpeed       float64
	RainProbability int
}
