package entity

// WeatherClass is the coarse weather bucket used by costing and scoring.
type WeatherClass string

const (
	WeatherClear WeatherClass = "clear"
	WeatherRain  WeatherClass = "rain"
	WeatherSnow  WeatherClass = "snow"
	WeatherHot   WeatherClass = "hot"
	WeatherCold  WeatherClass = "cold"
)

// EnvironmentContext is the ambient context at a location, resolved once
// per top-level request and read-only thereafter.
type EnvironmentContext struct {
	Weather WeatherClass `json:"weather"`
	Night   bool         `json:"night"`
}

// DefaultEnvironment is the safe fallback when context resolution fails.
func DefaultEnvironment() EnvironmentContext {
	return EnvironmentContext{Weather: WeatherClear, Night: false}
}

// AdverseWeather reports whether the weather makes climbs meaningfully
// harder (rain, snow or heat).
func (e EnvironmentContext) AdverseWeather() bool {
	switch e.Weather {
	case WeatherRain, WeatherSnow, WeatherHot:
		return true
	default:
		return false
	}
}
