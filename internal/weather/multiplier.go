package weather

import "github.com/shopspring/decimal"

// multipliers maps a condition code to its price surcharge factor. Unknown
// conditions price neutrally.
var multipliers = map[string]decimal.Decimal{
	"clear":         decimal.RequireFromString("1.00"),
	"partly-cloudy": decimal.RequireFromString("1.00"),
	"cloudy":        decimal.RequireFromString("1.05"),
	"overcast":      decimal.RequireFromString("1.07"),
	"rain":          decimal.RequireFromString("1.15"),
	"drizzle":       decimal.RequireFromString("1.10"),
	"light-rain":    decimal.RequireFromString("1.12"),
	"showers":       decimal.RequireFromString("1.18"),
	"snow":          decimal.RequireFromString("1.20"),
	"light-snow":    decimal.RequireFromString("1.15"),
	"wet-snow":      decimal.RequireFromString("1.25"),
	"storm":         decimal.RequireFromString("1.30"),
	"thunderstorm":  decimal.RequireFromString("1.35"),
}

var (
	neutralMultiplier  = decimal.RequireFromString("1.00")
	precRainMultiplier = decimal.RequireFromString("1.12")
	precSnowMultiplier = decimal.RequireFromString("1.20")
	precMixMultiplier  = decimal.RequireFromString("1.18")
)

// Neutral is the multiplier applied when no weather data is available.
func Neutral() decimal.Decimal {
	return neutralMultiplier
}

// Multiplier derives the price factor for an observation. When the condition
// code is not in the table, the precipitation type decides; with neither,
// pricing stays neutral.
func Multiplier(obs *Observation) decimal.Decimal {
	if obs == nil {
		return neutralMultiplier
	}
	if m, ok := multipliers[obs.Condition]; ok {
		return m
	}
	switch obs.PrecType {
	case 1:
		return precRainMultiplier
	case 2:
		return precSnowMultiplier
	case 3:
		return precMixMultiplier
	}
	return neutralMultiplier
}

// conditionFromWeatherCode folds the WMO weather codes reported by the
// fallback provider onto the primary provider's condition vocabulary, so one
// multiplier table serves both.
func conditionFromWeatherCode(code int) string {
	switch code {
	case 0, 1:
		return "clear"
	case 2:
		return "partly-cloudy"
	case 3:
		return "overcast"
	case 45, 48:
		return "cloudy"
	case 51, 53, 55, 56, 57:
		return "drizzle"
	case 61, 66:
		return "light-rain"
	case 63:
		return "rain"
	case 65, 80, 81, 82:
		return "showers"
	case 67:
		return "rain"
	case 71, 77:
		return "light-snow"
	case 73, 75:
		return "snow"
	case 85, 86:
		return "wet-snow"
	case 95, 96, 99:
		return "thunderstorm"
	default:
		return ""
	}
}
