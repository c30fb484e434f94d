package weather

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMultiplier(t *testing.T) {
	cases := []struct {
		name string
		obs  *Observation
		want string
	}{
		{"nil observation", nil, "1.00"},
		{"clear", &Observation{Condition: "clear"}, "1.00"},
		{"cloudy", &Observation{Condition: "cloudy"}, "1.05"},
		{"rain", &Observation{Condition: "rain"}, "1.15"},
		{"snow", &Observation{Condition: "snow"}, "1.20"},
		{"wet snow", &Observation{Condition: "wet-snow"}, "1.25"},
		{"thunderstorm", &Observation{Condition: "thunderstorm"}, "1.35"},
		{"unknown condition, rain prec", &Observation{Condition: "hail", PrecType: 1}, "1.12"},
		{"unknown condition, snow prec", &Observation{Condition: "hail", PrecType: 2}, "1.20"},
		{"unknown condition, mixed prec", &Observation{Condition: "hail", PrecType: 3}, "1.18"},
		{"unknown condition, no prec", &Observation{Condition: "hail"}, "1.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want := decimal.RequireFromString(tc.want)
			got := Multiplier(tc.obs)
			assert.True(t, want.Equal(got), "want %s, got %s", want, got)
		})
	}
}

func TestNeutral(t *testing.T) {
	assert.True(t, Neutral().Equal(decimal.RequireFromString("1.00")))
}
