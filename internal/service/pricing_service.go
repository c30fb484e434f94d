package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dispatch-service/internal/model"
	"dispatch-service/internal/repository"
	"dispatch-service/internal/weather"
)

// WeatherSource is the slice of the weather client pricing needs.
type WeatherSource interface {
	Current(ctx context.Context, lat, lon float64) (*weather.Observation, error)
}

type PricingService struct {
	vehicleRepo *repository.VehicleRepository
	weather     WeatherSource
	log         zerolog.Logger
}

func NewPricingService(vehicleRepo *repository.VehicleRepository, weatherSource WeatherSource, log zerolog.Logger) *PricingService {
	return &PricingService{
		vehicleRepo: vehicleRepo,
		weather:     weatherSource,
		log:         log,
	}
}

// Breakdown records how an estimate was produced, including the raw weather
// observation, so the number can be audited later.
type Breakdown struct {
	BasePrice         decimal.Decimal      `json:"base_price"`
	DistanceComponent decimal.Decimal      `json:"distance_component"`
	DistanceKm        decimal.Decimal      `json:"distance_km"`
	Multiplier        decimal.Decimal      `json:"multiplier"`
	Weather           *weather.Observation `json:"weather,omitempty"`
}

type Estimate struct {
	Price     decimal.Decimal `json:"price"`
	Breakdown Breakdown       `json:"breakdown"`
}

// EstimatePrice prices a tow of distanceKm for the given vehicle category at
// the given pickup coordinate. The price never fails on a weather outage:
// when neither provider answers, the multiplier stays neutral and the
// breakdown carries no weather payload.
func (s *PricingService) EstimatePrice(ctx context.Context, vehicleTypeID uuid.UUID, distanceKm decimal.Decimal, lat, lon float64) (*Estimate, error) {
	if !distanceKm.IsPositive() {
		return nil, ErrInvalidInput
	}
	if !model.ValidCoordinate(lat, lon) {
		return nil, ErrInvalidInput
	}

	vt, err := s.vehicleRepo.GetVehicleType(ctx, vehicleTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	distanceComponent := vt.PerKmRate.Mul(distanceKm)
	subtotal := vt.BasePrice.Add(distanceComponent)

	obs, err := s.weather.Current(ctx, lat, lon)
	if err != nil {
		s.log.Warn().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("weather unavailable, pricing with neutral multiplier")
		obs = nil
	}

	multiplier := weather.Multiplier(obs)
	price := subtotal.Mul(multiplier).Round(2)

	return &Estimate{
		Price: price,
		Breakdown: Breakdown{
			BasePrice:         vt.BasePrice,
			DistanceComponent: distanceComponent.Round(2),
			DistanceKm:        distanceKm,
			Multiplier:        multiplier,
			Weather:           obs,
		},
	}, nil
}
