package booking

import (
	"errors"

	"careserve/internal/domain/catalog"

	"github.com/shopspring/decimal"
)

var ErrUnpricedUnit = errors.New("no pricer registered for price unit")

// Quote is the full price breakdown of a booking at creation time.
// Total always equals ServicePrice + PlatformFee; the fee rate is captured
// in the persisted amounts and is not re-derivable if the rate changes later.
type Quote struct {
	ServicePrice Money
	PlatformFee  Money
	Total        Money
}

// UnitPricer turns a base price and a scheduled window into a raw service
// price for one pricing unit.
type UnitPricer func(basePrice decimal.Decimal, window TimeWindow) decimal.Decimal

type PriceCalculator interface {
	Quote(svc *catalog.Service, window TimeWindow) (Quote, error)
}

// DefaultPriceCalculator prices every unit by elapsed hours. The legacy
// behavior charged hours even for day/piece/km/service rates; that is kept
// as the default, but each unit is routed through its own pricer so a real
// per-unit strategy can be swapped in without touching callers.
type DefaultPriceCalculator struct {
	feeRate decimal.Decimal
	pricers map[catalog.PriceUnit]UnitPricer
}

func NewDefaultPriceCalculator(feeRate decimal.Decimal) *DefaultPriceCalculator {
	hourly := func(basePrice decimal.Decimal, window TimeWindow) decimal.Decimal {
		return basePrice.Mul(window.Hours())
	}
	return &DefaultPriceCalculator{
		feeRate: feeRate,
		pricers: map[catalog.PriceUnit]UnitPricer{
			catalog.UnitHour:    hourly,
			catalog.UnitDay:     hourly,
			catalog.UnitPiece:   hourly,
			catalog.UnitService: hourly,
			catalog.UnitKm:      hourly,
		},
	}
}

// RegisterPricer replaces the strategy for one unit.
func (pc *DefaultPriceCalculator) RegisterPricer(unit catalog.PriceUnit, pricer UnitPricer) {
	pc.pricers[unit] = pricer
}

func (pc *DefaultPriceCalculator) Quote(svc *catalog.Service, window TimeWindow) (Quote, error) {
	if window.Duration() <= 0 {
		return Quote{}, ErrInvalidTimeWindow
	}

	pricer, ok := pc.pricers[svc.PriceUnit()]
	if !ok {
		return Quote{}, ErrUnpricedUnit
	}

	servicePrice := NewMoney(pricer(svc.BasePrice(), window))
	platformFee := NewMoney(servicePrice.Decimal().Mul(pc.feeRate))
	total := servicePrice.Add(platformFee)

	return Quote{
		ServicePrice: servicePrice,
		PlatformFee:  platformFee,
		Total:        total,
	}, nil
}
