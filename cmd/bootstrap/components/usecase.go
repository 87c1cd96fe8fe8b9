package components

import (
	"careserve/internal/domain/booking"
	"careserve/internal/pkg/clock"
	"careserve/internal/pkg/config"
	"careserve/internal/usecase"
	"careserve/internal/usecase/commands"
	"careserve/internal/usecase/queries"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewPriceCalculator,
	booking.NewFactory,
)

func NewPriceCalculator(cfg config.Config) (booking.PriceCalculator, error) {
	feeRate, err := decimal.NewFromString(cfg.Pricing.PlatformFeeRate)
	if err != nil {
		return nil, err
	}
	return booking.NewDefaultPriceCalculator(feeRate), nil
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewServiceQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
