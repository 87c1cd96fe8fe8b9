package booking

import (
	"careserve/internal/domain/catalog"
	"careserve/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

// CreateBooking assembles a new pending booking from an active service and a
// validated window. The franchise reference is inherited from the service.
func (f *Factory) CreateBooking(
	svc *catalog.Service,
	clientID uuid.UUID,
	window TimeWindow,
	clientNotes Note,
	address Address,
) (*Booking, error) {
	if !svc.IsActive() {
		return nil, catalog.ErrServiceInactive
	}

	quote, err := f.PriceCalculator.Quote(svc, window)
	if err != nil {
		return nil, err
	}

	now := f.Clock.Now()
	return &Booking{
		id:           uuid.New(),
		clientID:     clientID,
		proID:        svc.ProID(),
		serviceID:    svc.ID(),
		franchiseID:  svc.FranchiseID(),
		status:       StatusPending,
		window:       window,
		servicePrice: quote.ServicePrice,
		platformFee:  quote.PlatformFee,
		totalAmount:  quote.Total,
		clientNotes:  clientNotes,
		address:      address,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}
