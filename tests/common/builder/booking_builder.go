//go:build unit || e2e

package builder

import (
	"time"

	"careserve/internal/domain/booking"
	"careserve/internal/handler/dto/request"
	"careserve/internal/pkg/clock"
	"careserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingBuilder produces consistent fixtures across the domain, DTO and
// read-model layers. Defaults describe a two hour cleaning at 20.00/h:
// service price 40.00, platform fee 6.00, total 46.00.
type BookingBuilder struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	ProID          uuid.UUID
	ServiceID      uuid.UUID
	ServiceName    string
	FranchiseID    *uuid.UUID
	Status         booking.Status
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	ServicePrice   string
	PlatformFee    string
	TotalAmount    string
	ClientNotes    string
	Address        string
	City           string
	PostalCode     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:             uuid.New(),
		ClientID:       uuid.New(),
		ProID:          uuid.New(),
		ServiceID:      uuid.New(),
		ServiceName:    "Deep Cleaning",
		Status:         booking.StatusPending,
		ScheduledStart: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		ScheduledEnd:   time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
		ServicePrice:   "40.00",
		PlatformFee:    "6.00",
		TotalAmount:    "46.00",
		ClientNotes:    "Ring the top bell",
		Address:        "12 Carrer de Mallorca",
		City:           "Barcelona",
		PostalCode:     "08008",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// BuildDomain runs the real creation path: service entity, factory, pricing.
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	svc, err := NewServiceBuilder().
		With(func(sb *ServiceBuilder) {
			sb.ID = b.ServiceID
			sb.ProID = b.ProID
			sb.FranchiseID = b.FranchiseID
			sb.Name = b.ServiceName
		}).
		BuildDomain()
	if err != nil {
		return nil, err
	}

	window, err := booking.NewTimeWindow(b.ScheduledStart, b.ScheduledEnd)
	if err != nil {
		return nil, err
	}

	address, err := booking.NewAddress(b.Address, b.City, b.PostalCode)
	if err != nil {
		return nil, err
	}

	factory := booking.NewFactory(
		clock.NewMockClock(b.CreatedAt),
		booking.NewDefaultPriceCalculator(decimal.RequireFromString("0.15")),
	)
	return factory.CreateBooking(svc, b.ClientID, window, booking.NewNote(b.ClientNotes), address)
}

// BuildReconstructed bypasses the factory so tests can start from any status.
func (b *BookingBuilder) BuildReconstructed() (*booking.Booking, error) {
	window, err := booking.NewTimeWindow(b.ScheduledStart, b.ScheduledEnd)
	if err != nil {
		return nil, err
	}
	address, err := booking.NewAddress(b.Address, b.City, b.PostalCode)
	if err != nil {
		return nil, err
	}

	servicePrice, err := booking.NewMoneyFromString(b.ServicePrice)
	if err != nil {
		return nil, err
	}
	platformFee, err := booking.NewMoneyFromString(b.PlatformFee)
	if err != nil {
		return nil, err
	}
	totalAmount, err := booking.NewMoneyFromString(b.TotalAmount)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		b.ID, b.ClientID, b.ProID, b.ServiceID,
		b.FranchiseID,
		b.Status,
		window,
		nil, nil,
		servicePrice, platformFee, totalAmount,
		booking.NewNote(b.ClientNotes), booking.NewNote(""),
		address,
		b.CreatedAt, b.UpdatedAt,
	), nil
}

func (b *BookingBuilder) BuildCreateRequestDTO() request.CreateBookingRequest {
	notes := b.ClientNotes
	return request.CreateBookingRequest{
		ServiceID:      b.ServiceID.String(),
		ScheduledStart: b.ScheduledStart.Format(time.RFC3339),
		ScheduledEnd:   b.ScheduledEnd.Format(time.RFC3339),
		ClientNotes:    &notes,
		Address:        b.Address,
		City:           b.City,
		PostalCode:     b.PostalCode,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	notes := b.ClientNotes
	return &queries.BookingView{
		ID:             b.ID,
		ServiceID:      b.ServiceID,
		ServiceName:    b.ServiceName,
		ClientID:       b.ClientID,
		ProID:          b.ProID,
		FranchiseID:    b.FranchiseID,
		Status:         b.Status.String(),
		ScheduledStart: b.ScheduledStart,
		ScheduledEnd:   b.ScheduledEnd,
		ServicePrice:   b.ServicePrice,
		PlatformFee:    b.PlatformFee,
		TotalAmount:    b.TotalAmount,
		ClientNotes:    &notes,
		Address:        b.Address,
		City:           b.City,
		PostalCode:     b.PostalCode,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:             b.ID,
		ServiceID:      b.ServiceID,
		ServiceName:    b.ServiceName,
		ClientID:       b.ClientID,
		ProID:          b.ProID,
		Status:         b.Status.String(),
		ScheduledStart: b.ScheduledStart,
		ScheduledEnd:   b.ScheduledEnd,
		TotalAmount:    b.TotalAmount,
		CreatedAt:      b.CreatedAt,
	}
}
