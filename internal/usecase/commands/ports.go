package commands

import (
	"context"
	"time"

	"careserve/internal/domain/booking"
	"careserve/internal/infra/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Write-side snapshots prevent dependency on read-side query types
type ServiceSnapshot struct {
	ID          uuid.UUID
	ProID       uuid.UUID
	FranchiseID *uuid.UUID
	Name        string
	BasePrice   decimal.Decimal
	PriceUnit   string
	DurationMin *int32
	Active      bool
}

type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// FindForUpdate locks the row for the duration of the transaction.
	FindForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
