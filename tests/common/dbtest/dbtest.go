//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// the minimal interface required for test DB operations.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ServiceFixture struct {
	ID        uuid.UUID
	ProID     uuid.UUID
	Name      string
	BasePrice string
	PriceUnit string
	Active    bool
}

func CreateTestService(t *testing.T, db DBLike, fixture ServiceFixture) uuid.UUID {
	t.Helper()

	if fixture.ID == uuid.Nil {
		fixture.ID = uuid.New()
	}
	if fixture.ProID == uuid.Nil {
		fixture.ProID = uuid.New()
	}
	if fixture.Name == "" {
		fixture.Name = "Test Service"
	}
	if fixture.BasePrice == "" {
		fixture.BasePrice = "20.00"
	}
	if fixture.PriceUnit == "" {
		fixture.PriceUnit = "hour"
	}

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO services (id, pro_id, name, base_price, price_unit, active) VALUES ($1, $2, $3, $4, $5, $6)",
		fixture.ID, fixture.ProID, fixture.Name, fixture.BasePrice, fixture.PriceUnit, fixture.Active)
	require.NoError(t, err)

	return fixture.ID
}

type BookingFixture struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	ProID          uuid.UUID
	ServiceID      uuid.UUID
	Status         string
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	TotalAmount    string
}

func CreateTestBooking(t *testing.T, db DBLike, fixture BookingFixture) uuid.UUID {
	t.Helper()

	if fixture.ID == uuid.Nil {
		fixture.ID = uuid.New()
	}
	if fixture.Status == "" {
		fixture.Status = "pending"
	}
	if fixture.ScheduledStart.IsZero() {
		fixture.ScheduledStart = time.Now().UTC().Add(24 * time.Hour)
	}
	if fixture.ScheduledEnd.IsZero() {
		fixture.ScheduledEnd = fixture.ScheduledStart.Add(2 * time.Hour)
	}
	if fixture.TotalAmount == "" {
		fixture.TotalAmount = "46.00"
	}

	ctx := context.Background()
	_, err := db.Exec(ctx,
		`INSERT INTO bookings
		   (id, client_id, pro_id, service_id, status, scheduled_start, scheduled_end,
		    service_price, platform_fee, total_amount, address, city, postal_code)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, '40.00', '6.00', $8, '12 Carrer de Mallorca', 'Barcelona', '08008')`,
		fixture.ID, fixture.ClientID, fixture.ProID, fixture.ServiceID, fixture.Status,
		fixture.ScheduledStart, fixture.ScheduledEnd, fixture.TotalAmount)
	require.NoError(t, err)

	return fixture.ID
}

// ResetDB truncates all mutable tables so subtests start from an empty state.
func ResetDB(db DBLike) error {
	_, err := db.Exec(context.Background(),
		"TRUNCATE TABLE notification_jobs, bookings, services CASCADE")
	return err
}

func CountNotificationJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM notification_jobs WHERE topic = $1", topic).Scan(&count)
	require.NoError(t, err)
	return count
}
