package repository

import (
	"context"
	"time"

	"careserve/internal/domain/booking"
	"careserve/internal/infra"
	"careserve/internal/infra/db"
	"careserve/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (
    id, client_id, pro_id, service_id, franchise_id, status,
    scheduled_start, scheduled_end,
    service_price, platform_fee, total_amount,
    client_notes, address, city, postal_code
) VALUES (
    $1, $2, $3, $4, $5, $6,
    $7, $8,
    $9, $10, $11,
    NULLIF($12, ''), $13, $14, $15
)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.ClientID(),
		b.ProID(),
		b.ServiceID(),
		pgconv.UUIDPtrToPgtype(b.FranchiseID()),
		b.Status().String(),
		b.Window().Start(),
		b.Window().End(),
		b.ServicePrice().String(),
		b.PlatformFee().String(),
		b.TotalAmount().String(),
		b.ClientNotes().String(),
		b.Address().Street(),
		b.Address().City(),
		b.Address().PostalCode(),
	).Scan(&id)
	if err != nil {
		if kind, ok := infra.PgErrorKind(err); ok {
			return uuid.Nil, infra.WrapRepoErr("failed to create booking", err, kind)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}

	return id, nil
}

const findBookingForUpdateSQL = `
SELECT id, client_id, pro_id, service_id, franchise_id, status,
       scheduled_start, scheduled_end, actual_start, actual_end,
       service_price, platform_fee, total_amount,
       client_notes, pro_notes, address, city, postal_code,
       created_at, updated_at
FROM bookings
WHERE id = $1
FOR UPDATE`

func (r *BookingRepository) FindForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	var (
		bookingID, clientID, proID, serviceID uuid.UUID
		franchiseID                           pgtype.UUID
		status                                string
		scheduledStart, scheduledEnd          time.Time
		actualStart, actualEnd                pgtype.Timestamptz
		servicePrice, platformFee, total      string
		clientNotes, proNotes                 pgtype.Text
		street, city, postalCode              string
		createdAt, updatedAt                  time.Time
	)

	err := tx.QueryRow(ctx, findBookingForUpdateSQL, id).Scan(
		&bookingID, &clientID, &proID, &serviceID, &franchiseID, &status,
		&scheduledStart, &scheduledEnd, &actualStart, &actualEnd,
		&servicePrice, &platformFee, &total,
		&clientNotes, &proNotes, &street, &city, &postalCode,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking for update", err)
	}

	return reconstruct(reconstructParams{
		bookingID:      bookingID,
		clientID:       clientID,
		proID:          proID,
		serviceID:      serviceID,
		franchiseID:    franchiseID,
		status:         status,
		scheduledStart: scheduledStart,
		scheduledEnd:   scheduledEnd,
		actualStart:    actualStart,
		actualEnd:      actualEnd,
		servicePrice:   servicePrice,
		platformFee:    platformFee,
		total:          total,
		clientNotes:    clientNotes,
		proNotes:       proNotes,
		street:         street,
		city:           city,
		postalCode:     postalCode,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	})
}

const updateBookingStatusSQL = `
UPDATE bookings
SET status = $2,
    actual_start = $3,
    actual_end = $4,
    client_notes = $5,
    pro_notes = $6,
    updated_at = now()
WHERE id = $1`

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	tag, err := tx.Exec(ctx, updateBookingStatusSQL,
		b.ID(),
		b.Status().String(),
		timePtrToPgtype(b.ActualStart()),
		timePtrToPgtype(b.ActualEnd()),
		noteToPgtype(b.ClientNotes()),
		noteToPgtype(b.ProNotes()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

type reconstructParams struct {
	bookingID, clientID, proID, serviceID uuid.UUID
	franchiseID                           pgtype.UUID
	status                                string
	scheduledStart, scheduledEnd          time.Time
	actualStart, actualEnd                pgtype.Timestamptz
	servicePrice, platformFee, total      string
	clientNotes, proNotes                 pgtype.Text
	street, city, postalCode              string
	createdAt, updatedAt                  time.Time
}

func reconstruct(p reconstructParams) (*booking.Booking, error) {
	window, err := booking.NewTimeWindow(p.scheduledStart, p.scheduledEnd)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt booking window", err)
	}

	servicePrice, err := booking.NewMoneyFromString(p.servicePrice)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt service price", err)
	}
	platformFee, err := booking.NewMoneyFromString(p.platformFee)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt platform fee", err)
	}
	total, err := booking.NewMoneyFromString(p.total)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt total amount", err)
	}

	address, err := booking.NewAddress(p.street, p.city, p.postalCode)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt booking address", err)
	}

	status, err := booking.NewStatus(p.status)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt booking status", err)
	}

	return booking.ReconstructBooking(
		p.bookingID, p.clientID, p.proID, p.serviceID,
		pgconv.UUIDPtrFromPgtype(p.franchiseID),
		status,
		window,
		timePtrFromPgtype(p.actualStart),
		timePtrFromPgtype(p.actualEnd),
		servicePrice, platformFee, total,
		noteFromPgtype(p.clientNotes),
		noteFromPgtype(p.proNotes),
		address,
		p.createdAt, p.updatedAt,
	), nil
}

func timePtrFromPgtype(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func timePtrToPgtype(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func noteFromPgtype(t pgtype.Text) booking.Note {
	if !t.Valid {
		return booking.NewNote("")
	}
	return booking.NewNote(t.String)
}

func noteToPgtype(n booking.Note) pgtype.Text {
	if n.IsEmpty() {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: n.String(), Valid: true}
}
