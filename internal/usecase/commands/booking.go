package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"careserve/internal/domain/booking"
	"careserve/internal/domain/catalog"
	"careserve/internal/domain/user"
	"careserve/internal/infra"
	"careserve/internal/infra/db"
	"careserve/internal/pkg/clock"
	"careserve/internal/pkg/errs"
	"careserve/internal/usecase/queries"
	"careserve/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrServiceNotFound         = errs.New("service not found")
	ErrInvalidTimeWindow       = errs.New("invalid time window")
	ErrInvalidTransition       = errs.New("invalid status transition")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrDuplicateBooking        = errs.New("duplicate booking id")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// CreateBookingInput is the normalized output of the request validator:
// parsed timestamps, trimmed strings, nothing framework-shaped.
type CreateBookingInput struct {
	ServiceID      uuid.UUID
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	ClientNotes    string
	Address        string
	City           string
	PostalCode     string
}

type UpdateStatusInput struct {
	BookingID uuid.UUID
	Next      booking.Status
	Notes     *string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, actor shared.Actor, input CreateBookingInput) (*queries.BookingView, error)
	UpdateStatus(ctx context.Context, actor shared.Actor, input UpdateStatusInput) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	bookingRepo      BookingRepository
	serviceRepo      ServiceRepository
	notificationRepo NotificationRepository
	factory          *booking.Factory
	bookingQueries   queries.BookingQueries
	db               *pgxpool.Pool
	clock            clock.Clock
}

func NewBookingCommands(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	notificationRepo NotificationRepository,
	factory *booking.Factory,
	bookingQueries queries.BookingQueries,
	db *pgxpool.Pool,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingRepo:      bookingRepo,
		serviceRepo:      serviceRepo,
		notificationRepo: notificationRepo,
		factory:          factory,
		bookingQueries:   bookingQueries,
		db:               db,
		clock:            clock,
	}
}

func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, actor shared.Actor, input CreateBookingInput) (*queries.BookingView, error) {
	if _, err := shared.Authorize(actor, user.RoleClient); err != nil {
		return nil, err
	}

	svc, err := c.resolveService(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}

	window, err := booking.NewTimeWindow(input.ScheduledStart, input.ScheduledEnd)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeWindow)
	}

	address, err := booking.NewAddress(input.Address, input.City, input.PostalCode)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	entity, err := c.factory.CreateBooking(svc, actor.ID, window, booking.NewNote(input.ClientNotes), address)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceInactive):
			return nil, ErrServiceNotFound
		case errors.Is(err, booking.ErrInvalidTimeWindow):
			return nil, errs.Mark(err, ErrInvalidTimeWindow)
		default:
			return nil, errs.Mark(err, ErrDomainValidation)
		}
	}

	return c.persistNewBooking(ctx, entity)
}

func (c *bookingCommandsImpl) persistNewBooking(ctx context.Context, entity *booking.Booking) (*queries.BookingView, error) {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	bookingID, err := c.bookingRepo.Create(ctx, tx, entity)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateBooking
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if notifyErr := c.enqueueCreatedNotification(ctx, tx, bookingID); notifyErr != nil {
		return nil, errs.Mark(notifyErr, ErrDatabaseOperationFailed)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return nil, errs.Mark(commitErr, ErrDatabaseOperationFailed)
	}

	// Read-after-write: return the complete view from the read store
	view, err := c.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return view, nil
}

// transitionRoles is the allowed-roles set per target status. Ownership is
// checked separately for non-elevated roles.
var transitionRoles = map[booking.Status][]user.Role{
	booking.StatusConfirmed:  {user.RolePro, user.RoleAdmin},
	booking.StatusInProgress: {user.RolePro, user.RoleAdmin},
	booking.StatusCompleted:  {user.RolePro, user.RoleAdmin},
	booking.StatusCancelled:  {user.RoleClient, user.RolePro, user.RoleFranchise, user.RoleAdmin},
	booking.StatusRefunded:   {user.RoleAdmin},
}

func (c *bookingCommandsImpl) UpdateStatus(ctx context.Context, actor shared.Actor, input UpdateStatusInput) (*queries.BookingView, error) {
	allowed, ok := transitionRoles[input.Next]
	if !ok {
		return nil, ErrInvalidTransition
	}
	if _, err := shared.Authorize(actor, allowed...); err != nil {
		return nil, err
	}

	tx, err := c.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	entity, err := c.bookingRepo.FindForUpdate(ctx, tx, input.BookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := checkOwnership(actor, entity); err != nil {
		return nil, err
	}

	if err := entity.Transition(input.Next, c.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrInvalidTransition)
	}

	if input.Notes != nil {
		note := booking.NewNote(*input.Notes)
		if actor.Role == user.RoleClient {
			entity.SetClientNotes(note)
		} else {
			entity.SetProNotes(note)
		}
	}

	if err := c.bookingRepo.UpdateStatus(ctx, tx, entity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return nil, errs.Mark(commitErr, ErrDatabaseOperationFailed)
	}

	return c.bookingQueries.GetByIDSystem(ctx, input.BookingID)
}

func checkOwnership(actor shared.Actor, entity *booking.Booking) error {
	if actor.Role.IsElevated() {
		return nil
	}
	switch actor.Role {
	case user.RoleClient:
		if entity.ClientID() != actor.ID {
			return shared.ErrForbidden
		}
	case user.RolePro:
		if entity.ProID() != actor.ID {
			return shared.ErrForbidden
		}
	}
	return nil
}

func (c *bookingCommandsImpl) resolveService(ctx context.Context, serviceID uuid.UUID) (*catalog.Service, error) {
	snapshot, err := c.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !snapshot.Active {
		// Inactive services are invisible to the booking flow
		return nil, ErrServiceNotFound
	}

	svc, err := catalog.NewService(
		snapshot.ID,
		snapshot.ProID,
		snapshot.FranchiseID,
		snapshot.Name,
		snapshot.BasePrice,
		catalog.PriceUnit(snapshot.PriceUnit),
		snapshot.DurationMin,
		snapshot.Active,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	return svc, nil
}

func (c *bookingCommandsImpl) enqueueCreatedNotification(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       "booking_created",
	})
	if err != nil {
		return err
	}

	return c.notificationRepo.CreateJob(ctx, tx, "email", "booking_created", payload, c.clock.Now())
}
