package queries

import (
	"context"

	"careserve/internal/domain/booking"
	"careserve/internal/domain/user"
	"careserve/internal/infra"
	"careserve/internal/pkg/clock"
	"careserve/internal/pkg/errs"
	"careserve/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrBookingNotFound = errs.New("booking not found")

// ListBookingsFilter is the caller-supplied part of the list conjunction.
// Explicit client/pro filters are honored only for elevated roles; for
// client and pro callers the scope is forced to their own identity.
type ListBookingsFilter struct {
	Status   *booking.Status
	ClientID *uuid.UUID
	ProID    *uuid.UUID
}

// ScopedFilter is the fully resolved conjunction handed to the read store.
type ScopedFilter struct {
	ClientID *uuid.UUID
	ProID    *uuid.UUID
	Status   *booking.Status
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter ScopedFilter, limit, offset int32) ([]*BookingListItem, int64, error)
	ListAllForUser(ctx context.Context, userID uuid.UUID, asPro bool) ([]*BookingView, error)
	Summary(ctx context.Context, filter ScopedFilter) (*DashboardSummary, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem bypasses actor scoping for read-after-write inside commands.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, actor shared.Actor, filter ListBookingsFilter, page PageRequest) (*BookingPage, error)
	Dashboard(ctx context.Context, actor shared.Actor) (*DashboardSummary, error)
	Export(ctx context.Context, actor shared.Actor) (*ExportDocument, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
	clock clock.Clock
}

func NewBookingQueries(store BookingReadStore, clock clock.Clock) BookingQueries {
	return &bookingQueriesImpl{store: store, clock: clock}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.Role.IsElevated() && view.ClientID != actor.ID && view.ProID != actor.ID {
		return nil, shared.ErrForbidden
	}

	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, actor shared.Actor, filter ListBookingsFilter, page PageRequest) (*BookingPage, error) {
	scoped := resolveScope(actor, filter)
	page = page.Normalize()

	items, total, err := q.store.List(ctx, scoped, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	return &BookingPage{
		Items:  items,
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}, nil
}

func (q *bookingQueriesImpl) Dashboard(ctx context.Context, actor shared.Actor) (*DashboardSummary, error) {
	scoped := resolveScope(actor, ListBookingsFilter{})
	return q.store.Summary(ctx, scoped)
}

func (q *bookingQueriesImpl) Export(ctx context.Context, actor shared.Actor) (*ExportDocument, error) {
	asPro := actor.Role == user.RolePro
	views, err := q.store.ListAllForUser(ctx, actor.ID, asPro)
	if err != nil {
		return nil, err
	}

	return &ExportDocument{
		UserID:      actor.ID,
		Role:        actor.Role.String(),
		GeneratedAt: q.clock.Now(),
		Bookings:    views,
	}, nil
}

// resolveScope collapses the actor role and the requested filter into the
// effective conjunction. Clients and pros can never widen their own scope;
// their explicit clientId/proId filters are dropped, not rejected.
func resolveScope(actor shared.Actor, filter ListBookingsFilter) ScopedFilter {
	scoped := ScopedFilter{Status: filter.Status}

	switch {
	case actor.Role.IsElevated():
		scoped.ClientID = filter.ClientID
		scoped.ProID = filter.ProID
	case actor.Role == user.RolePro:
		id := actor.ID
		scoped.ProID = &id
	default:
		id := actor.ID
		scoped.ClientID = &id
	}

	return scoped
}
