package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking links one client, one professional and one service over a
// scheduled window with derived pricing. Client, pro and service identities
// are fixed at construction; only status, notes and actual timestamps move.
type Booking struct {
	id             uuid.UUID
	clientID       uuid.UUID
	proID          uuid.UUID
	serviceID      uuid.UUID
	franchiseID    *uuid.UUID
	status         Status
	window         TimeWindow
	actualStart    *time.Time
	actualEnd      *time.Time
	servicePrice   Money
	platformFee    Money
	totalAmount    Money
	clientNotes    Note
	proNotes       Note
	address        Address
	createdAt      time.Time
	updatedAt      time.Time
}

func ReconstructBooking(
	id, clientID, proID, serviceID uuid.UUID,
	franchiseID *uuid.UUID,
	status Status,
	window TimeWindow,
	actualStart, actualEnd *time.Time,
	servicePrice, platformFee, totalAmount Money,
	clientNotes, proNotes Note,
	address Address,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:           id,
		clientID:     clientID,
		proID:        proID,
		serviceID:    serviceID,
		franchiseID:  franchiseID,
		status:       status,
		window:       window,
		actualStart:  actualStart,
		actualEnd:    actualEnd,
		servicePrice: servicePrice,
		platformFee:  platformFee,
		totalAmount:  totalAmount,
		clientNotes:  clientNotes,
		proNotes:     proNotes,
		address:      address,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Transition moves the booking along the workflow table, recording actual
// start/end times as a side effect of entering in_progress and completed.
func (b *Booking) Transition(next Status, now time.Time) error {
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}

	switch next {
	case StatusInProgress:
		t := now
		b.actualStart = &t
	case StatusCompleted:
		t := now
		b.actualEnd = &t
	}

	b.status = next
	return nil
}

func (b *Booking) SetClientNotes(n Note) { b.clientNotes = n }
func (b *Booking) SetProNotes(n Note)    { b.proNotes = n }

func (b *Booking) IsPending() bool   { return b.status == StatusPending }
func (b *Booking) IsCancelled() bool { return b.status == StatusCancelled }

func (b *Booking) ID() uuid.UUID           { return b.id }
func (b *Booking) ClientID() uuid.UUID     { return b.clientID }
func (b *Booking) ProID() uuid.UUID        { return b.proID }
func (b *Booking) ServiceID() uuid.UUID    { return b.serviceID }
func (b *Booking) FranchiseID() *uuid.UUID { return b.franchiseID }
func (b *Booking) Status() Status          { return b.status }
func (b *Booking) Window() TimeWindow      { return b.window }
func (b *Booking) ActualStart() *time.Time { return b.actualStart }
func (b *Booking) ActualEnd() *time.Time   { return b.actualEnd }
func (b *Booking) ServicePrice() Money     { return b.servicePrice }
func (b *Booking) PlatformFee() Money      { return b.platformFee }
func (b *Booking) TotalAmount() Money      { return b.totalAmount }
func (b *Booking) ClientNotes() Note       { return b.clientNotes }
func (b *Booking) ProNotes() Note          { return b.proNotes }
func (b *Booking) Address() Address        { return b.address }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time    { return b.updatedAt }
