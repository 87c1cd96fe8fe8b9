package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID             uuid.UUID  `json:"id"`
	ServiceID      uuid.UUID  `json:"service_id"`
	ServiceName    string     `json:"service_name"`
	ClientID       uuid.UUID  `json:"client_id"`
	ProID          uuid.UUID  `json:"pro_id"`
	FranchiseID    *uuid.UUID `json:"franchise_id,omitempty"`
	Status         string     `json:"status"`
	ScheduledStart time.Time  `json:"scheduled_start"`
	ScheduledEnd   time.Time  `json:"scheduled_end"`
	ActualStart    *time.Time `json:"actual_start,omitempty"`
	ActualEnd      *time.Time `json:"actual_end,omitempty"`
	ServicePrice   string     `json:"service_price"`
	PlatformFee    string     `json:"platform_fee"`
	TotalAmount    string     `json:"total_amount"`
	ClientNotes    *string    `json:"client_notes,omitempty"`
	ProNotes       *string    `json:"pro_notes,omitempty"`
	Address        string     `json:"address"`
	City           string     `json:"city"`
	PostalCode     string     `json:"postal_code"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID             uuid.UUID `json:"id"`
	ServiceID      uuid.UUID `json:"service_id"`
	ServiceName    string    `json:"service_name"`
	ClientID       uuid.UUID `json:"client_id"`
	ProID          uuid.UUID `json:"pro_id"`
	Status         string    `json:"status"`
	ScheduledStart time.Time `json:"scheduled_start"`
	ScheduledEnd   time.Time `json:"scheduled_end"`
	TotalAmount    string    `json:"total_amount"`
	CreatedAt      time.Time `json:"created_at"`
}

type ServiceView struct {
	ID          uuid.UUID  `json:"id"`
	ProID       uuid.UUID  `json:"pro_id"`
	FranchiseID *uuid.UUID `json:"franchise_id,omitempty"`
	Name        string     `json:"name"`
	BasePrice   string     `json:"base_price"`
	PriceUnit   string     `json:"price_unit"`
	DurationMin *int32     `json:"duration_min,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PageRequest is offset/limit pagination with the bounds from the API
// contract: limit in [1,100] defaulting to 20, offset >= 0.
type PageRequest struct {
	Limit  int32
	Offset int32
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

func (p PageRequest) Normalize() PageRequest {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// BookingPage carries the page plus the total count under the same filter,
// independent of limit/offset.
type BookingPage struct {
	Items  []*BookingListItem
	Total  int64
	Limit  int32
	Offset int32
}

type DashboardSummary struct {
	TotalBookings int64            `json:"total_bookings"`
	StatusCounts  map[string]int64 `json:"status_counts"`
	Revenue       string           `json:"revenue"`
}

// ExportDocument is the GDPR data export payload for one user.
type ExportDocument struct {
	UserID      uuid.UUID      `json:"user_id"`
	Role        string         `json:"role"`
	GeneratedAt time.Time      `json:"generated_at"`
	Bookings    []*BookingView `json:"bookings"`
}
