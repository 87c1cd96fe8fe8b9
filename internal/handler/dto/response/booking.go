package response

import (
	"time"

	"careserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID             uuid.UUID  `json:"id"`
	ServiceID      uuid.UUID  `json:"serviceId"`
	ServiceName    string     `json:"serviceName"`
	ClientID       uuid.UUID  `json:"clientId"`
	ProID          uuid.UUID  `json:"proId"`
	FranchiseID    *uuid.UUID `json:"franchiseId,omitempty"`
	Status         string     `json:"status"`
	ScheduledStart time.Time  `json:"scheduledStart"`
	ScheduledEnd   time.Time  `json:"scheduledEnd"`
	ActualStart    *time.Time `json:"actualStart,omitempty"`
	ActualEnd      *time.Time `json:"actualEnd,omitempty"`
	ServicePrice   string     `json:"servicePrice"`
	PlatformFee    string     `json:"platformFee"`
	TotalAmount    string     `json:"totalAmount"`
	ClientNotes    *string    `json:"clientNotes,omitempty"`
	ProNotes       *string    `json:"proNotes,omitempty"`
	Address        string     `json:"address"`
	City           string     `json:"city"`
	PostalCode     string     `json:"postalCode"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type BookingListItemResponse struct {
	ID             uuid.UUID `json:"id"`
	ServiceID      uuid.UUID `json:"serviceId"`
	ServiceName    string    `json:"serviceName"`
	ClientID       uuid.UUID `json:"clientId"`
	ProID          uuid.UUID `json:"proId"`
	Status         string    `json:"status"`
	ScheduledStart time.Time `json:"scheduledStart"`
	ScheduledEnd   time.Time `json:"scheduledEnd"`
	TotalAmount    string    `json:"totalAmount"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Pagination struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
	Total  int64 `json:"total"`
}

type BookingListResponse struct {
	Bookings   []*BookingListItemResponse `json:"bookings"`
	Pagination Pagination                 `json:"pagination"`
}

func FromBookingView(bv *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:             bv.ID,
		ServiceID:      bv.ServiceID,
		ServiceName:    bv.ServiceName,
		ClientID:       bv.ClientID,
		ProID:          bv.ProID,
		FranchiseID:    bv.FranchiseID,
		Status:         bv.Status,
		ScheduledStart: bv.ScheduledStart,
		ScheduledEnd:   bv.ScheduledEnd,
		ActualStart:    bv.ActualStart,
		ActualEnd:      bv.ActualEnd,
		ServicePrice:   bv.ServicePrice,
		PlatformFee:    bv.PlatformFee,
		TotalAmount:    bv.TotalAmount,
		ClientNotes:    bv.ClientNotes,
		ProNotes:       bv.ProNotes,
		Address:        bv.Address,
		City:           bv.City,
		PostalCode:     bv.PostalCode,
		CreatedAt:      bv.CreatedAt,
		UpdatedAt:      bv.UpdatedAt,
	}
}

func FromBookingListItem(item *queries.BookingListItem) *BookingListItemResponse {
	return &BookingListItemResponse{
		ID:             item.ID,
		ServiceID:      item.ServiceID,
		ServiceName:    item.ServiceName,
		ClientID:       item.ClientID,
		ProID:          item.ProID,
		Status:         item.Status,
		ScheduledStart: item.ScheduledStart,
		ScheduledEnd:   item.ScheduledEnd,
		TotalAmount:    item.TotalAmount,
		CreatedAt:      item.CreatedAt,
	}
}

func FromBookingPage(page *queries.BookingPage) *BookingListResponse {
	items := make([]*BookingListItemResponse, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, FromBookingListItem(item))
	}
	return &BookingListResponse{
		Bookings: items,
		Pagination: Pagination{
			Limit:  page.Limit,
			Offset: page.Offset,
			Total:  page.Total,
		},
	}
}
