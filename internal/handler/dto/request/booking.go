package request

import (
	"strings"
	"time"

	"careserve/internal/domain/booking"
	"careserve/internal/handler/httperr"
	"careserve/internal/usecase/commands"

	"github.com/google/uuid"
)

// CreateBookingRequest keeps the timestamps as raw strings so a single
// pass can report every malformed field instead of stopping at the first
// bind failure.
type CreateBookingRequest struct {
	ServiceID      string  `json:"serviceId"`
	ScheduledStart string  `json:"scheduledStart"`
	ScheduledEnd   string  `json:"scheduledEnd"`
	ClientNotes    *string `json:"clientNotes,omitempty"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	PostalCode     string  `json:"postalCode"`
}

// Validate checks every field and returns the full list of violations.
func (r CreateBookingRequest) Validate() (commands.CreateBookingInput, []httperr.FieldError) {
	var fieldErrs []httperr.FieldError
	var input commands.CreateBookingInput

	serviceID := strings.TrimSpace(r.ServiceID)
	if serviceID == "" {
		fieldErrs = append(fieldErrs, httperr.FieldError{Field: "serviceId", Message: "is required"})
	} else if id, err := uuid.Parse(serviceID); err != nil {
		fieldErrs = append(fieldErrs, httperr.FieldError{Field: "serviceId", Message: "must be a valid UUID"})
	} else {
		input.ServiceID = id
	}

	input.ScheduledStart = parseTimestamp("scheduledStart", r.ScheduledStart, &fieldErrs)
	input.ScheduledEnd = parseTimestamp("scheduledEnd", r.ScheduledEnd, &fieldErrs)

	if r.ClientNotes != nil {
		input.ClientNotes = strings.TrimSpace(*r.ClientNotes)
	}

	input.Address = requireString("address", r.Address, &fieldErrs)
	input.City = requireString("city", r.City, &fieldErrs)
	input.PostalCode = requireString("postalCode", r.PostalCode, &fieldErrs)

	if len(fieldErrs) > 0 {
		return commands.CreateBookingInput{}, fieldErrs
	}
	return input, nil
}

func parseTimestamp(field, raw string, fieldErrs *[]httperr.FieldError) time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		*fieldErrs = append(*fieldErrs, httperr.FieldError{Field: field, Message: "is required"})
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		*fieldErrs = append(*fieldErrs, httperr.FieldError{Field: field, Message: "must be an ISO-8601 timestamp"})
		return time.Time{}
	}
	return t.UTC()
}

func requireString(field, raw string, fieldErrs *[]httperr.FieldError) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		*fieldErrs = append(*fieldErrs, httperr.FieldError{Field: field, Message: "is required"})
	}
	return trimmed
}

type UpdateBookingStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

func (r UpdateBookingStatusRequest) Validate(bookingID uuid.UUID) (commands.UpdateStatusInput, []httperr.FieldError) {
	var fieldErrs []httperr.FieldError

	status, err := booking.NewStatus(strings.TrimSpace(r.Status))
	if err != nil {
		fieldErrs = append(fieldErrs, httperr.FieldError{Field: "status", Message: "must be a valid booking status"})
	}

	var notes *string
	if r.Notes != nil {
		trimmed := strings.TrimSpace(*r.Notes)
		if trimmed != "" {
			notes = &trimmed
		}
	}

	if len(fieldErrs) > 0 {
		return commands.UpdateStatusInput{}, fieldErrs
	}
	return commands.UpdateStatusInput{
		BookingID: bookingID,
		Next:      status,
		Notes:     notes,
	}, nil
}
