package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"careserve/internal/domain/booking"
	"careserve/internal/handler/dto/request"
	"careserve/internal/handler/dto/response"
	"careserve/internal/handler/httperr"
	"careserve/internal/handler/middleware"
	"careserve/internal/usecase/commands"
	"careserve/internal/usecase/queries"
	"careserve/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, qs queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Create booking
// @Description Create a new booking for a service
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateBookingRequest true "Booking request"
// @Success 201 {object} response.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing session context"), "Internal server error", nil)
		return
	}

	var req request.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	input, fieldErrs := req.Validate()
	if len(fieldErrs) > 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("validation failed"), "Validation failed", fieldErrs)
		return
	}

	view, err := h.commands.CreateBooking(c.Request.Context(), actor, input)
	if err != nil {
		h.abortCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.FromBookingView(view))
}

// @Summary List bookings
// @Description List bookings visible to the caller, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size (1-100, default 20)"
// @Param offset query int false "Page offset"
// @Param clientId query string false "Filter by client (admin/franchise only)"
// @Param proId query string false "Filter by professional (admin/franchise only)"
// @Success 200 {object} response.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing session context"), "Internal server error", nil)
		return
	}

	filter, page, fieldErrs := parseListQuery(c)
	if len(fieldErrs) > 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("invalid query"), "Invalid query parameters", fieldErrs)
		return
	}

	result, err := h.queries.List(c.Request.Context(), actor, filter, page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, response.FromBookingPage(result))
}

// @Summary Get booking
// @Description Get a booking by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} response.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing session context"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, shared.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, response.FromBookingView(view))
}

// @Summary Update booking status
// @Description Move a booking along its lifecycle
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body request.UpdateBookingStatusRequest true "Target status"
// @Success 200 {object} response.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing session context"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req request.UpdateBookingStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	input, fieldErrs := req.Validate(id)
	if len(fieldErrs) > 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("validation failed"), "Validation failed", fieldErrs)
		return
	}

	view, err := h.commands.UpdateStatus(c.Request.Context(), actor, input)
	if err != nil {
		h.abortCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromBookingView(view))
}

func (h *BookingHandler) abortCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shared.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
	case errors.Is(err, commands.ErrServiceNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Service not found", nil)
	case errors.Is(err, commands.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, commands.ErrInvalidTimeWindow):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Scheduled end must be after scheduled start", nil)
	case errors.Is(err, commands.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status transition", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", nil)
	case errors.Is(err, commands.ErrDuplicateBooking):
		httperr.AbortWithError(c, http.StatusConflict, err, "Duplicate booking", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func parseListQuery(c *gin.Context) (queries.ListBookingsFilter, queries.PageRequest, []httperr.FieldError) {
	var filter queries.ListBookingsFilter
	var page queries.PageRequest
	var fieldErrs []httperr.FieldError

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := booking.NewStatus(raw)
		if err != nil {
			fieldErrs = append(fieldErrs, httperr.FieldError{Field: "status", Message: "must be a valid booking status"})
		} else {
			filter.Status = &status
		}
	}

	page.Limit = parseIntQuery(c, "limit", &fieldErrs)
	page.Offset = parseIntQuery(c, "offset", &fieldErrs)

	filter.ClientID = parseUUIDQuery(c, "clientId", &fieldErrs)
	filter.ProID = parseUUIDQuery(c, "proId", &fieldErrs)

	return filter, page, fieldErrs
}

func parseIntQuery(c *gin.Context, name string, fieldErrs *[]httperr.FieldError) int32 {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 0 {
		*fieldErrs = append(*fieldErrs, httperr.FieldError{Field: name, Message: "must be a non-negative integer"})
		return 0
	}
	return int32(v)
}

func parseUUIDQuery(c *gin.Context, name string, fieldErrs *[]httperr.FieldError) *uuid.UUID {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		*fieldErrs = append(*fieldErrs, httperr.FieldError{Field: name, Message: "must be a valid UUID"})
		return nil
	}
	return &id
}
