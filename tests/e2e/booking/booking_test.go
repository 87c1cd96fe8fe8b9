//go:build e2e

package booking_test

import (
	"net/http"
	"testing"
	"time"

	"careserve/internal/domain/user"
	"careserve/internal/handler/dto/response"
	"careserve/internal/usecase/queries"
	"careserve/tests/common/authtest"
	"careserve/tests/common/builder"
	"careserve/tests/common/dbtest"
	"careserve/tests/common/httptest"
	"careserve/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/bookings"

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) clientToken(id uuid.UUID) string {
	return authtest.IssueToken(s.T(), s.Config.Session.Secret, id, string(user.RoleClient))
}

func (s *BookingSuite) proToken(id uuid.UUID) string {
	return authtest.IssueToken(s.T(), s.Config.Session.Secret, id, string(user.RolePro))
}

func (s *BookingSuite) adminToken() string {
	return authtest.IssueToken(s.T(), s.Config.Session.Secret, uuid.New(), string(user.RoleAdmin))
}

// =============================================================================
// TestCreateBooking - Booking creation API tests
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: Client can create a booking and pricing is applied", func() {
		t := s.T()

		proID := uuid.New()
		serviceID := dbtest.CreateTestService(t, s.DB, dbtest.ServiceFixture{
			ProID:     proID,
			Name:      "Deep Cleaning",
			BasePrice: "20.00",
			PriceUnit: "hour",
			Active:    true,
		})

		clientID := uuid.New()
		reqBody := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.ServiceID = serviceID }).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, s.clientToken(clientID))

		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.NotEqual(t, uuid.Nil, created.ID)

		notes := "Ring the top bell"
		expected := &response.BookingResponse{
			ServiceID:    serviceID,
			ServiceName:  "Deep Cleaning",
			ClientID:     clientID,
			ProID:        proID,
			Status:       "pending",
			ServicePrice: "40.00",
			PlatformFee:  "6.00",
			TotalAmount:  "46.00",
			ClientNotes:  &notes,
			Address:      "12 Carrer de Mallorca",
			City:         "Barcelona",
			PostalCode:   "08008",
		}
		opts := cmpopts.IgnoreFields(response.BookingResponse{},
			"ID", "ScheduledStart", "ScheduledEnd", "CreatedAt", "UpdatedAt")
		if diff := cmp.Diff(expected, &created, opts); diff != "" {
			t.Errorf("Booking response mismatch (-want +got):\n%s", diff)
		}
		require.Nil(t, created.ActualStart)
		require.Nil(t, created.ActualEnd)

		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, "booking_created"),
			"Booking creation should enqueue exactly one notification job")
	})

	s.Run("Error case: Unknown service returns 404", func() {
		t := s.T()

		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, s.clientToken(uuid.New()))
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Service not found")
	})

	s.Run("Error case: Inactive service returns 404", func() {
		t := s.T()

		serviceID := dbtest.CreateTestService(t, s.DB, dbtest.ServiceFixture{Active: false})
		reqBody := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.ServiceID = serviceID }).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, s.clientToken(uuid.New()))
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Service not found")
	})

	s.Run("Error case: End before start returns 400", func() {
		t := s.T()

		serviceID := dbtest.CreateTestService(t, s.DB, dbtest.ServiceFixture{Active: true})
		reqBody := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) {
				b.ServiceID = serviceID
				b.ScheduledStart, b.ScheduledEnd = b.ScheduledEnd, b.ScheduledStart
			}).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, s.clientToken(uuid.New()))
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Scheduled end must be after scheduled start")
	})

	s.Run("Error case: Non-client roles cannot create bookings", func() {
		t := s.T()

		serviceID := dbtest.CreateTestService(t, s.DB, dbtest.ServiceFixture{Active: true})
		reqBody := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.ServiceID = serviceID }).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, s.proToken(uuid.New()))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Access denied")
	})

	s.Run("Auth test - Unauthorized when no token is presented", func() {
		t := s.T()

		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestGetBooking - Booking detail API tests
// =============================================================================

func (s *BookingSuite) TestGetBooking() {
	s.Run("Normal case: Owner and admin can read, strangers cannot", func() {
		t := s.T()

		clientID := uuid.New()
		proID := uuid.New()
		serviceID := dbtest.CreateTestService(t, s.DB, dbtest.ServiceFixture{ProID: proID, Active: true})
		bookingID := dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{
			ClientID:  clientID,
			ProID:     proID,
			ServiceID: serviceID,
		})

		url := bookingsURL + "/" + bookingID.String()

		var got response.BookingResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.clientToken(clientID))
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.Equal(t, bookingID, got.ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.proToken(proID))
		require.Equal(t, http.StatusOK, w.Code, "Assigned professional should read the booking")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.adminToken())
		require.Equal(t, http.StatusOK, w.Code, "Admin should read any booking")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.clientToken(uuid.New()))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Access denied")
	})

	s.Run("Error case: Returns 404 for non-existent booking", func() {
		t := s.T()

		url := bookingsURL + "/" + uuid.New().String()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.adminToken())
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Booking not found")
	})
}

// =============================================================================
// TestListBookings - Listing, scoping and pagination tests
// =============================================================================

func (s *BookingSuite) TestListBookings() {
	s.Run("Normal case: Clients only see their own bookings", func() {
		t := s.T()

		proID := uuid.New()
		serviceID := dbtest.CreateTestService(t, s.DB, dbtest.ServiceFixture{ProID: proID, Active: true})

		clientA := uuid.New()
		clientB := uuid.New()
		dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{ClientID: clientA, ProID: proID, ServiceID: serviceID})
		dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{ClientID: clientA, ProID: proID, ServiceID: serviceID})
		dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{ClientID: clientB, ProID: proID, ServiceID: serviceID})

		var listA response.BookingListResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, s.clientToken(clientA))
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &listA)
		require.Len(t, listA.Bookings, 2)
		require.Equal(t, int64(2), listA.Pagination.Total)
		for _, item := range listA.Bookings {
			require.Equal(t, clientA, item.ClientID)
		}

		// An explicit clientId filter from a client is dropped, not honored
		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			bookingsURL+"?clientId="+clientB.String(), nil, s.clientToken(clientA))
		var filtered response.BookingListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &filtered)
		require.Equal(t, int64(2), filtered.Pagination.Total)

		var listAll response.BookingListResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, s.adminToken())
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &listAll)
		require.Equal(t, int64(3), listAll.Pagination.Total)
	})

	s.Run("Normal case: Admin can filter by client and status", func() {
		t := s.T()

		proID := uuid.New()
		serviceID := dbtest.CreateTestService(t, s.DB, dbtest.ServiceFixture{ProID: proID, Active: true})

		clientA := uuid.New()
		clientB := uuid.New()
		dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{ClientID: clientA, ProID: proID, ServiceID: serviceID, Status: "confirmed"})
		dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{ClientID: clientB, ProID: proID, ServiceID: serviceID, Status: "pending"})

		var byClient response.BookingListResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			bookingsURL+"?clientId="+clientA.String(), nil, s.adminToken())
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &byClient)
		require.Equal(t, int64(1), byClient.Pagination.Total)
		require.Equal(t, clientA, byClient.Bookings[0].ClientID)

		var byStatus response.BookingListResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			bookingsURL+"?status=pending", nil, s.adminToken())
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &byStatus)
		require.Equal(t, int64(1), byStatus.Pagination.Total)
		require.Equal(t, "pending", byStatus.Bookings[0].Status)
	})

	s.Run("Normal case: Pagination caps and offsets", func() {
		t := s.T()

		proID := uuid.New()
		serviceID := dbtest.CreateTestService(t, s.DB, dbtest.ServiceFixture{ProID: proID, Active: true})
		clientID := uuid.New()
		base := time.Now().UTC().Add(48 * time.Hour)
		for i := range 5 {
			dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{
				ClientID:       clientID,
				ProID:          proID,
				ServiceID:      serviceID,
				ScheduledStart: base.Add(time.Duration(i) * 3 * time.Hour),
				ScheduledEnd:   base.Add(time.Duration(i)*3*time.Hour + 2*time.Hour),
			})
		}

		var page response.BookingListResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			bookingsURL+"?limit=2&offset=4", nil, s.clientToken(clientID))
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		require.Len(t, page.Bookings, 1, "Offset past the tail should return the remainder")
		require.Equal(t, int64(5), page.Pagination.Total)
		require.Equal(t, int32(2), page.Pagination.Limit)
		require.Equal(t, int32(4), page.Pagination.Offset)
	})

	s.Run("Error case: Invalid status filter returns 400", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			bookingsURL+"?status=bogus", nil, s.adminToken())
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid query parameters")
	})
}

// =============================================================================
// TestUpdateBookingStatus - Lifecycle transition tests
// =============================================================================

func (s *BookingSuite) TestUpdateBookingStatus() {
	s.Run("Normal case: Full lifecycle pending to refunded", func() {
		t := s.T()

		clientID := uuid.New()
		proID := uuid.New()
		serviceID := dbtest.CreateTestService(t, s.DB, dbtest.ServiceFixture{ProID: proID, Active: true})
		bookingID := dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{
			ClientID:  clientID,
			ProID:     proID,
			ServiceID: serviceID,
		})

		url := bookingsURL + "/" + bookingID.String() + "/status"
		proToken := s.proToken(proID)

		var confirmed response.BookingResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url,
			map[string]any{"status": "confirmed"}, proToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &confirmed)
		require.Equal(t, "confirmed", confirmed.Status)

		var inProgress response.BookingResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, url,
			map[string]any{"status": "in_progress"}, proToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &inProgress)
		require.Equal(t, "in_progress", inProgress.Status)
		require.NotNil(t, inProgress.ActualStart, "Starting work should stamp the actual start time")

		var completed response.BookingResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, url,
			map[string]any{"status": "completed", "notes": "Left the keys with the neighbour"}, proToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &completed)
		require.Equal(t, "completed", completed.Status)
		require.NotNil(t, completed.ActualEnd, "Completion should stamp the actual end time")

		var refunded response.BookingResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, url,
			map[string]any{"status": "refunded"}, s.adminToken())
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &refunded)
		require.Equal(t, "refunded", refunded.Status)
	})

	s.Run("Normal case: Client can cancel their own pending booking", func() {
		t := s.T()

		clientID := uuid.New()
		proID := uuid.New()
		serviceID := dbtest.CreateTestService(t, s.DB, dbtest.ServiceFixture{ProID: proID, Active: true})
		bookingID := dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{
			ClientID:  clientID,
			ProID:     proID,
			ServiceID: serviceID,
		})

		var cancelled response.BookingResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+bookingID.String()+"/status",
			map[string]any{"status": "cancelled"}, s.clientToken(clientID))
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &cancelled)
		require.Equal(t, "cancelled", cancelled.Status)
	})

	s.Run("Error case: Client cannot confirm a booking", func() {
		t := s.T()

		clientID := uuid.New()
		proID := uuid.New()
		serviceID := dbtest.CreateTestService(t, s.DB, dbtest.ServiceFixture{ProID: proID, Active: true})
		bookingID := dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{
			ClientID:  clientID,
			ProID:     proID,
			ServiceID: serviceID,
		})

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+bookingID.String()+"/status",
			map[string]any{"status": "confirmed"}, s.clientToken(clientID))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Access denied")
	})

	s.Run("Error case: Another professional cannot move the booking", func() {
		t := s.T()

		proID := uuid.New()
		serviceID := dbtest.CreateTestService(t, s.DB, dbtest.ServiceFixture{ProID: proID, Active: true})
		bookingID := dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{
			ClientID:  uuid.New(),
			ProID:     proID,
			ServiceID: serviceID,
		})

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+bookingID.String()+"/status",
			map[string]any{"status": "confirmed"}, s.proToken(uuid.New()))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Access denied")
	})

	s.Run("Error case: Skipping a lifecycle step returns 400", func() {
		t := s.T()

		proID := uuid.New()
		serviceID := dbtest.CreateTestService(t, s.DB, dbtest.ServiceFixture{ProID: proID, Active: true})
		bookingID := dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{
			ClientID:  uuid.New(),
			ProID:     proID,
			ServiceID: serviceID,
		})

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+bookingID.String()+"/status",
			map[string]any{"status": "completed"}, s.proToken(proID))
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid status transition")
	})

	s.Run("Error case: Terminal bookings reject further transitions", func() {
		t := s.T()

		proID := uuid.New()
		serviceID := dbtest.CreateTestService(t, s.DB, dbtest.ServiceFixture{ProID: proID, Active: true})
		bookingID := dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{
			ClientID:  uuid.New(),
			ProID:     proID,
			ServiceID: serviceID,
			Status:    "cancelled",
		})

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+bookingID.String()+"/status",
			map[string]any{"status": "confirmed"}, s.proToken(proID))
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid status transition")
	})
}

// =============================================================================
// TestDashboard - Scoped dashboard summary tests
// =============================================================================

func (s *BookingSuite) TestDashboard() {
	s.Run("Normal case: Client summary only counts own bookings", func() {
		t := s.T()

		proID := uuid.New()
		serviceID := dbtest.CreateTestService(t, s.DB, dbtest.ServiceFixture{ProID: proID, Active: true})
		clientID := uuid.New()
		dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{ClientID: clientID, ProID: proID, ServiceID: serviceID, Status: "completed"})
		dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{ClientID: clientID, ProID: proID, ServiceID: serviceID, Status: "pending"})
		dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{ClientID: uuid.New(), ProID: proID, ServiceID: serviceID})

		var summary queries.DashboardSummary
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/dashboard", nil, s.clientToken(clientID))
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &summary)
		require.Equal(t, int64(2), summary.TotalBookings)
		require.Equal(t, int64(1), summary.StatusCounts["completed"])
		require.Equal(t, "46.00", summary.Revenue, "Revenue counts completed bookings only")

		var adminSummary queries.DashboardSummary
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/dashboard", nil, s.adminToken())
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &adminSummary)
		require.Equal(t, int64(3), adminSummary.TotalBookings)
	})
}

// =============================================================================
// TestExportUserData - Data export tests
// =============================================================================

func (s *BookingSuite) TestExportUserData() {
	s.Run("Normal case: Client export carries all their bookings", func() {
		t := s.T()

		proID := uuid.New()
		serviceID := dbtest.CreateTestService(t, s.DB, dbtest.ServiceFixture{ProID: proID, Active: true})
		clientID := uuid.New()
		dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{ClientID: clientID, ProID: proID, ServiceID: serviceID})
		dbtest.CreateTestBooking(t, s.DB, dbtest.BookingFixture{ClientID: clientID, ProID: proID, ServiceID: serviceID, Status: "cancelled"})

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/me/export", nil, s.clientToken(clientID))

		var doc queries.ExportDocument
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &doc)
		require.Equal(t, clientID, doc.UserID)
		require.Equal(t, string(user.RoleClient), doc.Role)
		require.Len(t, doc.Bookings, 2)
		require.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	})
}
