//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"careserve/internal/domain/user"
	"careserve/internal/handler/api"
	resdto "careserve/internal/handler/dto/response"
	"careserve/internal/usecase/commands"
	"careserve/internal/usecase/queries"
	"careserve/internal/usecase/shared"
	"careserve/tests/common/builder"
	"careserve/tests/common/httptest"
	"careserve/tests/common/testutil"
	commandsmock "careserve/tests/mock/commands"
	queriesmock "careserve/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	actorID      uuid.UUID
	actorRole    user.Role
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.actorID = uuid.New()
	s.actorRole = user.RoleClient

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.actorID)
		c.Set("user_role", s.actorRole)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.CreateBooking)
	s.router.GET("/bookings", authMiddleware, s.handler.ListBookings)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.GetBooking)
	s.router.PATCH("/bookings/:id/status", authMiddleware, s.handler.UpdateBookingStatus)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"
	fixture := builder.NewBookingBuilder()
	reqBody := fixture.BuildCreateRequestDTO()
	returnView := fixture.BuildView()

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID, body.ID)
		s.Equal("pending", body.Status)
		s.Equal("46.00", body.TotalAmount)
	})

	s.Run("error: 400 with every failing field listed", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody,
			testutil.Field("serviceId", nil),
			testutil.Field("scheduledStart", "not-a-timestamp"),
			testutil.Field("address", ""),
			testutil.Field("postalCode", ""),
		)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Validation failed")
		httptest.AssertValidationDetails(s.T(), rec, "serviceId", "scheduledStart", "address", "postalCode")
	})

	s.Run("error: 400 on malformed timestamp", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("scheduledEnd", "2026-03-10"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Validation failed")
		httptest.AssertValidationDetails(s.T(), rec, "scheduledEnd")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "wrong role",
				commandsError:  shared.ErrForbidden,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Access denied",
			},
			{
				name:           "service not found",
				commandsError:  commands.ErrServiceNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Service not found",
			},
			{
				name:           "invalid time window",
				commandsError:  commands.ErrInvalidTimeWindow,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Scheduled end must be after scheduled start",
			},
			{
				name:           "unexpected failure",
				commandsError:  commands.ErrDatabaseOperationFailed,
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestListBookings
// ================================================================================

func (s *BookingHandlerTestSuite) TestListBookings() {
	url := "/bookings"

	s.Run("success: returns page with pagination envelope", func() {
		item := builder.NewBookingBuilder().BuildListItem()
		page := &queries.BookingPage{
			Items:  []*queries.BookingListItem{item},
			Total:  1,
			Limit:  20,
			Offset: 0,
		}
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(page, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Bookings, 1)
		s.Equal(item.ID, body.Bookings[0].ID)
		s.Equal(int64(1), body.Pagination.Total)
		s.Equal(int32(20), body.Pagination.Limit)
	})

	s.Run("success: forwards status and pagination query params", func() {
		s.mockQueries.EXPECT().
			List(gomock.Any(), gomock.Any(), gomock.Any(), queries.PageRequest{Limit: 5, Offset: 10}).
			DoAndReturn(func(_ any, _ shared.Actor, filter queries.ListBookingsFilter, page queries.PageRequest) (*queries.BookingPage, error) {
				s.Require().NotNil(filter.Status)
				s.Equal("confirmed", filter.Status.String())
				return &queries.BookingPage{Items: nil, Total: 0, Limit: page.Limit, Offset: page.Offset}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?status=confirmed&limit=5&offset=10", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on invalid query values", func() {
		for _, query := range []string{"?status=bogus", "?limit=abc", "?offset=-3", "?clientId=nope", "?proId=123"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+query, nil, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestGetBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetBooking() {
	returnView := builder.NewBookingBuilder().BuildView()
	url := "/bookings/" + returnView.ID.String()

	s.Run("success: returns booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(returnView.ID, body.ID)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID format")
	})

	s.Run("error: 404 when booking is missing", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), returnView.ID).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 403 on foreign booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), returnView.ID).
			Return(nil, shared.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})
}

// ================================================================================
// TestUpdateBookingStatus
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdateBookingStatus() {
	fixture := builder.NewBookingBuilder()
	url := "/bookings/" + fixture.ID.String() + "/status"

	s.Run("success: returns updated booking", func() {
		s.actorRole = user.RolePro
		defer func() { s.actorRole = user.RoleClient }()

		returnView := fixture.BuildView()
		returnView.Status = "confirmed"

		s.mockCommands.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, actor shared.Actor, input commands.UpdateStatusInput) (*queries.BookingView, error) {
				s.Equal(fixture.ID, input.BookingID)
				s.Equal("confirmed", input.Next.String())
				s.Equal(user.RolePro, actor.Role)
				return returnView, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "confirmed"}, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("confirmed", body.Status)
	})

	s.Run("error: 400 on unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "archived"}, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Validation failed")
		httptest.AssertValidationDetails(s.T(), rec, "status")
	})

	s.Run("error: 400 on invalid transition", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "cancelled"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid status transition")
	})

	s.Run("error: 403 when role lacks authority", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, shared.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "refunded"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})

	s.Run("error: 404 when booking is missing", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "cancelled"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}
