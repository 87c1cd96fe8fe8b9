package api

import (
	"errors"
	"net/http"

	"careserve/internal/handler/httperr"
	"careserve/internal/handler/middleware"
	"careserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	queries queries.BookingQueries
}

func NewDashboardHandler(qs queries.BookingQueries) *DashboardHandler {
	return &DashboardHandler{queries: qs}
}

// @Summary Booking dashboard
// @Description Booking counts by status and completed revenue for the caller's scope
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.DashboardSummary
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing session context"), "Internal server error", nil)
		return
	}

	summary, err := h.queries.Dashboard(c.Request.Context(), actor)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, summary)
}
