package api

import (
	"errors"
	"fmt"
	"net/http"

	"careserve/internal/handler/httperr"
	"careserve/internal/handler/middleware"
	"careserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	queries queries.BookingQueries
}

func NewExportHandler(qs queries.BookingQueries) *ExportHandler {
	return &ExportHandler{queries: qs}
}

// @Summary Export personal data
// @Description Download every booking involving the caller as a JSON document
// @Tags export
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.ExportDocument
// @Router /me/export [get]
func (h *ExportHandler) ExportUserData(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing session context"), "Internal server error", nil)
		return
	}

	doc, err := h.queries.Export(c.Request.Context(), actor)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=export-%s.json", actor.ID))
	c.JSON(http.StatusOK, doc)
}
