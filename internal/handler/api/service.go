package api

import (
	"errors"
	"net/http"

	"careserve/internal/handler/dto/response"
	"careserve/internal/handler/httperr"
	"careserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ServiceHandler struct {
	queries queries.ServiceQueries
}

func NewServiceHandler(qs queries.ServiceQueries) *ServiceHandler {
	return &ServiceHandler{queries: qs}
}

// @Summary List services
// @Description List active services, alphabetically
// @Tags services
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (1-100, default 20)"
// @Param offset query int false "Page offset"
// @Success 200 {object} response.ServiceListResponse
// @Failure 400 {object} httperr.Response
// @Router /services [get]
func (h *ServiceHandler) ListServices(c *gin.Context) {
	var page queries.PageRequest
	var fieldErrs []httperr.FieldError

	page.Limit = parseIntQuery(c, "limit", &fieldErrs)
	page.Offset = parseIntQuery(c, "offset", &fieldErrs)
	if len(fieldErrs) > 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("invalid query"), "Invalid query parameters", fieldErrs)
		return
	}

	page = page.Normalize()
	views, total, err := h.queries.ListActive(c.Request.Context(), page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	services := make([]*response.ServiceResponse, 0, len(views))
	for _, v := range views {
		services = append(services, response.FromServiceView(v))
	}

	c.JSON(http.StatusOK, response.ServiceListResponse{
		Services: services,
		Pagination: response.Pagination{
			Limit:  page.Limit,
			Offset: page.Offset,
			Total:  total,
		},
	})
}

// @Summary Get service
// @Description Get a service by ID
// @Tags services
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 200 {object} response.ServiceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /services/{id} [get]
func (h *ServiceHandler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid service ID format", nil)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrServiceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Service not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, response.FromServiceView(view))
}
