package response

import (
	"time"

	"careserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type ServiceResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProID       uuid.UUID  `json:"proId"`
	FranchiseID *uuid.UUID `json:"franchiseId,omitempty"`
	Name        string     `json:"name"`
	BasePrice   string     `json:"basePrice"`
	PriceUnit   string     `json:"priceUnit"`
	DurationMin *int32     `json:"durationMin,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type ServiceListResponse struct {
	Services   []*ServiceResponse `json:"services"`
	Pagination Pagination         `json:"pagination"`
}

func FromServiceView(sv *queries.ServiceView) *ServiceResponse {
	return &ServiceResponse{
		ID:          sv.ID,
		ProID:       sv.ProID,
		FranchiseID: sv.FranchiseID,
		Name:        sv.Name,
		BasePrice:   sv.BasePrice,
		PriceUnit:   sv.PriceUnit,
		DurationMin: sv.DurationMin,
		Active:      sv.Active,
		CreatedAt:   sv.CreatedAt,
		UpdatedAt:   sv.UpdatedAt,
	}
}
