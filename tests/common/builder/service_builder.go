//go:build unit || e2e

package builder

import (
	"time"

	"careserve/internal/domain/catalog"
	"careserve/internal/usecase/commands"
	"careserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ServiceBuilder struct {
	ID          uuid.UUID
	ProID       uuid.UUID
	FranchiseID *uuid.UUID
	Name        string
	BasePrice   string
	PriceUnit   string
	DurationMin *int32
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewServiceBuilder() *ServiceBuilder {
	now := time.Now().UTC()
	return &ServiceBuilder{
		ID:        uuid.New(),
		ProID:     uuid.New(),
		Name:      "Deep Cleaning",
		BasePrice: "20.00",
		PriceUnit: "hour",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *ServiceBuilder) With(mutate func(*ServiceBuilder)) *ServiceBuilder {
	mutate(b)
	return b
}

func (b *ServiceBuilder) BuildDomain() (*catalog.Service, error) {
	price, err := decimal.NewFromString(b.BasePrice)
	if err != nil {
		return nil, err
	}
	return catalog.NewService(b.ID, b.ProID, b.FranchiseID, b.Name, price, catalog.PriceUnit(b.PriceUnit), b.DurationMin, b.Active)
}

func (b *ServiceBuilder) BuildSnapshot() *commands.ServiceSnapshot {
	price, _ := decimal.NewFromString(b.BasePrice)
	return &commands.ServiceSnapshot{
		ID:          b.ID,
		ProID:       b.ProID,
		FranchiseID: b.FranchiseID,
		Name:        b.Name,
		BasePrice:   price,
		PriceUnit:   b.PriceUnit,
		DurationMin: b.DurationMin,
		Active:      b.Active,
	}
}

func (b *ServiceBuilder) BuildView() *queries.ServiceView {
	return &queries.ServiceView{
		ID:          b.ID,
		ProID:       b.ProID,
		FranchiseID: b.FranchiseID,
		Name:        b.Name,
		BasePrice:   b.BasePrice,
		PriceUnit:   b.PriceUnit,
		DurationMin: b.DurationMin,
		Active:      b.Active,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
