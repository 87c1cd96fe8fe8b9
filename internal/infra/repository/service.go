package repository

import (
	"context"

	"careserve/internal/infra"
	"careserve/internal/infra/db"
	"careserve/internal/pkg/pgconv"
	"careserve/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type ServiceRepository struct {
	db db.DBTX
}

func NewServiceRepository(db db.DBTX) *ServiceRepository {
	return &ServiceRepository{db: db}
}

const findServiceByIDSQL = `
SELECT id, pro_id, franchise_id, name, base_price, price_unit, duration_min, active
FROM services
WHERE id = $1`

func (r *ServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.ServiceSnapshot, error) {
	var (
		serviceID, proID uuid.UUID
		franchiseID      pgtype.UUID
		name             string
		basePrice        string
		priceUnit        string
		durationMin      pgtype.Int4
		active           bool
	)

	err := r.db.QueryRow(ctx, findServiceByIDSQL, id).Scan(
		&serviceID, &proID, &franchiseID, &name, &basePrice, &priceUnit, &durationMin, &active,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service by ID", err)
	}

	price, err := decimal.NewFromString(basePrice)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt service base price", err)
	}

	return &commands.ServiceSnapshot{
		ID:          serviceID,
		ProID:       proID,
		FranchiseID: pgconv.UUIDPtrFromPgtype(franchiseID),
		Name:        name,
		BasePrice:   price,
		PriceUnit:   priceUnit,
		DurationMin: pgconv.Int32PtrFromPgtype(durationMin),
		Active:      active,
	}, nil
}
