package readstore

import (
	"context"

	"careserve/internal/infra"
	"careserve/internal/infra/db"
	"careserve/internal/pkg/pgconv"
	"careserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ServiceReadStore struct {
	db db.DBTX
}

func NewServiceReadStore(db db.DBTX) *ServiceReadStore {
	return &ServiceReadStore{db: db}
}

const serviceViewSQL = `
SELECT id, pro_id, franchise_id, name, base_price, price_unit, duration_min, active, created_at, updated_at
FROM services`

func (r *ServiceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ServiceView, error) {
	view, err := scanServiceView(r.db.QueryRow(ctx, serviceViewSQL+" WHERE id = $1", id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service by ID", err)
	}
	return view, nil
}

func (r *ServiceReadStore) ListActive(ctx context.Context, limit, offset int32) ([]*queries.ServiceView, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM services WHERE active").Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count services", err)
	}

	rows, err := r.db.Query(ctx, serviceViewSQL+" WHERE active ORDER BY name ASC, id ASC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list services", err)
	}
	defer rows.Close()

	views := make([]*queries.ServiceView, 0, limit)
	for rows.Next() {
		view, err := scanServiceView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan service row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to read service rows", err)
	}

	return views, total, nil
}

func scanServiceView(row rowScanner) (*queries.ServiceView, error) {
	var (
		view        queries.ServiceView
		franchiseID pgtype.UUID
		durationMin pgtype.Int4
	)

	err := row.Scan(
		&view.ID, &view.ProID, &franchiseID, &view.Name, &view.BasePrice, &view.PriceUnit,
		&durationMin, &view.Active, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.FranchiseID = pgconv.UUIDPtrFromPgtype(franchiseID)
	view.DurationMin = pgconv.Int32PtrFromPgtype(durationMin)

	return &view, nil
}
