package queries

import (
	"context"

	"careserve/internal/infra"
	"careserve/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrServiceNotFound = errs.New("service not found")

type ServiceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceView, error)
	ListActive(ctx context.Context, limit, offset int32) ([]*ServiceView, int64, error)
}

type ServiceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ServiceView, error)
	ListActive(ctx context.Context, page PageRequest) ([]*ServiceView, int64, error)
}

type serviceQueriesImpl struct {
	store ServiceReadStore
}

func NewServiceQueries(store ServiceReadStore) ServiceQueries {
	return &serviceQueriesImpl{store: store}
}

func (q *serviceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ServiceView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *serviceQueriesImpl) ListActive(ctx context.Context, page PageRequest) ([]*ServiceView, int64, error) {
	page = page.Normalize()
	return q.store.ListActive(ctx, page.Limit, page.Offset)
}
