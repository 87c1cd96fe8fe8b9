package readstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"careserve/internal/infra"
	"careserve/internal/infra/db"
	"careserve/internal/pkg/pgconv"
	"careserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const bookingViewSQL = `
SELECT b.id, b.service_id, s.name AS service_name, b.client_id, b.pro_id, b.franchise_id,
       b.status, b.scheduled_start, b.scheduled_end, b.actual_start, b.actual_end,
       b.service_price, b.platform_fee, b.total_amount,
       b.client_notes, b.pro_notes, b.address, b.city, b.postal_code,
       b.created_at, b.updated_at
FROM bookings b
JOIN services s ON s.id = b.service_id`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, bookingViewSQL+" WHERE b.id = $1", id)

	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return view, nil
}

// List returns one page plus the total count under the same conjunction.
// Deterministic ordering: created_at descending, id ascending on ties.
func (r *BookingReadStore) List(ctx context.Context, filter queries.ScopedFilter, limit, offset int32) ([]*queries.BookingListItem, int64, error) {
	where, args := buildFilter(filter)

	countSQL := "SELECT COUNT(*) FROM bookings b" + where
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}

	listSQL := fmt.Sprintf(`
SELECT b.id, b.service_id, s.name AS service_name, b.client_id, b.pro_id, b.status,
       b.scheduled_start, b.scheduled_end, b.total_amount, b.created_at
FROM bookings b
JOIN services s ON s.id = b.service_id
%s
ORDER BY b.created_at DESC, b.id ASC
LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, listSQL, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingListItem, 0, limit)
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID, &item.ServiceID, &item.ServiceName, &item.ClientID, &item.ProID, &item.Status,
			&item.ScheduledStart, &item.ScheduledEnd, &item.TotalAmount, &item.CreatedAt,
		); err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan booking row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to read booking rows", err)
	}

	return items, total, nil
}

func (r *BookingReadStore) ListAllForUser(ctx context.Context, userID uuid.UUID, asPro bool) ([]*queries.BookingView, error) {
	column := "b.client_id"
	if asPro {
		column = "b.pro_id"
	}

	sql := bookingViewSQL + " WHERE " + column + " = $1 ORDER BY b.created_at DESC, b.id ASC"
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings for export", err)
	}
	defer rows.Close()

	var views []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}

	return views, nil
}

// Summary aggregates counts per status and completed-revenue sums for the
// dashboard. Revenue is summed in SQL on the decimal text to stay exact.
func (r *BookingReadStore) Summary(ctx context.Context, filter queries.ScopedFilter) (*queries.DashboardSummary, error) {
	where, args := buildFilter(filter)

	sql := `
SELECT b.status, COUNT(*), COALESCE(SUM(b.total_amount::numeric), 0)::text
FROM bookings b` + where + `
GROUP BY b.status`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate bookings", err)
	}
	defer rows.Close()

	summary := &queries.DashboardSummary{
		StatusCounts: make(map[string]int64),
	}
	revenue := decimal.Zero
	for rows.Next() {
		var (
			status string
			count  int64
			amount string
		)
		if err := rows.Scan(&status, &count, &amount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan aggregate row", err)
		}
		sum, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt aggregate amount", err)
		}
		summary.StatusCounts[status] = count
		summary.TotalBookings += count
		if status == "completed" {
			revenue = revenue.Add(sum)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read aggregate rows", err)
	}

	summary.Revenue = revenue.StringFixed(2)
	return summary, nil
}

func buildFilter(filter queries.ScopedFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		conds = append(conds, fmt.Sprintf("b.client_id = $%d", len(args)))
	}
	if filter.ProID != nil {
		args = append(args, *filter.ProID)
		conds = append(conds, fmt.Sprintf("b.pro_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, filter.Status.String())
		conds = append(conds, fmt.Sprintf("b.status = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	var (
		view                   queries.BookingView
		franchiseID            pgtype.UUID
		actualStart, actualEnd pgtype.Timestamptz
		clientNotes, proNotes  pgtype.Text
	)

	err := row.Scan(
		&view.ID, &view.ServiceID, &view.ServiceName, &view.ClientID, &view.ProID, &franchiseID,
		&view.Status, &view.ScheduledStart, &view.ScheduledEnd, &actualStart, &actualEnd,
		&view.ServicePrice, &view.PlatformFee, &view.TotalAmount,
		&clientNotes, &proNotes, &view.Address, &view.City, &view.PostalCode,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.FranchiseID = pgconv.UUIDPtrFromPgtype(franchiseID)
	view.ActualStart = timePtr(actualStart)
	view.ActualEnd = timePtr(actualEnd)
	view.ClientNotes = pgconv.StringPtrFromPgtype(clientNotes)
	view.ProNotes = pgconv.StringPtrFromPgtype(proNotes)

	return &view, nil
}

func timePtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
