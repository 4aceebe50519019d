package reports

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"SellerPulse/api"
	"SellerPulse/api/auth"
	"SellerPulse/api/constants"
	"SellerPulse/api/utils"
	"SellerPulse/internal/finance"
	"SellerPulse/internal/tabular"
)

// saveSnapshot upserts today's per-tenant totals so day-over-day profit can
// be charted without re-uploading old extracts.
func saveSnapshot(ctx context.Context, pool *pgxpool.Pool, ownerID string, ds *tabular.Dataset) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO finance_snapshots (owner_id, snapshot_date, orders, gross_sales, profit)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (owner_id, snapshot_date)
		DO UPDATE SET orders = EXCLUDED.orders, gross_sales = EXCLUDED.gross_sales, profit = EXCLUDED.profit`,
		ownerID, time.Now().Format(constants.DateFormat),
		ds.SumFloat(finance.ColOrders),
		ds.SumFloat(finance.ColGrossSales),
		ds.SumFloat(finance.ColProfit))
	return err
}

type snapshotRow struct {
	Date       string  `json:"date"`
	Orders     float64 `json:"orders"`
	GrossSales float64 `json:"gross_sales"`
	Profit     float64 `json:"profit"`
}

// ListSnapshotsHandler returns one page of the tenant's daily totals, newest
// first.
func ListSnapshotsHandler(pool *pgxpool.Pool) func(w http.ResponseWriter, r *http.Request, session *auth.UserSession) {
	return func(w http.ResponseWriter, r *http.Request, session *auth.UserSession) {
		pagination, err := utils.ExtractPagination(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		total, err := utils.CountTotal(r.Context(), pool,
			`SELECT COUNT(*) FROM finance_snapshots WHERE owner_id = $1`, session.UserID)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		pagination.SetPaginationStats(total)

		rows, err := pool.Query(r.Context(), `
			SELECT snapshot_date::text, orders, gross_sales, profit
			FROM finance_snapshots WHERE owner_id = $1
			ORDER BY snapshot_date DESC
			LIMIT $2 OFFSET $3`, session.UserID, pagination.Limit, pagination.Offset)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()

		var out []snapshotRow
		for rows.Next() {
			var s snapshotRow
			if err := rows.Scan(&s.Date, &s.Orders, &s.GrossSales, &s.Profit); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			out = append(out, s)
		}
		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"pagination": pagination,
			"snapshots":  out,
		})
	}
}
