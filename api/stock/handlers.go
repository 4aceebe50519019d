package stock

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"SellerPulse/api"
	"SellerPulse/api/auth"
	"SellerPulse/api/constants"
	"SellerPulse/api/utils"
	"SellerPulse/internal/reports"
	"SellerPulse/internal/sheets"
	"SellerPulse/internal/stockledger"
	"SellerPulse/internal/tabular"
	"SellerPulse/internal/uploads"
)

// Movement upload fields and their quantity signs. Incoming receipts add
// stock; sales and shipments remove it. Sheets carry unsigned quantities, so
// the sign is applied per source here.
var movementFields = []struct {
	Field string
	Sign  float64
}{
	{"receipts", 1},
	{"sales", -1},
	{"shipments", -1},
}

var deltaColumns = stockledger.DeltaColumns{
	ArticleGroup: reports.ColArticle,
	Size:         reports.ColSize,
	Quantity:     reports.ColQuantity,
	Name:         reports.ColItemName,
	Location:     reports.ColLocation,
	Note:         reports.ColNote,
}

// ReconcileHandler merges up to three movement extracts into the tenant's
// persisted balance. An optional "balance" file replaces the stored base
// before the deltas apply. mode=upsert touches only moved keys; the default
// replaces the whole table atomically.
func ReconcileHandler(pool *pgxpool.Pool) func(w http.ResponseWriter, r *http.Request, session *auth.UserSession) {
	return func(w http.ResponseWriter, r *http.Request, session *auth.UserSession) {
		startTime := time.Now()
		ctx := r.Context()
		store := NewLedgerStore(pool)

		if err := r.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Failed to parse form data")
			return
		}

		opts := sheets.ReadOptionsFromValues(r.FormValue("header_row"), r.FormValue("sheet_name"))

		// Base balance: uploaded file wins over the stored table.
		var base []stockledger.BalanceRow
		var results []sheets.FileResult
		baseDS, baseResults := sheets.IngestFiles(r.MultipartForm, "balance", opts, reports.MovementSchema)
		results = append(results, baseResults...)
		if baseDS != nil {
			agg, err := aggregateMovements(baseDS)
			if err != nil {
				api.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			for _, d := range stockledger.DeltasFromDataset(agg, deltaColumns, 1) {
				base = append(base, stockledger.BalanceRow(d))
			}
		} else {
			var err error
			base, err = store.Load(ctx, session.UserID)
			if err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load balance: %v", err))
				return
			}
		}

		// Each movement source is aggregated independently, then merged.
		var deltas [][]stockledger.DeltaRow
		for _, mf := range movementFields {
			ds, res := sheets.IngestFiles(r.MultipartForm, mf.Field, opts, reports.MovementSchema)
			results = append(results, res...)
			if ds == nil {
				continue
			}
			agg, err := aggregateMovements(ds)
			if err != nil {
				api.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			deltas = append(deltas, stockledger.DeltasFromDataset(agg, deltaColumns, mf.Sign))
		}

		if baseDS == nil && len(deltas) == 0 {
			api.RespondWithPayload(w, false, "No valid balance or movement files provided", results)
			return
		}

		uploads.RecordBatches(ctx, pool, session.UserID, results)

		balance, report := stockledger.Reconcile(base, deltas, stockledger.Options{
			ClampNegative: r.FormValue("clamp_negative") == "true",
		})

		var err error
		if r.FormValue("mode") == "upsert" {
			err = store.Upsert(ctx, session.UserID, balance)
		} else {
			err = store.Replace(ctx, session.UserID, balance)
		}
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to persist balance: %v", err))
			return
		}

		api.LogInfo("reconciled ledger for %s: %d rows (%d created, %d updated, %d negative) in %v",
			session.UserID, len(balance), len(report.Created), len(report.Updated),
			len(report.Negative), time.Since(startTime))

		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"files":         results,
			"rows":          len(balance),
			"created_keys":  keyStrings(report.Created),
			"updated_keys":  len(report.Updated),
			"negative_keys": keyStrings(report.Negative),
		})
	}
}

// aggregateMovements collapses duplicate (article, size) lines inside one
// source before signing, so a sheet listing the same size twice still yields
// one delta per key.
func aggregateMovements(ds *tabular.Dataset) (*tabular.Dataset, error) {
	reductions := []tabular.Reduction{
		{Column: reports.ColQuantity, Op: tabular.ReduceSum},
	}
	for _, col := range []string{reports.ColItemName, reports.ColLocation, reports.ColNote} {
		if ds.HasColumn(col) {
			reductions = append(reductions, tabular.Reduction{Column: col, Op: tabular.ReduceFirst})
		}
	}
	return tabular.Aggregate(ds, tabular.AggregateSpec{
		GroupBy:    []string{reports.ColArticle, reports.ColSize},
		Reductions: reductions,
	})
}

func keyStrings(keys []stockledger.Key) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.ArticleGroup+"/"+k.Size)
	}
	return out
}

// ResetHandler drops the tenant's whole balance table.
func ResetHandler(pool *pgxpool.Pool) func(w http.ResponseWriter, r *http.Request, session *auth.UserSession) {
	return func(w http.ResponseWriter, r *http.Request, session *auth.UserSession) {
		if err := NewLedgerStore(pool).Reset(r.Context(), session.UserID); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithResult(w, true, "")
	}
}

type balanceRowJSON struct {
	ArticleGroup string  `json:"article_group"`
	Size         string  `json:"size"`
	Quantity     float64 `json:"quantity"`
	Name         string  `json:"item_name,omitempty"`
	Location     string  `json:"location,omitempty"`
	Note         string  `json:"note,omitempty"`
}

// ListBalanceHandler returns one page of the tenant's current balance table.
func ListBalanceHandler(pool *pgxpool.Pool) func(w http.ResponseWriter, r *http.Request, session *auth.UserSession) {
	return func(w http.ResponseWriter, r *http.Request, session *auth.UserSession) {
		pagination, err := utils.ExtractPagination(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		balance, err := NewLedgerStore(pool).Load(r.Context(), session.UserID)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		pagination.SetPaginationStats(len(balance))

		start := pagination.Offset
		if start > len(balance) {
			start = len(balance)
		}
		end := start + pagination.Limit
		if end > len(balance) {
			end = len(balance)
		}
		out := make([]balanceRowJSON, 0, end-start)
		for _, b := range balance[start:end] {
			out = append(out, balanceRowJSON{
				ArticleGroup: b.Key.ArticleGroup,
				Size:         b.Key.Size,
				Quantity:     b.Quantity,
				Name:         b.Name,
				Location:     b.Location,
				Note:         b.Note,
			})
		}
		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"pagination": pagination,
			"balance":    out,
		})
	}
}
