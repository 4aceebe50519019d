package reports

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"SellerPulse/api"
	"SellerPulse/api/auth"
	"SellerPulse/api/constants"
	"SellerPulse/internal/config"
	"SellerPulse/internal/finance"
	"SellerPulse/internal/reports"
	"SellerPulse/internal/sheets"
	"SellerPulse/internal/uploads"
)

// FinanceReportHandler ingests realization extracts and emits the
// profitability sheet. Tax rate, shared-cost pool and the default unit cost
// come from the form; per-article unit costs come from the tenant's
// cost-override table.
func FinanceReportHandler(pool *pgxpool.Pool) func(w http.ResponseWriter, r *http.Request, session *auth.UserSession) {
	return func(w http.ResponseWriter, r *http.Request, session *auth.UserSession) {
		startTime := time.Now()
		ctx := r.Context()

		if err := r.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Failed to parse form data")
			return
		}

		pipeline := finance.Params{
			TaxRate:         config.DefaultTaxRate,
			DefaultUnitCost: formFloat(r, "default_unit_cost", 0),
			SharedCostPool:  formFloat(r, "shared_cost_pool", 0),
		}
		if v := r.FormValue("tax_rate"); v != "" {
			if rate, err := strconv.ParseFloat(v, 64); err == nil && rate >= 0 {
				pipeline.TaxRate = rate
			}
		}

		overrides, err := loadCostOverrides(ctx, pool, session.UserID)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load cost overrides: %v", err))
			return
		}
		pipeline.UnitCostByArticle = overrides

		opts := sheets.ReadOptionsFromValues(r.FormValue("header_row"), r.FormValue("sheet_name"))
		sales, results := sheets.IngestFiles(r.MultipartForm, "sales", opts, reports.SalesSchema)
		uploads.RecordBatches(ctx, pool, session.UserID, results)
		if sales == nil {
			api.RespondWithPayload(w, false, "No valid sales files provided", results)
			return
		}

		ds, err := reports.FinanceReport(sales, reports.FinanceParams{Pipeline: pipeline})
		if err != nil {
			api.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		if err := saveSnapshot(ctx, pool, session.UserID, ds); err != nil {
			api.LogError("failed to save finance snapshot for %s: %v", session.UserID, err)
		}

		api.LogInfo("finance report for %s: %d articles from %d files in %v",
			session.UserID, ds.Len(), uploads.UploadedCount(results), time.Since(startTime))

		if r.FormValue("format") == "json" {
			api.RespondWithPayload(w, true, "", map[string]interface{}{
				"files":        results,
				"articles":     ds.Len(),
				"total_profit": ds.SumFloat(finance.ColProfit),
			})
			return
		}

		book, err := sheets.WriteWorkbook(reports.FinanceSections(ds), sheets.WriteOptions{
			SheetName:   "Profitability",
			ColumnWidth: 16,
		})
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to build workbook: %v", err))
			return
		}
		if err := sheets.ServeWorkbook(w, book, "profitability.xlsx"); err != nil {
			api.LogError("failed to stream finance workbook: %v", err)
		}
	}
}

func formFloat(r *http.Request, field string, def float64) float64 {
	if v := r.FormValue(field); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func loadCostOverrides(ctx context.Context, pool *pgxpool.Pool, ownerID string) (map[string]float64, error) {
	rows, err := pool.Query(ctx, `SELECT article, unit_cost FROM cost_overrides WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var article string
		var cost float64
		if err := rows.Scan(&article, &cost); err != nil {
			return nil, err
		}
		out[article] = cost
	}
	return out, rows.Err()
}
