package reports

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"SellerPulse/api"
	"SellerPulse/api/auth"
	"SellerPulse/api/constants"
	"SellerPulse/internal/config"
	"SellerPulse/internal/reports"
	"SellerPulse/internal/sections"
	"SellerPulse/internal/sheets"
	"SellerPulse/internal/turnover"
	"SellerPulse/internal/uploads"
)

// TurnoverReportHandler ingests order and stock extracts and emits the graded
// turnover sheet. mode=orders|sales selects the flow series, days the report
// window, by_warehouse the grouped layout with per-article totals.
func TurnoverReportHandler(pool *pgxpool.Pool) func(w http.ResponseWriter, r *http.Request, session *auth.UserSession) {
	return func(w http.ResponseWriter, r *http.Request, session *auth.UserSession) {
		startTime := time.Now()
		ctx := r.Context()

		if err := r.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Failed to parse form data")
			return
		}

		params := reports.TurnoverParams{
			Mode:        turnover.ByOrders,
			Period:      config.DefaultPeriodDays,
			ByWarehouse: r.FormValue("by_warehouse") == "true",
		}
		if r.FormValue("mode") == "sales" {
			params.Mode = turnover.BySales
		}
		if v := r.FormValue("days"); v != "" {
			if days, err := strconv.ParseFloat(v, 64); err == nil && days > 0 {
				params.Period = days
			}
		}

		opts := sheets.ReadOptionsFromValues(r.FormValue("header_row"), r.FormValue("sheet_name"))
		flowSchema := reports.OrdersSchema
		if params.Mode == turnover.BySales {
			flowSchema = reports.SalesSchema
		}
		orders, orderResults := sheets.IngestFiles(r.MultipartForm, "orders", opts, flowSchema)
		stock, stockResults := sheets.IngestFiles(r.MultipartForm, "stock", opts, reports.StockSchema)
		results := append(orderResults, stockResults...)
		uploads.RecordBatches(ctx, pool, session.UserID, results)

		if orders == nil || stock == nil {
			api.RespondWithPayload(w, false, "No valid order or stock files provided", results)
			return
		}

		ds, err := reports.TurnoverReport(orders, stock, params)
		if err != nil {
			api.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		var secs []sections.Section
		if params.ByWarehouse {
			layout, err := reports.WarehouseTurnoverLayout(ds, params)
			if err != nil {
				api.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			secs = []sections.Section{{Name: "Turnover by warehouse", Data: layout}}
		} else {
			secs = reports.TurnoverSections(ds)
		}

		api.LogInfo("turnover report for %s: %d positions from %d files in %v",
			session.UserID, ds.Len(), uploads.UploadedCount(results), time.Since(startTime))

		if r.FormValue("format") == "json" {
			api.RespondWithPayload(w, true, "", map[string]interface{}{
				"files":     results,
				"positions": ds.Len(),
				"sections":  sectionSummary(secs),
			})
			return
		}

		book, err := sheets.WriteWorkbook(secs, sheets.WriteOptions{
			SheetName:   "Turnover",
			GradeColumn: reports.ColGrade,
			ColumnWidth: 16,
		})
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to build workbook: %v", err))
			return
		}
		if err := sheets.ServeWorkbook(w, book, "turnover.xlsx"); err != nil {
			api.LogError("failed to stream turnover workbook: %v", err)
		}
	}
}

func sectionSummary(secs []sections.Section) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(secs))
	for _, s := range secs {
		out = append(out, map[string]interface{}{"name": s.Name, "rows": s.Data.Len()})
	}
	return out
}
