package costs

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"SellerPulse/api"
	"SellerPulse/api/auth"
	"SellerPulse/api/constants"
	"SellerPulse/internal/sheets"
	"SellerPulse/internal/tabular"
	"SellerPulse/internal/uploads"
)

const (
	colArticle  = "article"
	colUnitCost = "unit_cost"
)

var costSchema = tabular.Schema{
	Required:  []string{colArticle, colUnitCost},
	Numeric:   []string{colUnitCost},
	KeyColumn: colArticle,
}

// UploadCostsHandler ingests a unit-cost workbook and upserts one override row
// per article. Re-uploading the same article replaces its cost.
func UploadCostsHandler(pool *pgxpool.Pool) func(http.ResponseWriter, *http.Request, *auth.UserSession) {
	return func(w http.ResponseWriter, r *http.Request, session *auth.UserSession) {
		ctx := r.Context()
		if err := r.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
			return
		}
		opts := sheets.ReadOptionsFromValues(r.FormValue("header_row"), r.FormValue("sheet"))
		ds, results := sheets.IngestFiles(r.MultipartForm, "costs", opts, costSchema)
		uploads.RecordBatches(ctx, pool, session.UserID, results)
		if uploads.UploadedCount(results) == 0 {
			api.RespondWithPayload(w, false, "no file could be ingested", map[string]interface{}{"files": results})
			return
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, "begin transaction: "+err.Error())
			return
		}
		defer func() {
			if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
				api.LogError("rollback failed: %v", err)
			}
		}()

		batch := &pgx.Batch{}
		upserted := 0
		for _, row := range ds.Rows {
			article := row[colArticle].String()
			cost := row[colUnitCost].FloatOr(0)
			if article == "" {
				continue
			}
			batch.Queue(`
				INSERT INTO cost_overrides (owner_id, article, unit_cost)
				VALUES ($1, $2, $3)
				ON CONFLICT (owner_id, article)
				DO UPDATE SET unit_cost = EXCLUDED.unit_cost, updated_at = now()`,
				session.UserID, article, cost)
			upserted++
		}
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < upserted; i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				api.RespondWithError(w, http.StatusInternalServerError, "upsert cost override: "+err.Error())
				return
			}
		}
		br.Close()
		if err := tx.Commit(ctx); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, "commit: "+err.Error())
			return
		}

		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"upserted": upserted,
			"files":    results,
		})
	}
}

// ListCostsHandler returns every cost override for the tenant.
func ListCostsHandler(pool *pgxpool.Pool) func(http.ResponseWriter, *http.Request, *auth.UserSession) {
	return func(w http.ResponseWriter, r *http.Request, session *auth.UserSession) {
		rows, err := pool.Query(r.Context(), `
			SELECT article, unit_cost
			FROM cost_overrides
			WHERE owner_id = $1
			ORDER BY article`, session.UserID)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, "query cost overrides: "+err.Error())
			return
		}
		defer rows.Close()

		out := []map[string]interface{}{}
		for rows.Next() {
			var article string
			var cost float64
			if err := rows.Scan(&article, &cost); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, "scan cost override: "+err.Error())
				return
			}
			out = append(out, map[string]interface{}{
				"article":   article,
				"unit_cost": cost,
			})
		}
		api.RespondWithPayload(w, true, "", out)
	}
}

// DeleteCostHandler removes a single override so the default unit cost applies
// again for that article.
func DeleteCostHandler(pool *pgxpool.Pool) func(http.ResponseWriter, *http.Request, *auth.UserSession) {
	return func(w http.ResponseWriter, r *http.Request, session *auth.UserSession) {
		article := r.FormValue("article")
		if article == "" {
			api.RespondWithError(w, http.StatusBadRequest, "article is required")
			return
		}
		tag, err := pool.Exec(r.Context(), `
			DELETE FROM cost_overrides
			WHERE owner_id = $1 AND article = $2`, session.UserID, article)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, "delete cost override: "+err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"deleted": tag.RowsAffected(),
		})
	}
}
