// Package uploads records per-file batch outcomes so every ingest, successful
// or skipped, leaves an audit row.
package uploads

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"SellerPulse/internal/sheets"
)

// RecordBatches audits every file of an upload in upload_batches.
func RecordBatches(ctx context.Context, pool *pgxpool.Pool, ownerID string, results []sheets.FileResult) {
	for _, res := range results {
		status := "completed"
		if res.Status == "skipped" {
			status = "failed"
		}
		_, err := pool.Exec(ctx, `
			INSERT INTO upload_batches
			(batch_id, owner_id, file_name, file_hash, status, total_rows, skipped_rows, error_message)
			VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, NULLIF($8, ''))`,
			uuid.New(), ownerID, res.FileName, res.Digest, status, res.Rows, res.Skipped, res.Reason)
		if err != nil {
			log.Printf("[ERROR] failed to record upload batch for %s: %v", res.FileName, err)
		}
	}
}

// UploadedCount counts the files that made it past parsing and normalization.
func UploadedCount(results []sheets.FileResult) int {
	n := 0
	for _, r := range results {
		if r.Status == "uploaded" {
			n++
		}
	}
	return n
}
