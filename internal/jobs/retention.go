package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"SellerPulse/internal/config"
	"SellerPulse/internal/logger"
)

// RetentionConfig controls the nightly cleanup of aged snapshot and upload
// audit rows.
type RetentionConfig struct {
	Schedule      string
	RetentionDays int
	TimeZone      string
}

// NewDefaultRetentionConfig creates a RetentionConfig with default values
func NewDefaultRetentionConfig() *RetentionConfig {
	return &RetentionConfig{
		Schedule:      config.DefaultSnapshotSchedule,
		RetentionDays: config.DefaultSnapshotRetention,
		TimeZone:      config.DefaultTimeZone,
	}
}

// RunRetentionScheduler starts the cron job that prunes aged rows
func RunRetentionScheduler(cfg *RetentionConfig, db *pgxpool.Pool) error {
	if cfg.Schedule == "" {
		cfg.Schedule = config.DefaultSnapshotSchedule
	}
	if cfg.RetentionDays == 0 {
		cfg.RetentionDays = config.DefaultSnapshotRetention
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = config.DefaultTimeZone
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.Schedule, func() {
		if err := PruneAgedRows(db, cfg.RetentionDays); err != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("Retention job failed: %v", err))
		}
	})
	if err != nil {
		return fmt.Errorf("unable to schedule retention job: %v", err)
	}

	c.Start()
	logger.GlobalLogger.LogAudit("Retention scheduler started")

	return nil
}

// PruneAgedRows deletes finance snapshots and upload audit rows older than
// the retention window. The stock ledger is never pruned; it is the current
// balance, not history.
func PruneAgedRows(db *pgxpool.Pool, retentionDays int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	snapTag, err := db.Exec(ctx,
		`DELETE FROM finance_snapshots WHERE snapshot_date < $1`, cutoff)
	if err != nil {
		return fmt.Errorf("prune finance_snapshots: %w", err)
	}
	uploadTag, err := db.Exec(ctx,
		`DELETE FROM upload_batches WHERE uploaded_at < $1`, cutoff)
	if err != nil {
		return fmt.Errorf("prune upload_batches: %w", err)
	}

	logger.GlobalLogger.LogAudit(fmt.Sprintf(
		"Retention job pruned %d snapshots, %d upload batches (cutoff %s)",
		snapTag.RowsAffected(), uploadTag.RowsAffected(), cutoff.Format("2006-01-02")))
	return nil
}
