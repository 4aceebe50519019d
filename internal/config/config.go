package config

const (
	DefaultTimeZone = "Europe/Moscow"

	// Turnover report window restated to a 7-day basis.
	DefaultPeriodDays = 7.0

	// Simplified-regime tax applied to gross marketplace proceeds.
	DefaultTaxRate = 0.07

	BatchSize = 1000

	// Snapshot Retention Constants
	DefaultSnapshotSchedule  = "0 3 * * *" // daily, after the marketplace publishes extracts
	DefaultSnapshotRetention = 365         // days
)
