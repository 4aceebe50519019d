package constants

// Common error messages
const (
	ErrInvalidSession     = "invalid user_id or session"
	ErrInvalidJSON        = "Invalid JSON"
	ErrUserIDRequired     = "user_id is required"
	ErrMethodNotAllowed   = "Method Not Allowed"
	ErrNoIngestableFiles  = "no file could be ingested"
	ErrInvalidRequestBody = "Invalid request body"
)

// Content Types
const (
	ContentTypeJSON = "application/json"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Date formats
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
)

// Upload limits
const (
	MaxUploadBytes = 32 << 20
)
