package models

// Alert severity levels.
const (
	AlertInfo    = "info"
	AlertWarning = "warning"
	AlertError   = "error"
)

// Alert is a short operator-facing message kept in the rolling alert list.
type Alert struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // info | warning | error
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}
