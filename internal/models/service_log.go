package models

// Service log event types.
const (
	LogEventSystem      = "system"
	LogEventMaintenance = "maintenance"
	LogEventFault       = "fault"
	LogEventML          = "ml"
	LogEventUserAction  = "user_action"
)

// Service log severities.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Components referenced by service logs.
const (
	ComponentHydraulicSystem = "hydraulic_system"
	ComponentMLModel         = "ml_model"
	ComponentSimulation      = "simulation"
)

// ServiceLogEntry is a structured audit record of system activity.
type ServiceLogEntry struct {
	ID        string         `json:"id"`
	Timestamp int64          `json:"timestamp"` // unix milliseconds
	EventType string         `json:"event_type"`
	Severity  string         `json:"severity"`
	Component string         `json:"component"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	UserID    string         `json:"user_id,omitempty"`
}
