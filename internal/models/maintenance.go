package models

// Maintenance types and statuses.
const (
	MaintenancePreventive = "preventive"
	MaintenanceCorrective = "corrective"
	MaintenanceEmergency  = "emergency"

	MaintenanceCompleted  = "completed"
	MaintenanceInProgress = "in_progress"
	MaintenanceScheduled  = "scheduled"
)

// MaintenanceRecord documents service work on a system component.
type MaintenanceRecord struct {
	ID              string   `json:"id"`
	Timestamp       int64    `json:"timestamp"` // unix milliseconds
	MaintenanceType string   `json:"maintenance_type"`
	Component       string   `json:"component"`
	Description     string   `json:"description"`
	Technician      string   `json:"technician"`
	DurationMinutes int      `json:"duration_minutes"`
	Status          string   `json:"status"`
	Cost            *float64 `json:"cost,omitempty"`
}
