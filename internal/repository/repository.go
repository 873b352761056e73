package repository

import (
	"context"
	"database/sql"

	"hydraulic_dashboard/internal/models"
)

type Authorization interface {
	Create(username, email, hash, role string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// ServiceLogFilter narrows log queries. Zero values mean "no filter".
type ServiceLogFilter struct {
	EventType string
	Severity  string
	Component string
	Limit     int
	Offset    int
}

// ServiceLogRepo is the append-mostly audit log. List returns entries newest
// first along with the total count before pagination.
type ServiceLogRepo interface {
	Append(ctx context.Context, e models.ServiceLogEntry) error
	List(ctx context.Context, f ServiceLogFilter) ([]models.ServiceLogEntry, int, error)
}

// MaintenanceFilter narrows maintenance queries. Zero values mean "no filter".
type MaintenanceFilter struct {
	MaintenanceType string
	Component       string
	Status          string
	Limit           int
	Offset          int
}

type MaintenanceRepo interface {
	Create(ctx context.Context, r models.MaintenanceRecord) error
	List(ctx context.Context, f MaintenanceFilter) ([]models.MaintenanceRecord, int, error)
}

// ReadingRepo buffers recent sensor readings in memory.
type ReadingRepo interface {
	Append(r models.Reading)
	Recent(n int) []models.Reading
	All() []models.Reading
	Len() int
	Reset()
}

// StateRepo holds the live simulation state: run flag, health, current
// reading, rolling alerts, active fault and latest prediction.
type StateRepo interface {
	SetRunning(v bool)
	IsRunning() bool

	Health() models.Health
	SetHealth(h models.Health)

	Current() (models.Reading, bool)
	SetCurrent(r models.Reading)

	AddAlert(a models.Alert)
	Alerts(n int) []models.Alert
	ClearAlerts()

	Prediction() *models.MLPrediction
	SetPrediction(p *models.MLPrediction)

	Fault() (models.FaultState, bool)
	SetFault(f models.FaultState)
	ClearFault()
}

type Repository struct {
	Auth        Authorization
	ServiceLogs ServiceLogRepo
	Maintenance MaintenanceRepo
	Readings    ReadingRepo
	State       StateRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:        NewUserRepository(db),
		ServiceLogs: NewServiceLogSQLite(db),
		Maintenance: NewMaintenanceSQLite(db),
		Readings:    NewReadingBuffer(historyCapacity),
		State:       NewStateStore(),
	}
}
