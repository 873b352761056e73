package service

import (
	"context"
	"time"

	"hydraulic_dashboard/internal/models"
	"hydraulic_dashboard/internal/repository"
)

type Authorization interface {
	SignUp(username, email, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, string, error)
	SeedDemoUsers() error
}

// Simulation exposes control operations: start/stop/reset and fault injection.
type Simulation interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Reset(ctx context.Context) error
	InjectFault(ctx context.Context, faultType string) error
}

// Monitoring exposes read-only system state and history.
type Monitoring interface {
	Status(ctx context.Context) (models.SystemStatus, error)
	Current(ctx context.Context) (models.Reading, error)
	History(ctx context.Context, n int) ([]models.Reading, error)
	ExportHistory(ctx context.Context, format string) ([]byte, string, error)
}

// Prediction exposes model training and the latest failure estimate.
type Prediction interface {
	Train(ctx context.Context) (int, error)
	Latest(ctx context.Context) (models.MLPrediction, error)
}

// ServiceLogs exposes the audit log with filtering and pagination.
type ServiceLogs interface {
	List(ctx context.Context, q LogQuery) ([]models.ServiceLogEntry, int, error)
}

// Maintenance exposes maintenance-record listing and creation.
type Maintenance interface {
	List(ctx context.Context, q MaintenanceQuery) ([]models.MaintenanceRecord, int, error)
	Create(ctx context.Context, r models.MaintenanceRecord) (string, error)
}

// Simulator runs the background loop that generates readings while the
// simulation is running. Stop via context cancellation in main() for
// graceful shutdown.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// AnomalyDetector is the scoring model consumed by the simulator and the
// prediction service.
type AnomalyDetector interface {
	Trained() bool
	Train(readings []models.Reading) error
	Predict(readings []models.Reading) ([]int, []float64, error)
	PredictTimeline(readings []models.Reading) models.MLPrediction
}

// LogQuery filters service-log listings.
type LogQuery struct {
	EventType string
	Severity  string
	Component string
	Limit     int
	Offset    int
}

// MaintenanceQuery filters maintenance-record listings.
type MaintenanceQuery struct {
	MaintenanceType string
	Component       string
	Status          string
	Limit           int
	Offset          int
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Simulation
	Monitoring
	Prediction
	ServiceLogs
	Maintenance
	Simulator
	Authorization
}

// NewService wires the repository layer and the detector into concrete
// services.
func NewService(repos *repository.Repository, det AnomalyDetector) *Service {
	return &Service{
		Simulation:    NewControlService(repos.State, repos.Readings, repos.ServiceLogs),
		Monitoring:    NewMonitoringService(repos.State, repos.Readings),
		Prediction:    NewPredictionService(repos.State, repos.Readings, repos.ServiceLogs, det),
		ServiceLogs:   NewServiceLogService(repos.ServiceLogs),
		Maintenance:   NewMaintenanceService(repos.Maintenance, repos.ServiceLogs),
		Simulator:     NewSimulatorService(repos.State, repos.Readings, repos.ServiceLogs, det),
		Authorization: NewAuthService(repos.Auth),
	}
}
