package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hydraulic_dashboard/internal/models"
	"hydraulic_dashboard/internal/repository"

	"github.com/google/uuid"
)

var errMaintenanceIncomplete = errors.New("maintenance record requires maintenance_type, component, description and technician")

type MaintenanceService struct {
	records repository.MaintenanceRepo
	logs    repository.ServiceLogRepo
}

func NewMaintenanceService(records repository.MaintenanceRepo, logs repository.ServiceLogRepo) *MaintenanceService {
	return &MaintenanceService{records: records, logs: logs}
}

// List returns records newest first plus the pre-pagination total.
func (s *MaintenanceService) List(ctx context.Context, q MaintenanceQuery) ([]models.MaintenanceRecord, int, error) {
	return s.records.List(ctx, repository.MaintenanceFilter{
		MaintenanceType: strings.TrimSpace(q.MaintenanceType),
		Component:       strings.TrimSpace(q.Component),
		Status:          strings.TrimSpace(q.Status),
		Limit:           q.Limit,
		Offset:          q.Offset,
	})
}

// Create stores a new record and mirrors it into the service log. Missing
// IDs and timestamps are filled in; the new ID is returned.
func (s *MaintenanceService) Create(ctx context.Context, r models.MaintenanceRecord) (string, error) {
	if r.MaintenanceType == "" || r.Component == "" || r.Description == "" || r.Technician == "" {
		return "", errMaintenanceIncomplete
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Timestamp == 0 {
		r.Timestamp = time.Now().UnixMilli()
	}
	if r.Status == "" {
		r.Status = models.MaintenanceScheduled
	}

	if err := s.records.Create(ctx, r); err != nil {
		return "", fmt.Errorf("create maintenance record: %w", err)
	}

	logEvent(ctx, s.logs, models.LogEventMaintenance, models.SeverityInfo, r.Component,
		fmt.Sprintf("Maintenance record created: %s - %s", r.MaintenanceType, r.Description),
		map[string]any{"maintenance_id": r.ID, "technician": r.Technician})
	return r.ID, nil
}
