package service

import (
	"context"
	"strings"

	"hydraulic_dashboard/internal/models"
	"hydraulic_dashboard/internal/repository"
)

type ServiceLogService struct {
	logs repository.ServiceLogRepo
}

func NewServiceLogService(logs repository.ServiceLogRepo) *ServiceLogService {
	return &ServiceLogService{logs: logs}
}

// List returns audit-log entries newest first plus the pre-pagination total.
// Filter values are normalized to lowercase.
func (s *ServiceLogService) List(ctx context.Context, q LogQuery) ([]models.ServiceLogEntry, int, error) {
	return s.logs.List(ctx, repository.ServiceLogFilter{
		EventType: strings.ToLower(strings.TrimSpace(q.EventType)),
		Severity:  strings.ToLower(strings.TrimSpace(q.Severity)),
		Component: strings.TrimSpace(q.Component),
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
}
