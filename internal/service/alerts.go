package service

import (
	"context"
	"time"

	"hydraulic_dashboard/internal/models"
	"hydraulic_dashboard/internal/repository"

	"github.com/google/uuid"
)

// pushAlert appends an alert to the rolling list and mirrors it into the
// service log, matching the alert/audit pairing the dashboard expects.
func pushAlert(ctx context.Context, state repository.StateRepo, logs repository.ServiceLogRepo, alertType, message string) {
	a := models.Alert{
		ID:        uuid.NewString(),
		Type:      alertType,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
	state.AddAlert(a)
	if logs != nil {
		_ = logs.Append(ctx, models.ServiceLogEntry{
			EventType: models.LogEventSystem,
			Severity:  alertType,
			Component: models.ComponentHydraulicSystem,
			Message:   "Alert generated: " + message,
			Details:   map[string]any{"alert_id": a.ID},
		})
	}
}

// logEvent appends a bare service-log entry without generating an alert.
func logEvent(ctx context.Context, logs repository.ServiceLogRepo, eventType, severity, component, message string, details map[string]any) {
	if logs == nil {
		return
	}
	_ = logs.Append(ctx, models.ServiceLogEntry{
		EventType: eventType,
		Severity:  severity,
		Component: component,
		Message:   message,
		Details:   details,
	})
}
