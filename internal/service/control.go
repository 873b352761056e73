package service

import (
	"context"
	"errors"
	"time"

	"hydraulic_dashboard/internal/models"
	"hydraulic_dashboard/internal/repository"
)

// faultDuration is how long an injected fault ramps before clearing itself.
const faultDuration = 15 * time.Second

// Domain errors for simulation control.
var (
	ErrSimulationStopped = errors.New("simulation is not running")
	ErrInvalidFaultType  = errors.New("invalid fault type: must be pressure_drop, temperature_spike, flow_disruption or random_noise")
)

var faultMessages = map[string]string{
	models.FaultPressureDrop:     "Injecting pressure drop fault (simulating leak)",
	models.FaultTemperatureSpike: "Injecting temperature spike fault (simulating overheating)",
	models.FaultFlowDisruption:   "Injecting flow disruption fault (simulating cavitation)",
	models.FaultRandomNoise:      "Injecting sensor noise fault",
}

// ControlService owns the run flag, reset semantics and fault injection.
type ControlService struct {
	state    repository.StateRepo
	readings repository.ReadingRepo
	logs     repository.ServiceLogRepo
}

func NewControlService(state repository.StateRepo, readings repository.ReadingRepo, logs repository.ServiceLogRepo) *ControlService {
	return &ControlService{state: state, readings: readings, logs: logs}
}

// Start flips the run flag on. Starting an already running simulation is a
// no-op beyond the alert.
func (s *ControlService) Start(ctx context.Context) error {
	s.state.SetRunning(true)
	pushAlert(ctx, s.state, s.logs, models.AlertInfo, "Hydraulic simulation started")
	logEvent(ctx, s.logs, models.LogEventSystem, models.SeverityInfo, models.ComponentSimulation, "Hydraulic simulation started", nil)
	return nil
}

// Stop flips the run flag off; current data and history are kept and served
// stale until a reset.
func (s *ControlService) Stop(ctx context.Context) error {
	s.state.SetRunning(false)
	pushAlert(ctx, s.state, s.logs, models.AlertInfo, "Hydraulic simulation stopped")
	logEvent(ctx, s.logs, models.LogEventSystem, models.SeverityInfo, models.ComponentSimulation, "Hydraulic simulation stopped", nil)
	return nil
}

// Reset clears fault, health, history, alerts and prediction. The run flag
// is left as-is, matching the dashboard's reset button.
func (s *ControlService) Reset(ctx context.Context) error {
	s.state.ClearFault()
	s.state.SetHealth(models.HealthHealthy)
	s.readings.Reset()
	s.state.ClearAlerts()
	s.state.SetPrediction(nil)
	pushAlert(ctx, s.state, s.logs, models.AlertInfo, "System reset completed - all parameters restored to normal")
	logEvent(ctx, s.logs, models.LogEventSystem, models.SeverityInfo, models.ComponentSimulation, "Simulation state reset - all parameters restored to normal", nil)
	return nil
}

// InjectFault arms a fault signature that the simulator ramps up over
// faultDuration. Rejected while the simulation is stopped.
func (s *ControlService) InjectFault(ctx context.Context, faultType string) error {
	msg, ok := faultMessages[faultType]
	if !ok {
		return ErrInvalidFaultType
	}
	if !s.state.IsRunning() {
		return ErrSimulationStopped
	}

	s.state.SetFault(models.FaultState{
		Type:       faultType,
		StartedAt:  time.Now().UnixMilli(),
		DurationMS: faultDuration.Milliseconds(),
	})

	pushAlert(ctx, s.state, s.logs, models.AlertWarning, msg)
	logEvent(ctx, s.logs, models.LogEventFault, models.SeverityWarning, models.ComponentHydraulicSystem,
		"Fault injected: "+faultType,
		map[string]any{"fault_type": faultType, "duration": faultDuration.Milliseconds()})
	return nil
}
