package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"hydraulic_dashboard/internal/models"
	"hydraulic_dashboard/internal/repository"
)

// ----------- Simulation constants -----------
const (
	BasePressurePSI  = 150.0 // PSI
	BaseTemperatureC = 80.0  // °C
	BaseFlowLPM      = 50.0  // L/min

	// Uniform jitter amplitudes for normal operation.
	pressureJitter    = 10.0
	temperatureJitter = 8.0
	flowJitter        = 6.0

	// Normal operating bands for threshold classification.
	pressureMin, pressureMax       = 140.0, 160.0
	temperatureMin, temperatureMax = 70.0, 90.0
	flowMin, flowMax               = 45.0, 55.0

	// Deviation from baseline that escalates a warning to a fault.
	pressureFaultDev    = 30.0
	temperatureFaultDev = 20.0
	flowFaultDev        = 15.0

	// Readings kept for ML classification context.
	mlContextPoints = 20

	// A point this far below zero on the anomaly scale is a fault.
	faultScoreCutoff = -0.3

	// Prediction refresh cadence, in appended readings.
	predictionEvery = 10

	// Readings fed to the failure-timeline estimator.
	timelinePoints = 50
)

// SimulatorService generates readings over time while the simulation runs.
type SimulatorService struct {
	state    repository.StateRepo
	readings repository.ReadingRepo
	logs     repository.ServiceLogRepo
	detector AnomalyDetector
	rnd      *rand.Rand
}

// NewSimulatorService returns a simulator with defaults.
func NewSimulatorService(state repository.StateRepo, readings repository.ReadingRepo, logs repository.ServiceLogRepo, det AnomalyDetector) *SimulatorService {
	return &SimulatorService{
		state:    state,
		readings: readings,
		logs:     logs,
		detector: det,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run ticks at the given interval until ctx is canceled. Nothing is
// generated while the simulation is stopped.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if !s.state.IsRunning() {
				continue
			}
			s.step(ctx, now)
		}
	}
}

// step produces one reading: baseline noise, active fault signature, health
// classification with alerting on transitions, and a periodic prediction
// refresh.
func (s *SimulatorService) step(ctx context.Context, now time.Time) {
	r := s.generateReading(now)

	if f, ok := s.state.Fault(); ok {
		age := now.UnixMilli() - f.StartedAt
		intensity := 1.0
		if f.DurationMS > 0 && age < f.DurationMS {
			intensity = float64(age) / float64(f.DurationMS)
		}
		r = s.applyFaultSignature(r, f.Type, intensity)

		if age >= f.DurationMS {
			s.state.ClearFault()
			pushAlert(ctx, s.state, s.logs, models.AlertInfo, "Fault condition cleared - returning to normal operation")
		}
	}

	s.transitionHealth(ctx, r, s.classify(r))

	s.state.SetCurrent(r)
	s.readings.Append(r)

	if s.readings.Len()%predictionEvery == 0 {
		s.refreshPrediction()
	}
}

// generateReading produces a baseline reading with natural variation.
func (s *SimulatorService) generateReading(now time.Time) models.Reading {
	return models.Reading{
		Timestamp:   now.UnixMilli(),
		Pressure:    math.Max(0, BasePressurePSI+(s.rnd.Float64()-0.5)*pressureJitter),
		Temperature: math.Max(0, BaseTemperatureC+(s.rnd.Float64()-0.5)*temperatureJitter),
		Flow:        math.Max(0, BaseFlowLPM+(s.rnd.Float64()-0.5)*flowJitter),
	}
}

// applyFaultSignature distorts a reading according to the active fault type
// and its ramp-up intensity in [0, 1].
func (s *SimulatorService) applyFaultSignature(r models.Reading, faultType string, intensity float64) models.Reading {
	switch faultType {
	case models.FaultPressureDrop:
		// leak: gradual pressure drop with a floor
		r.Pressure = math.Max(80, r.Pressure-intensity*40)
	case models.FaultTemperatureSpike:
		// overheating
		r.Temperature += intensity * 30
	case models.FaultFlowDisruption:
		// cavitation: erratic flow
		r.Flow += (s.rnd.Float64() - 0.5) * intensity * 30
	case models.FaultRandomNoise:
		// sensor malfunction: jitter on every channel
		r.Pressure += (s.rnd.Float64() - 0.5) * intensity * 20
		r.Temperature += (s.rnd.Float64() - 0.5) * intensity * 15
		r.Flow += (s.rnd.Float64() - 0.5) * intensity * 15
	}
	return r
}

// classify derives health for a reading, preferring the trained detector and
// falling back to threshold bands.
func (s *SimulatorService) classify(r models.Reading) models.Health {
	if s.detector != nil && s.detector.Trained() {
		series := append(s.readings.Recent(mlContextPoints), r)
		labels, scores, err := s.detector.Predict(series)
		if err == nil && len(labels) > 0 {
			if labels[len(labels)-1] == -1 {
				if scores[len(scores)-1] < faultScoreCutoff {
					return models.HealthFault
				}
				return models.HealthWarning
			}
			return models.HealthHealthy
		}
	}
	return classifyThreshold(r)
}

// classifyThreshold applies the static operating bands.
func classifyThreshold(r models.Reading) models.Health {
	pressureNormal := r.Pressure >= pressureMin && r.Pressure <= pressureMax
	temperatureNormal := r.Temperature >= temperatureMin && r.Temperature <= temperatureMax
	flowNormal := r.Flow >= flowMin && r.Flow <= flowMax

	if pressureNormal && temperatureNormal && flowNormal {
		return models.HealthHealthy
	}

	pressureDev := math.Abs(r.Pressure - BasePressurePSI)
	temperatureDev := math.Abs(r.Temperature - BaseTemperatureC)
	flowDev := math.Abs(r.Flow - BaseFlowLPM)

	if pressureDev > pressureFaultDev || temperatureDev > temperatureFaultDev || flowDev > flowFaultDev {
		return models.HealthFault
	}
	return models.HealthWarning
}

// transitionHealth records the new health and alerts on changes.
func (s *SimulatorService) transitionHealth(ctx context.Context, r models.Reading, next models.Health) {
	if next == s.state.Health() {
		return
	}
	switch next {
	case models.HealthFault:
		pushAlert(ctx, s.state, s.logs, models.AlertError,
			fmt.Sprintf("System fault detected! Pressure: %.1f PSI, Temp: %.1f°C, Flow: %.1f L/min", r.Pressure, r.Temperature, r.Flow))
	case models.HealthWarning:
		pushAlert(ctx, s.state, s.logs, models.AlertWarning, "Anomaly detected - system parameters show unusual patterns")
	case models.HealthHealthy:
		pushAlert(ctx, s.state, s.logs, models.AlertInfo, "System returned to normal operation")
	}
	s.state.SetHealth(next)
}

// refreshPrediction recomputes the failure timeline from recent history.
func (s *SimulatorService) refreshPrediction() {
	if s.detector == nil {
		return
	}
	p := s.detector.PredictTimeline(s.readings.Recent(timelinePoints))
	s.state.SetPrediction(&p)
}
