package models

// Reading is a single snapshot of the simulated hydraulic sensors.
type Reading struct {
	Timestamp   int64   `json:"timestamp"`   // unix milliseconds
	Pressure    float64 `json:"pressure"`    // PSI
	Temperature float64 `json:"temperature"` // °C
	Flow        float64 `json:"flow"`        // L/min
}

// Health is the derived three-valued system condition.
type Health string

const (
	HealthHealthy Health = "healthy"
	HealthWarning Health = "warning"
	HealthFault   Health = "fault"
)

// FaultState describes an active injected fault. Intensity ramps from 0 to 1
// over DurationMS, after which the fault clears itself.
type FaultState struct {
	Type       string `json:"type"`
	StartedAt  int64  `json:"start_time"` // unix milliseconds
	DurationMS int64  `json:"duration"`
}

// Fault types accepted by the injection endpoint.
const (
	FaultPressureDrop     = "pressure_drop"
	FaultTemperatureSpike = "temperature_spike"
	FaultFlowDisruption   = "flow_disruption"
	FaultRandomNoise      = "random_noise"
)
