package models

// Risk levels reported by the failure-timeline estimator.
const (
	RiskLow     = "low"
	RiskMedium  = "medium"
	RiskHigh    = "high"
	RiskUnknown = "unknown"
)

// MLPrediction is the failure-timeline estimate derived from recent anomaly
// scores. DaysToFailure is nil when there is not enough data to estimate.
type MLPrediction struct {
	DaysToFailure *int    `json:"days_to_failure"`
	Confidence    float64 `json:"confidence"`
	RiskLevel     string  `json:"risk_level"`
	TrendAnalysis string  `json:"trend_analysis"`
}

// SystemStatus is the composite snapshot served by GET /status.
type SystemStatus struct {
	Health       Health        `json:"health"`
	IsRunning    bool          `json:"is_running"`
	CurrentData  *Reading      `json:"current_data"`
	Alerts       []Alert       `json:"alerts"`
	MLPrediction *MLPrediction `json:"ml_prediction"`
}
