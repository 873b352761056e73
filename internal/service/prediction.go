package service

import (
	"context"
	"errors"
	"fmt"

	"hydraulic_dashboard/internal/models"
	"hydraulic_dashboard/internal/repository"
)

// trainWithLiveDataMin is the history size from which training uses real
// readings instead of synthetic data.
const trainWithLiveDataMin = 50

var ErrNoPrediction = errors.New("ml prediction not available")

// PredictionService owns model training and the cached failure estimate.
type PredictionService struct {
	state    repository.StateRepo
	readings repository.ReadingRepo
	logs     repository.ServiceLogRepo
	detector AnomalyDetector
}

func NewPredictionService(state repository.StateRepo, readings repository.ReadingRepo, logs repository.ServiceLogRepo, det AnomalyDetector) *PredictionService {
	return &PredictionService{state: state, readings: readings, logs: logs, detector: det}
}

// Train fits the detector, preferring real history once enough has
// accumulated, and refreshes the cached prediction. Returns the number of
// live readings available at training time.
func (s *PredictionService) Train(ctx context.Context) (int, error) {
	n := s.readings.Len()

	var trainErr error
	if n < trainWithLiveDataMin {
		// Not enough live data; the detector trains on synthetic patterns.
		trainErr = s.detector.Train(nil)
	} else {
		trainErr = s.detector.Train(s.readings.All())
	}
	if trainErr != nil {
		logEvent(ctx, s.logs, models.LogEventML, models.SeverityError, models.ComponentMLModel,
			fmt.Sprintf("ML model training failed: %v", trainErr), nil)
		return 0, fmt.Errorf("train detector: %w", trainErr)
	}

	pushAlert(ctx, s.state, s.logs, models.AlertInfo, "ML model training completed successfully")
	logEvent(ctx, s.logs, models.LogEventML, models.SeverityInfo, models.ComponentMLModel,
		"ML model training completed successfully", map[string]any{"data_points": n})

	p := s.detector.PredictTimeline(s.readings.Recent(timelinePoints))
	s.state.SetPrediction(&p)
	return n, nil
}

// Latest returns the cached prediction, computing one on demand when absent.
func (s *PredictionService) Latest(ctx context.Context) (models.MLPrediction, error) {
	if p := s.state.Prediction(); p != nil {
		return *p, nil
	}
	if s.detector == nil {
		return models.MLPrediction{}, ErrNoPrediction
	}
	p := s.detector.PredictTimeline(s.readings.Recent(timelinePoints))
	s.state.SetPrediction(&p)
	return p, nil
}
