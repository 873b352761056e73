package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"hydraulic_dashboard/internal/models"
	"hydraulic_dashboard/internal/repository"
)

// defaultHistoryPoints is how many readings the historical endpoint serves.
const defaultHistoryPoints = 50

var (
	ErrNoData          = errors.New("no data available")
	ErrInvalidFormat   = errors.New("invalid export format: must be csv or json")
	errNothingToExport = errors.New("no readings to export")
)

type MonitoringService struct {
	state    repository.StateRepo
	readings repository.ReadingRepo
}

func NewMonitoringService(state repository.StateRepo, readings repository.ReadingRepo) *MonitoringService {
	return &MonitoringService{state: state, readings: readings}
}

// Status assembles the composite snapshot: health, run flag, current
// reading, the five newest alerts and the latest prediction.
func (s *MonitoringService) Status(ctx context.Context) (models.SystemStatus, error) {
	st := models.SystemStatus{
		Health:       s.state.Health(),
		IsRunning:    s.state.IsRunning(),
		Alerts:       s.state.Alerts(5),
		MLPrediction: s.state.Prediction(),
	}
	if cur, ok := s.state.Current(); ok {
		st.CurrentData = &cur
	}
	return st, nil
}

// Current returns the latest reading, or ErrNoData before the first tick.
func (s *MonitoringService) Current(ctx context.Context) (models.Reading, error) {
	cur, ok := s.state.Current()
	if !ok {
		return models.Reading{}, ErrNoData
	}
	return cur, nil
}

// History returns up to n of the newest readings, oldest first.
func (s *MonitoringService) History(ctx context.Context, n int) ([]models.Reading, error) {
	if n <= 0 {
		n = defaultHistoryPoints
	}
	return s.readings.Recent(n), nil
}

// ExportHistory serializes the full in-memory buffer as CSV or JSON and
// returns the payload with its content type.
func (s *MonitoringService) ExportHistory(ctx context.Context, format string) ([]byte, string, error) {
	readings := s.readings.All()
	if len(readings) == 0 {
		return nil, "", errNothingToExport
	}

	switch format {
	case "json":
		b, err := json.Marshal(readings)
		if err != nil {
			return nil, "", fmt.Errorf("marshal readings: %w", err)
		}
		return b, "application/json", nil
	case "csv", "":
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write([]string{"timestamp", "pressure", "temperature", "flow"}); err != nil {
			return nil, "", err
		}
		for _, r := range readings {
			rec := []string{
				strconv.FormatInt(r.Timestamp, 10),
				strconv.FormatFloat(r.Pressure, 'f', 2, 64),
				strconv.FormatFloat(r.Temperature, 'f', 2, 64),
				strconv.FormatFloat(r.Flow, 'f', 2, 64),
			}
			if err := w.Write(rec); err != nil {
				return nil, "", err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "text/csv", nil
	default:
		return nil, "", ErrInvalidFormat
	}
}
