package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"hydraulic_dashboard/internal/models"
	"hydraulic_dashboard/internal/repository"
)

func newMonitoringFixture() (*MonitoringService, repository.StateRepo, repository.ReadingRepo) {
	state := repository.NewStateStore()
	readings := repository.NewReadingBuffer(0)
	return NewMonitoringService(state, readings), state, readings
}

func TestMonitoringService_Status(t *testing.T) {
	svc, state, _ := newMonitoringFixture()
	ctx := context.Background()

	st, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Health != models.HealthHealthy || st.IsRunning || st.CurrentData != nil || st.MLPrediction != nil {
		t.Fatalf("fresh status = %+v, want healthy/stopped/empty", st)
	}

	state.SetRunning(true)
	state.SetHealth(models.HealthWarning)
	state.SetCurrent(models.Reading{Timestamp: 42, Pressure: 151, Temperature: 81, Flow: 49})
	state.SetPrediction(&models.MLPrediction{RiskLevel: models.RiskMedium})
	for i := 0; i < 7; i++ {
		state.AddAlert(models.Alert{ID: fmt.Sprintf("a%d", i), Type: models.AlertInfo, Message: fmt.Sprintf("alert %d", i)})
	}

	st, err = svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !st.IsRunning || st.Health != models.HealthWarning {
		t.Fatalf("status = %+v", st)
	}
	if st.CurrentData == nil || st.CurrentData.Timestamp != 42 {
		t.Fatalf("current data = %+v, want timestamp 42", st.CurrentData)
	}
	if st.MLPrediction == nil || st.MLPrediction.RiskLevel != models.RiskMedium {
		t.Fatalf("prediction = %+v", st.MLPrediction)
	}
	// only the five newest alerts are served
	if len(st.Alerts) != 5 {
		t.Fatalf("alerts = %d, want 5", len(st.Alerts))
	}
	if st.Alerts[0].ID != "a2" || st.Alerts[4].ID != "a6" {
		t.Fatalf("alert window = %s..%s, want a2..a6", st.Alerts[0].ID, st.Alerts[4].ID)
	}
}

func TestMonitoringService_Current(t *testing.T) {
	svc, state, _ := newMonitoringFixture()
	ctx := context.Background()

	if _, err := svc.Current(ctx); !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}

	state.SetCurrent(models.Reading{Timestamp: 7, Pressure: 150, Temperature: 80, Flow: 50})
	got, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got.Timestamp != 7 {
		t.Fatalf("timestamp = %d, want 7", got.Timestamp)
	}
}

func TestMonitoringService_History(t *testing.T) {
	svc, _, readings := newMonitoringFixture()
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		readings.Append(models.Reading{Timestamp: int64(i)})
	}

	got, err := svc.History(ctx, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != defaultHistoryPoints {
		t.Fatalf("default history = %d points, want %d", len(got), defaultHistoryPoints)
	}
	// newest points, oldest first
	if got[0].Timestamp != 10 || got[len(got)-1].Timestamp != 59 {
		t.Fatalf("history window = %d..%d, want 10..59", got[0].Timestamp, got[len(got)-1].Timestamp)
	}

	got, err = svc.History(ctx, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 10 || got[0].Timestamp != 50 {
		t.Fatalf("history(10) = %d points from %d", len(got), got[0].Timestamp)
	}
}

func TestMonitoringService_ExportHistory(t *testing.T) {
	svc, _, readings := newMonitoringFixture()
	ctx := context.Background()

	if _, _, err := svc.ExportHistory(ctx, "csv"); err == nil {
		t.Fatal("expected error exporting an empty buffer")
	}

	readings.Append(models.Reading{Timestamp: 1000, Pressure: 150.5, Temperature: 80.25, Flow: 49.75})
	readings.Append(models.Reading{Timestamp: 2000, Pressure: 149.5, Temperature: 79.5, Flow: 50.5})

	t.Run("csv", func(t *testing.T) {
		b, ct, err := svc.ExportHistory(ctx, "csv")
		if err != nil {
			t.Fatalf("ExportHistory: %v", err)
		}
		if ct != "text/csv" {
			t.Fatalf("content type = %q", ct)
		}
		lines := strings.Split(strings.TrimSpace(string(b)), "\n")
		if len(lines) != 3 {
			t.Fatalf("csv has %d lines, want header + 2 rows", len(lines))
		}
		if lines[0] != "timestamp,pressure,temperature,flow" {
			t.Fatalf("header = %q", lines[0])
		}
		if lines[1] != "1000,150.50,80.25,49.75" {
			t.Fatalf("row = %q", lines[1])
		}
	})

	t.Run("empty format defaults to csv", func(t *testing.T) {
		_, ct, err := svc.ExportHistory(ctx, "")
		if err != nil || ct != "text/csv" {
			t.Fatalf("got (%q, %v)", ct, err)
		}
	})

	t.Run("json", func(t *testing.T) {
		b, ct, err := svc.ExportHistory(ctx, "json")
		if err != nil {
			t.Fatalf("ExportHistory: %v", err)
		}
		if ct != "application/json" {
			t.Fatalf("content type = %q", ct)
		}
		var out []models.Reading
		if err := json.Unmarshal(b, &out); err != nil {
			t.Fatalf("unmarshal export: %v", err)
		}
		if len(out) != 2 || out[1].Timestamp != 2000 {
			t.Fatalf("export = %+v", out)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, _, err := svc.ExportHistory(ctx, "xml"); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("err = %v, want ErrInvalidFormat", err)
		}
	})
}
