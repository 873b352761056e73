package ml

import (
	"math"
	"math/rand"
	"testing"

	"hydraulic_dashboard/internal/models"
)

// normalSeries generates n readings around the healthy baselines.
func normalSeries(n int) []models.Reading {
	rnd := rand.New(rand.NewSource(7))
	out := make([]models.Reading, n)
	for i := range out {
		out[i] = models.Reading{
			Timestamp:   int64(i+1) * 1000,
			Pressure:    rnd.NormFloat64()*5 + 150,
			Temperature: rnd.NormFloat64()*4 + 80,
			Flow:        rnd.NormFloat64()*3 + 50,
		}
	}
	return out
}

// degradedSeries generates n readings deep in fault territory.
func degradedSeries(n int) []models.Reading {
	out := make([]models.Reading, n)
	for i := range out {
		out[i] = models.Reading{
			Timestamp:   int64(i+1) * 1000,
			Pressure:    70,
			Temperature: 135,
			Flow:        15,
		}
	}
	return out
}

func newTrainedDetector(t *testing.T) *Detector {
	t.Helper()
	d := NewDetector()
	if err := d.Train(nil); err != nil {
		t.Fatalf("Train(nil): %v", err)
	}
	if !d.Trained() {
		t.Fatal("expected detector to report trained")
	}
	return d
}

func TestPredict_BeforeTraining(t *testing.T) {
	d := NewDetector()
	if _, _, err := d.Predict(normalSeries(5)); err == nil {
		t.Fatal("expected ErrNotTrained before Train")
	}
}

func TestPredict_NormalOperationScoresNearZero(t *testing.T) {
	d := newTrainedDetector(t)

	labels, scores, err := d.Predict(normalSeries(30))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(labels) != 30 || len(scores) != 30 {
		t.Fatalf("got %d labels / %d scores, want 30 each", len(labels), len(scores))
	}
	last := len(labels) - 1
	if labels[last] != 1 {
		t.Fatalf("normal point labeled anomalous (score %.3f)", scores[last])
	}
	if scores[last] < labelCutoff {
		t.Fatalf("normal score %.3f below cutoff %.3f", scores[last], labelCutoff)
	}
}

func TestPredict_FlagsDegradedReadings(t *testing.T) {
	d := newTrainedDetector(t)

	series := append(normalSeries(20), models.Reading{
		Timestamp:   100_000,
		Pressure:    85,
		Temperature: 125,
		Flow:        20,
	})
	labels, scores, err := d.Predict(series)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	last := len(labels) - 1
	if labels[last] != -1 {
		t.Fatalf("degraded point not labeled anomalous (score %.3f)", scores[last])
	}
	if scores[last] >= labelCutoff {
		t.Fatalf("degraded score %.3f not below cutoff %.3f", scores[last], labelCutoff)
	}
}

func TestPredictTimeline_InsufficientData(t *testing.T) {
	d := newTrainedDetector(t)

	p := d.PredictTimeline(normalSeries(5))
	if p.RiskLevel != models.RiskUnknown {
		t.Fatalf("risk = %q, want %q", p.RiskLevel, models.RiskUnknown)
	}
	if p.DaysToFailure != nil {
		t.Fatalf("expected nil DaysToFailure, got %d", *p.DaysToFailure)
	}
	if p.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %.2f", p.Confidence)
	}
}

func TestPredictTimeline_NormalSeriesIsLowRisk(t *testing.T) {
	d := newTrainedDetector(t)

	p := d.PredictTimeline(normalSeries(50))
	if p.RiskLevel != models.RiskLow {
		t.Fatalf("risk = %q, want %q (%s)", p.RiskLevel, models.RiskLow, p.TrendAnalysis)
	}
	if p.DaysToFailure == nil {
		t.Fatal("expected a days-to-failure estimate")
	}
	if *p.DaysToFailure < lowRiskDays {
		t.Fatalf("days = %d, want >= %d", *p.DaysToFailure, lowRiskDays)
	}
	if p.Confidence <= 0 {
		t.Fatalf("expected positive confidence, got %.2f", p.Confidence)
	}
}

func TestPredictTimeline_DegradedSeriesIsHighRisk(t *testing.T) {
	d := newTrainedDetector(t)

	p := d.PredictTimeline(degradedSeries(50))
	if p.RiskLevel != models.RiskHigh {
		t.Fatalf("risk = %q, want %q (%s)", p.RiskLevel, models.RiskHigh, p.TrendAnalysis)
	}
	if p.DaysToFailure == nil || *p.DaysToFailure > highRiskDays*3/2 {
		t.Fatalf("unexpected days-to-failure: %v", p.DaysToFailure)
	}
}

func TestLinearSlope(t *testing.T) {
	flat := []float64{1, 1, 1, 1}
	if s := linearSlope(flat); math.Abs(s) > 1e-9 {
		t.Fatalf("flat slope = %f, want 0", s)
	}
	rising := []float64{0, 1, 2, 3}
	if s := linearSlope(rising); math.Abs(s-1) > 1e-9 {
		t.Fatalf("rising slope = %f, want 1", s)
	}
	if s := linearSlope([]float64{5}); s != 0 {
		t.Fatalf("single-point slope = %f, want 0", s)
	}
}

func TestWindowStats(t *testing.T) {
	window := []models.Reading{
		{Pressure: 10}, {Pressure: 20}, {Pressure: 30},
	}
	mean, std := windowStats(window, func(r models.Reading) float64 { return r.Pressure })
	if mean != 20 {
		t.Fatalf("mean = %f, want 20", mean)
	}
	if math.Abs(std-10) > 1e-9 {
		t.Fatalf("std = %f, want 10", std)
	}

	mean, std = windowStats(window[:1], func(r models.Reading) float64 { return r.Pressure })
	if mean != 10 || std != 0 {
		t.Fatalf("single-point stats = (%f, %f), want (10, 0)", mean, std)
	}
}
