package ml

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"

	"hydraulic_dashboard/internal/models"
)

// ----------- Scoring constants -----------
const (
	// featureWindow is the rolling-statistics window used for feature prep.
	featureWindow = 5

	// minTrainSamples is the minimum series length required to fit a model.
	minTrainSamples = 10

	// minTimelineSamples is the minimum series length for a failure estimate.
	minTimelineSamples = 10

	// labelCutoff marks a point anomalous when its score drops below it.
	labelCutoff = -0.2

	// Risk bands over the mean anomaly score. Scores live in [-1, 0];
	// normal operation sits near 0, anomalies drive the score down.
	highRiskScore   = -0.3
	mediumRiskScore = -0.1

	// Base days-to-failure per risk band.
	highRiskDays   = 7
	mediumRiskDays = 30
	lowRiskDays    = 90

	// Trend slope thresholds over per-point scores.
	worseningSlope = -0.01
	improvingSlope = 0.01
)

var ErrNotTrained = errors.New("detector is not trained")

// Detector scores hydraulic readings against a fitted baseline of rolling
// statistics. It plays the role of an anomaly-detection model: Train fits
// per-feature means and deviations, Predict labels points and assigns
// anomaly scores in [-1, 0] where lower means more anomalous.
type Detector struct {
	mu      sync.RWMutex
	trained bool
	means   []float64
	stds    []float64
}

func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) Trained() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.trained
}

// Train fits the detector. With fewer than minTrainSamples readings (or a
// nil slice) it falls back to synthetic training data covering normal
// operation and the known fault signatures.
func (d *Detector) Train(readings []models.Reading) error {
	if len(readings) < minTrainSamples {
		readings = syntheticTrainingData(1000)
	}

	features := prepareFeatures(readings)
	if len(features) < minTrainSamples {
		return fmt.Errorf("insufficient data for training: have %d, need %d", len(features), minTrainSamples)
	}

	cols := len(features[0])
	means := make([]float64, cols)
	stds := make([]float64, cols)
	for j := 0; j < cols; j++ {
		var sum float64
		for _, row := range features {
			sum += row[j]
		}
		mean := sum / float64(len(features))
		var varSum float64
		for _, row := range features {
			diff := row[j] - mean
			varSum += diff * diff
		}
		means[j] = mean
		stds[j] = math.Sqrt(varSum / float64(len(features)))
	}

	d.mu.Lock()
	d.means = means
	d.stds = stds
	d.trained = true
	d.mu.Unlock()
	return nil
}

// Predict labels each reading in the series: -1 anomalous, 1 normal, along
// with anomaly scores. Returns ErrNotTrained before the first Train.
func (d *Detector) Predict(readings []models.Reading) ([]int, []float64, error) {
	d.mu.RLock()
	trained := d.trained
	means := d.means
	stds := d.stds
	d.mu.RUnlock()

	if !trained {
		return nil, nil, ErrNotTrained
	}

	features := prepareFeatures(readings)
	labels := make([]int, len(features))
	scores := make([]float64, len(features))
	for i, row := range features {
		score := anomalyScore(row, means, stds)
		scores[i] = score
		if score < labelCutoff {
			labels[i] = -1
		} else {
			labels[i] = 1
		}
	}
	return labels, scores, nil
}

// PredictTimeline estimates a failure horizon from recent readings: the mean
// anomaly score picks a risk band and base horizon, and the least-squares
// slope of the scores shortens or extends it.
func (d *Detector) PredictTimeline(readings []models.Reading) models.MLPrediction {
	if len(readings) < minTimelineSamples {
		return models.MLPrediction{
			Confidence:    0,
			RiskLevel:     models.RiskUnknown,
			TrendAnalysis: "Insufficient data for analysis",
		}
	}

	_, scores, err := d.Predict(readings)
	if err != nil || len(scores) == 0 {
		return models.MLPrediction{
			Confidence:    0,
			RiskLevel:     models.RiskUnknown,
			TrendAnalysis: "Unable to calculate anomaly scores",
		}
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	avg := sum / float64(len(scores))
	slope := linearSlope(scores)

	var (
		risk     string
		baseDays int
	)
	switch {
	case avg <= highRiskScore:
		risk = models.RiskHigh
		baseDays = highRiskDays
	case avg <= mediumRiskScore:
		risk = models.RiskMedium
		baseDays = mediumRiskDays
	default:
		risk = models.RiskLow
		baseDays = lowRiskDays
	}

	var (
		days       int
		confidence float64
		trend      string
	)
	switch {
	case slope < worseningSlope:
		days = baseDays / 2
		if days < 1 {
			days = 1
		}
		confidence = 0.8
		trend = "worsening"
	case slope > improvingSlope:
		days = baseDays * 3 / 2
		confidence = 0.6
		trend = "improving"
	default:
		days = baseDays
		confidence = 0.7
		trend = "stable"
	}

	return models.MLPrediction{
		DaysToFailure: &days,
		Confidence:    confidence,
		RiskLevel:     risk,
		TrendAnalysis: fmt.Sprintf("Average anomaly score: %.3f, Trend: %s", avg, trend),
	}
}

// anomalyScore maps the mean per-feature z-score excess into [-1, 0].
// A point whose features sit within one deviation of the baseline scores 0.
func anomalyScore(row, means, stds []float64) float64 {
	var zSum float64
	var n int
	for j := range row {
		if stds[j] == 0 {
			continue
		}
		zSum += math.Abs(row[j]-means[j]) / stds[j]
		n++
	}
	if n == 0 {
		return 0
	}
	z := zSum / float64(n)
	score := -math.Max(0, z-1) / 4
	if score < -1 {
		score = -1
	}
	return score
}

// linearSlope is the least-squares slope of ys over their indices.
func linearSlope(ys []float64) float64 {
	n := float64(len(ys))
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// prepareFeatures turns a reading series into per-point feature rows: raw
// value, rolling mean, rolling sample deviation and rate of change for each
// sensor, over a window of featureWindow points. The series is sorted by
// timestamp first.
func prepareFeatures(readings []models.Reading) [][]float64 {
	if len(readings) == 0 {
		return nil
	}

	sorted := make([]models.Reading, len(readings))
	copy(sorted, readings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })

	cols := [3]func(models.Reading) float64{
		func(r models.Reading) float64 { return r.Pressure },
		func(r models.Reading) float64 { return r.Temperature },
		func(r models.Reading) float64 { return r.Flow },
	}

	rows := make([][]float64, len(sorted))
	for i := range sorted {
		row := make([]float64, 0, 12)
		lo := i - featureWindow + 1
		if lo < 0 {
			lo = 0
		}
		for _, col := range cols {
			v := col(sorted[i])
			mean, std := windowStats(sorted[lo:i+1], col)
			rate := 0.0
			if i > 0 {
				rate = v - col(sorted[i-1])
			}
			row = append(row, v, mean, std, rate)
		}
		rows[i] = row
	}
	return rows
}

// windowStats computes mean and sample deviation over a window. A window of
// one point has deviation 0.
func windowStats(window []models.Reading, col func(models.Reading) float64) (float64, float64) {
	n := float64(len(window))
	var sum float64
	for _, r := range window {
		sum += col(r)
	}
	mean := sum / n
	if n < 2 {
		return mean, 0
	}
	var varSum float64
	for _, r := range window {
		diff := col(r) - mean
		varSum += diff * diff
	}
	return mean, math.Sqrt(varSum / (n - 1))
}

// syntheticTrainingData generates a labeled-free mix of normal operation
// (80%) and the four known fault patterns (20%) around the simulator
// baselines.
func syntheticTrainingData(n int) []models.Reading {
	rnd := rand.New(rand.NewSource(42))
	normal := n * 8 / 10
	out := make([]models.Reading, 0, n)

	ts := int64(0)
	next := func() int64 {
		ts += 1000
		return ts
	}

	for i := 0; i < normal; i++ {
		out = append(out, models.Reading{
			Timestamp:   next(),
			Pressure:    math.Max(0, rnd.NormFloat64()*5+150),
			Temperature: math.Max(0, rnd.NormFloat64()*4+80),
			Flow:        math.Max(0, rnd.NormFloat64()*3+50),
		})
	}
	for i := normal; i < n; i++ {
		r := models.Reading{
			Timestamp:   next(),
			Pressure:    math.Max(0, rnd.NormFloat64()*5+150),
			Temperature: math.Max(0, rnd.NormFloat64()*4+80),
			Flow:        math.Max(0, rnd.NormFloat64()*3+50),
		}
		switch i % 4 {
		case 0: // pressure drop
			r.Pressure = 80 + rnd.Float64()*40
		case 1: // temperature spike
			r.Temperature = 100 + rnd.Float64()*30
		case 2: // flow disruption
			r.Flow = 20 + rnd.Float64()*15
		default: // multiple fault
			r.Pressure = 90 + rnd.Float64()*40
			r.Temperature = 90 + rnd.Float64()*20
			r.Flow = 30 + rnd.Float64()*10
		}
		out = append(out, r)
	}
	return out
}
