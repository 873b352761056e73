package service

import (
	"context"
	"strings"

	"hydraulic_dashboard/internal/models"
	"hydraulic_dashboard/internal/repository"
)

// logsStub records appended service-log entries in memory and captures the
// last filter passed to List.
type logsStub struct {
	entries    []models.ServiceLogEntry
	lastFilter repository.ServiceLogFilter
	appendErr  error
}

func (l *logsStub) Append(_ context.Context, e models.ServiceLogEntry) error {
	if l.appendErr != nil {
		return l.appendErr
	}
	l.entries = append(l.entries, e)
	return nil
}

func (l *logsStub) List(_ context.Context, f repository.ServiceLogFilter) ([]models.ServiceLogEntry, int, error) {
	l.lastFilter = f
	return l.entries, len(l.entries), nil
}

func (l *logsStub) hasMessage(substr string) bool {
	for _, e := range l.entries {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// maintStub records created maintenance records and captures the last filter.
type maintStub struct {
	records    []models.MaintenanceRecord
	lastFilter repository.MaintenanceFilter
	createErr  error
}

func (m *maintStub) Create(_ context.Context, r models.MaintenanceRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.records = append(m.records, r)
	return nil
}

func (m *maintStub) List(_ context.Context, f repository.MaintenanceFilter) ([]models.MaintenanceRecord, int, error) {
	m.lastFilter = f
	return m.records, len(m.records), nil
}

// detectorStub is a canned AnomalyDetector: Predict labels every point with
// the configured label and score.
type detectorStub struct {
	trained     bool
	trainErr    error
	trainedWith []models.Reading
	trainCalls  int
	label       int
	score       float64
	predictErr  error
	timeline    models.MLPrediction
}

func (d *detectorStub) Trained() bool { return d.trained }

func (d *detectorStub) Train(readings []models.Reading) error {
	d.trainCalls++
	if d.trainErr != nil {
		return d.trainErr
	}
	d.trained = true
	d.trainedWith = readings
	return nil
}

func (d *detectorStub) Predict(readings []models.Reading) ([]int, []float64, error) {
	if d.predictErr != nil {
		return nil, nil, d.predictErr
	}
	labels := make([]int, len(readings))
	scores := make([]float64, len(readings))
	for i := range readings {
		labels[i] = d.label
		scores[i] = d.score
	}
	return labels, scores, nil
}

func (d *detectorStub) PredictTimeline([]models.Reading) models.MLPrediction {
	return d.timeline
}

// authRepoStub is an in-memory user table.
type authRepoStub struct {
	users  map[string]*models.User
	nextID int
}

func newAuthRepoStub() *authRepoStub {
	return &authRepoStub{users: map[string]*models.User{}}
}

func (a *authRepoStub) Create(username, email, hash, role string) (int, error) {
	a.nextID++
	a.users[username] = &models.User{
		ID:           a.nextID,
		Username:     username,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	}
	return a.nextID, nil
}

func (a *authRepoStub) GetByUsername(username string) (*models.User, error) {
	u, ok := a.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
