package repository

import (
	"sync"

	"hydraulic_dashboard/internal/models"
)

// alertCapacity bounds the rolling alert list.
const alertCapacity = 20

// StateStore is the in-memory simulation state. Everything here is
// intentionally volatile; a restart yields a fresh, healthy, stopped system.
type StateStore struct {
	mu         sync.RWMutex
	running    bool
	health     models.Health
	current    *models.Reading
	alerts     []models.Alert
	prediction *models.MLPrediction
	fault      *models.FaultState
}

var _ StateRepo = (*StateStore)(nil)

func NewStateStore() *StateStore {
	return &StateStore{health: models.HealthHealthy}
}

func (s *StateStore) SetRunning(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = v
}

func (s *StateStore) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *StateStore) Health() models.Health {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.health
}

func (s *StateStore) SetHealth(h models.Health) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.health = h
}

func (s *StateStore) Current() (models.Reading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Reading{}, false
	}
	return *s.current, true
}

func (s *StateStore) SetCurrent(r models.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &r
}

func (s *StateStore) AddAlert(a models.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.alerts) >= alertCapacity {
		s.alerts = s.alerts[1:]
	}
	s.alerts = append(s.alerts, a)
}

// Alerts returns up to n of the newest alerts, oldest first.
func (s *StateStore) Alerts(n int) []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 || n > len(s.alerts) {
		n = len(s.alerts)
	}
	out := make([]models.Alert, n)
	copy(out, s.alerts[len(s.alerts)-n:])
	return out
}

func (s *StateStore) ClearAlerts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = nil
}

func (s *StateStore) Prediction() *models.MLPrediction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.prediction == nil {
		return nil
	}
	p := *s.prediction
	return &p
}

func (s *StateStore) SetPrediction(p *models.MLPrediction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		s.prediction = nil
		return
	}
	cp := *p
	s.prediction = &cp
}

func (s *StateStore) Fault() (models.FaultState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fault == nil {
		return models.FaultState{}, false
	}
	return *s.fault, true
}

func (s *StateStore) SetFault(f models.FaultState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = &f
}

func (s *StateStore) ClearFault() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = nil
}
