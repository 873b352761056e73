// Package client is a Go polling client for the hydraulic dashboard API.
// It mirrors what the browser dashboard does: poll the status endpoint once
// per second, keep a rolling history while the simulation runs, and expose
// imperative control actions that refetch status shortly after completing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"hydraulic_dashboard/internal/models"

	"github.com/google/uuid"
)

const (
	defaultPollInterval = 1 * time.Second
	refetchDelay        = 250 * time.Millisecond

	// connAlertPrefix marks the locally synthesized connection alert; at
	// most one such alert exists at a time.
	connAlertPrefix = "conn-"
)

// Snapshot is a point-in-time copy of everything the client knows.
type Snapshot struct {
	Status  models.SystemStatus
	History []models.Reading
	Alerts  []models.Alert // backend alerts plus any synthesized connection alert
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithPollInterval overrides the 1-second poll cadence.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// Client polls the dashboard backend and caches its state. Poll failures
// never surface as errors from the loop; they synthesize a local connection
// alert instead. Action failures are returned to the caller.
type Client struct {
	baseURL      string
	httpc        *http.Client
	pollInterval time.Duration

	notifier *Notifier

	mu        sync.RWMutex
	token     string
	status    models.SystemStatus
	history   []models.Reading
	connAlert *models.Alert
	lastRisk  string
	seenFirst bool
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpc:        &http.Client{Timeout: 10 * time.Second},
		pollInterval: defaultPollInterval,
		notifier:     NewNotifier(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notifier exposes the client's notification center.
func (c *Client) Notifier() *Notifier { return c.notifier }

// Login signs in and stores the bearer token for subsequent actions.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/sign-in", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sign-in failed: %s", resp.Status)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}

	c.mu.Lock()
	c.token = out.Token
	c.mu.Unlock()
	return nil
}

// Run polls until ctx is canceled. There is no retry/backoff policy: a
// failed poll marks the connection alert and the next tick tries again.
func (c *Client) Run(ctx context.Context) {
	c.Refresh(ctx)

	t := time.NewTicker(c.pollInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Refresh(ctx)
		}
	}
}

// Refresh performs one poll cycle: status always, history while running.
func (c *Client) Refresh(ctx context.Context) {
	var st models.SystemStatus
	if err := c.getJSON(ctx, "/status", &st); err != nil {
		c.markDisconnected()
		return
	}
	c.applyStatus(st)

	if st.IsRunning {
		var history []models.Reading
		if err := c.getJSON(ctx, "/data/historical", &history); err == nil {
			c.mu.Lock()
			c.history = history
			c.mu.Unlock()
		}
	}
}

// Snapshot returns a copy of the cached state.
func (c *Client) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	alerts := make([]models.Alert, 0, len(c.status.Alerts)+1)
	alerts = append(alerts, c.status.Alerts...)
	if c.connAlert != nil {
		alerts = append(alerts, *c.connAlert)
	}

	history := make([]models.Reading, len(c.history))
	copy(history, c.history)

	return Snapshot{Status: c.status, History: history, Alerts: alerts}
}

// ----------- Control actions -----------

func (c *Client) Start(ctx context.Context) error {
	return c.action(ctx, "/api/v1/simulation/start")
}

func (c *Client) Stop(ctx context.Context) error {
	return c.action(ctx, "/api/v1/simulation/stop")
}

func (c *Client) Reset(ctx context.Context) error {
	return c.action(ctx, "/api/v1/simulation/reset")
}

func (c *Client) InjectFault(ctx context.Context, faultType string) error {
	return c.action(ctx, "/api/v1/faults/inject/"+faultType)
}

func (c *Client) Train(ctx context.Context) error {
	return c.action(ctx, "/api/v1/ml/train")
}

// action POSTs to an authenticated endpoint and schedules an optimistic
// status refetch shortly after.
func (c *Client) action(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: %s: %s", path, resp.Status, strings.TrimSpace(string(msg)))
	}

	time.AfterFunc(refetchDelay, func() {
		c.Refresh(context.Background())
	})
	return nil
}

// ----------- internals -----------

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

// markDisconnected synthesizes a single local connection-error alert,
// deduplicated by the conn- id prefix.
func (c *Client) markDisconnected() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connAlert != nil {
		return
	}
	c.connAlert = &models.Alert{
		ID:        connAlertPrefix + uuid.NewString(),
		Type:      models.AlertError,
		Message:   "Unable to reach hydraulic backend - data may be stale",
		Timestamp: time.Now().UnixMilli(),
	}
	c.notifier.Push(models.AlertError, "Connection lost", "Unable to reach hydraulic backend", false)
}

// applyStatus stores the fresh status, clears any connection alert and
// raises notifications on health, run-state and risk transitions.
func (c *Client) applyStatus(st models.SystemStatus) {
	c.mu.Lock()
	prev := c.status
	seen := c.seenFirst
	prevRisk := c.lastRisk
	c.status = st
	c.connAlert = nil
	c.seenFirst = true
	if st.MLPrediction != nil {
		c.lastRisk = st.MLPrediction.RiskLevel
	}
	c.mu.Unlock()

	if !seen {
		return
	}

	if st.Health != prev.Health {
		c.notifier.Push(healthAlertType(st.Health), "System health: "+string(st.Health),
			healthMessage(st.Health), st.Health == models.HealthFault)
	}
	if st.IsRunning != prev.IsRunning {
		if st.IsRunning {
			c.notifier.Push(models.AlertInfo, "Simulation started", "Live data generation is active", false)
		} else {
			c.notifier.Push(models.AlertInfo, "Simulation stopped", "Data generation paused", false)
		}
	}
	if st.MLPrediction != nil && st.MLPrediction.RiskLevel != prevRisk && prevRisk != "" {
		c.notifier.Push(models.AlertWarning, "Failure risk: "+st.MLPrediction.RiskLevel,
			st.MLPrediction.TrendAnalysis, false)
	}
}

func healthAlertType(h models.Health) string {
	switch h {
	case models.HealthFault:
		return models.AlertError
	case models.HealthWarning:
		return models.AlertWarning
	default:
		return models.AlertInfo
	}
}

func healthMessage(h models.Health) string {
	switch h {
	case models.HealthFault:
		return "System fault detected - check sensor readings"
	case models.HealthWarning:
		return "System parameters show unusual patterns"
	default:
		return "System returned to normal operation"
	}
}
