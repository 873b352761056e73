package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"hydraulic_dashboard/internal/models"
	"hydraulic_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Tokens accepted by mockAuth, mapped to roles.
var mockTokenRoles = map[string]string{
	"admin-token":    models.RoleAdmin,
	"operator-token": models.RoleOperator,
	"viewer-token":   models.RoleViewer,
}

type mockAuth struct {
	signUpID   int
	signUpErr  error
	token      string
	tokenErr   error
	lastSignUp [3]string
}

func (m *mockAuth) SignUp(username, email, password string) (int, error) {
	m.lastSignUp = [3]string{username, email, password}
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	if m.tokenErr != nil {
		return "", m.tokenErr
	}
	return m.token, nil
}

func (m *mockAuth) ParseToken(accessToken string) (int, string, error) {
	role, ok := mockTokenRoles[accessToken]
	if !ok {
		return 0, "", errors.New("invalid token")
	}
	return 1, role, nil
}

func (m *mockAuth) SeedDemoUsers() error { return nil }

type mockSimulation struct {
	started, stopped, reset bool
	injected                []string
	injectErr               error
}

func (m *mockSimulation) Start(context.Context) error { m.started = true; return nil }
func (m *mockSimulation) Stop(context.Context) error  { m.stopped = true; return nil }
func (m *mockSimulation) Reset(context.Context) error { m.reset = true; return nil }

func (m *mockSimulation) InjectFault(_ context.Context, faultType string) error {
	if m.injectErr != nil {
		return m.injectErr
	}
	m.injected = append(m.injected, faultType)
	return nil
}

type mockMonitoring struct {
	status     models.SystemStatus
	statusErr  error
	current    models.Reading
	currentErr error
	history    []models.Reading
	lastLimit  int
	export     []byte
	exportCT   string
	exportErr  error
}

func (m *mockMonitoring) Status(context.Context) (models.SystemStatus, error) {
	return m.status, m.statusErr
}

func (m *mockMonitoring) Current(context.Context) (models.Reading, error) {
	return m.current, m.currentErr
}

func (m *mockMonitoring) History(_ context.Context, n int) ([]models.Reading, error) {
	m.lastLimit = n
	return m.history, nil
}

func (m *mockMonitoring) ExportHistory(context.Context, string) ([]byte, string, error) {
	return m.export, m.exportCT, m.exportErr
}

type mockPrediction struct {
	trainN    int
	trainErr  error
	latest    models.MLPrediction
	latestErr error
}

func (m *mockPrediction) Train(context.Context) (int, error) { return m.trainN, m.trainErr }

func (m *mockPrediction) Latest(context.Context) (models.MLPrediction, error) {
	return m.latest, m.latestErr
}

type mockServiceLogs struct {
	entries   []models.ServiceLogEntry
	total     int
	lastQuery service.LogQuery
	err       error
}

func (m *mockServiceLogs) List(_ context.Context, q service.LogQuery) ([]models.ServiceLogEntry, int, error) {
	m.lastQuery = q
	return m.entries, m.total, m.err
}

type mockMaintenance struct {
	records   []models.MaintenanceRecord
	total     int
	lastQuery service.MaintenanceQuery
	createID  string
	createErr error
	created   []models.MaintenanceRecord
}

func (m *mockMaintenance) List(_ context.Context, q service.MaintenanceQuery) ([]models.MaintenanceRecord, int, error) {
	m.lastQuery = q
	return m.records, m.total, nil
}

func (m *mockMaintenance) Create(_ context.Context, r models.MaintenanceRecord) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.created = append(m.created, r)
	return m.createID, nil
}

// mocks bundles every sub-service mock behind one fixture.
type mocks struct {
	auth  *mockAuth
	sim   *mockSimulation
	mon   *mockMonitoring
	pred  *mockPrediction
	logs  *mockServiceLogs
	maint *mockMaintenance
}

func newTestRouter() (*gin.Engine, *mocks) {
	m := &mocks{
		auth:  &mockAuth{},
		sim:   &mockSimulation{},
		mon:   &mockMonitoring{},
		pred:  &mockPrediction{},
		logs:  &mockServiceLogs{},
		maint: &mockMaintenance{},
	}
	svc := &service.Service{
		Authorization: m.auth,
		Simulation:    m.sim,
		Monitoring:    m.mon,
		Prediction:    m.pred,
		ServiceLogs:   m.logs,
		Maintenance:   m.maint,
	}
	h := NewHandler(svc, nil)
	return h.InitRoutes(), m
}

func doRequest(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
