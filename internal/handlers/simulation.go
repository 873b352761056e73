package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hydraulic_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusStarted = "started"
	statusStopped = "stopped"
	statusReset   = "reset"

	errStartSimulation = "failed to start simulation"
	errStopSimulation  = "failed to stop simulation"
	errResetSimulation = "failed to reset simulation"
	errGetStatus       = "failed to load status"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status label plus the fresh system status (best-effort).
func (h *Handler) respondWithStatus(c *gin.Context, status string, extra gin.H) {
	ctx := c.Request.Context()
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	if st, err := h.services.Monitoring.Status(ctx); err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      System status
// @Description  Health, run flag, current reading, last five alerts and the latest ML prediction
// @Tags         monitoring
// @Produce      json
// @Success      200  {object}  models.SystemStatus
// @Failure      500  {object}  map[string]string
// @Router       /status [get]
func (h *Handler) getStatus(c *gin.Context) {
	st, err := h.services.Monitoring.Status(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetStatus, "status_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Current reading
// @Tags         monitoring
// @Produce      json
// @Success      200  {object}  models.Reading
// @Failure      404  {object}  map[string]string
// @Router       /data/current [get]
func (h *Handler) getCurrentData(c *gin.Context) {
	r, err := h.services.Monitoring.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load current data", "current_data_failed", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// @Summary      Historical readings
// @Tags         monitoring
// @Produce      json
// @Param        limit  query  int  false  "Max points to return (default 50)"
// @Success      200  {array}  models.Reading
// @Router       /data/historical [get]
func (h *Handler) getHistoricalData(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	readings, err := h.services.Monitoring.History(c.Request.Context(), limit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load history", "history_failed", err)
		return
	}
	c.JSON(http.StatusOK, readings)
}

// @Summary      Start simulation
// @Tags         simulation
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/simulation/start [post]
// @Security     BearerAuth
func (h *Handler) startSimulation(c *gin.Context) {
	if err := h.services.Simulation.Start(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errStartSimulation, "simulation_start_failed", err)
		return
	}
	h.respondWithStatus(c, statusStarted, gin.H{})
}

// @Summary      Stop simulation
// @Tags         simulation
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/simulation/stop [post]
// @Security     BearerAuth
func (h *Handler) stopSimulation(c *gin.Context) {
	if err := h.services.Simulation.Stop(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errStopSimulation, "simulation_stop_failed", err)
		return
	}
	h.respondWithStatus(c, statusStopped, gin.H{})
}

// @Summary      Reset simulation
// @Description  Clears fault, history, alerts and prediction
// @Tags         simulation
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/simulation/reset [post]
// @Security     BearerAuth
func (h *Handler) resetSimulation(c *gin.Context) {
	if err := h.services.Simulation.Reset(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errResetSimulation, "simulation_reset_failed", err)
		return
	}
	h.respondWithStatus(c, statusReset, gin.H{})
}

// @Summary      Inject fault
// @Description  Valid types: pressure_drop, temperature_spike, flow_disruption, random_noise
// @Tags         simulation
// @Produce      json
// @Param        type  path  string  true  "Fault type"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string  "simulation stopped"
// @Router       /api/v1/faults/inject/{type} [post]
// @Security     BearerAuth
func (h *Handler) injectFault(c *gin.Context) {
	faultType := c.Param("type")
	err := h.services.Simulation.InjectFault(c.Request.Context(), faultType)
	switch {
	case err == nil:
		h.respondWithStatus(c, "fault_injected", gin.H{"fault_type": faultType})
	case errors.Is(err, service.ErrInvalidFaultType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSimulationStopped):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to inject fault", "fault_inject_failed", err, "type", faultType)
	}
}

// @Summary      Export history
// @Description  Exports the in-memory reading buffer as CSV (default) or JSON
// @Tags         monitoring
// @Produce      json
// @Param        format  query  string  false  "csv | json"  Enums(csv,json)
// @Success      200  {string}  string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/export [get]
// @Security     BearerAuth
func (h *Handler) exportHistory(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	payload, contentType, err := h.services.Monitoring.ExportHistory(c.Request.Context(), format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="hydraulic-history.`+format+`"`)
	c.Data(http.StatusOK, contentType, payload)
}
