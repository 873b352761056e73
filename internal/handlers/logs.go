package handlers

import (
	"net/http"
	"strconv"

	"hydraulic_dashboard/internal/models"
	"hydraulic_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// parsePagination reads limit/offset query params with defaults and bounds.
func parsePagination(c *gin.Context, defaultLimit int) (int, int) {
	limit := defaultLimit
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	offset := 0
	if s := c.Query("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

// @Summary      List service logs
// @Description  Newest first; filter by event_type, severity, component
// @Tags         logs
// @Produce      json
// @Param        event_type  query  string  false  "Event type"  Enums(system,maintenance,fault,ml,user_action)
// @Param        severity    query  string  false  "Severity"    Enums(info,warning,error,critical)
// @Param        component   query  string  false  "Component"
// @Param        limit       query  int     false  "Page size (default 100)"
// @Param        offset      query  int     false  "Page offset"
// @Success      200  {object}  map[string]interface{}  "logs, total, limit, offset"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/service-logs [get]
// @Security     BearerAuth
func (h *Handler) getServiceLogs(c *gin.Context) {
	limit, offset := parsePagination(c, 100)
	q := service.LogQuery{
		EventType: c.Query("event_type"),
		Severity:  c.Query("severity"),
		Component: c.Query("component"),
		Limit:     limit,
		Offset:    offset,
	}

	logs, total, err := h.services.ServiceLogs.List(c.Request.Context(), q)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load service logs", "service_logs_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"logs":   logs,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// @Summary      List maintenance records
// @Description  Newest first; filter by maintenance_type, component, status
// @Tags         maintenance
// @Produce      json
// @Param        maintenance_type  query  string  false  "Type"    Enums(preventive,corrective,emergency)
// @Param        component         query  string  false  "Component"
// @Param        status            query  string  false  "Status"  Enums(completed,in_progress,scheduled)
// @Param        limit             query  int     false  "Page size (default 50)"
// @Param        offset            query  int     false  "Page offset"
// @Success      200  {object}  map[string]interface{}  "records, total, limit, offset"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/maintenance-records [get]
// @Security     BearerAuth
func (h *Handler) listMaintenanceRecords(c *gin.Context) {
	limit, offset := parsePagination(c, 50)
	q := service.MaintenanceQuery{
		MaintenanceType: c.Query("maintenance_type"),
		Component:       c.Query("component"),
		Status:          c.Query("status"),
		Limit:           limit,
		Offset:          offset,
	}

	records, total, err := h.services.Maintenance.List(c.Request.Context(), q)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load maintenance records", "maintenance_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// @Summary      Create maintenance record
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        body  body  models.MaintenanceRecord  true  "Record"
// @Success      200  {object}  map[string]string  "message, id"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/maintenance-records [post]
// @Security     BearerAuth
func (h *Handler) createMaintenanceRecord(c *gin.Context) {
	var rec models.MaintenanceRecord
	if ok := h.bindJSONOrBadRequest(c, &rec); !ok {
		return
	}

	id, err := h.services.Maintenance.Create(c.Request.Context(), rec)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Maintenance record created",
		"id":      id,
	})
}
