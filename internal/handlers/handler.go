package handlers

import (
	"hydraulic_dashboard/internal/logger"
	"hydraulic_dashboard/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public read-only endpoints: the dashboard polls these once a second
	// without credentials.
	router.GET("/health", h.health)
	router.GET("/status", h.getStatus)
	router.GET("/data/current", h.getCurrentData)
	router.GET("/data/historical", h.getHistoricalData)
	router.GET("/ml/prediction", h.getPrediction)

	// Live streams on the same port.
	router.GET("/stream", h.streamStatus)
	router.GET("/ws", h.wsConnect)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.authMiddleware)
	{
		sim := api.Group("/simulation", h.requirePermission(service.PermControlSimulation))
		{
			sim.POST("/start", h.startSimulation)
			sim.POST("/stop", h.stopSimulation)
			sim.POST("/reset", h.resetSimulation)
		}

		api.POST("/faults/inject/:type", h.requirePermission(service.PermInjectFaults), h.injectFault)
		api.POST("/ml/train", h.requirePermission(service.PermTrainModel), h.trainModel)

		api.GET("/service-logs", h.requirePermission(service.PermViewLogs), h.getServiceLogs)
		api.GET("/maintenance-records", h.requirePermission(service.PermViewLogs), h.listMaintenanceRecords)
		api.POST("/maintenance-records", h.requirePermission(service.PermManageMaintenance), h.createMaintenanceRecord)

		api.GET("/export", h.requirePermission(service.PermExportData), h.exportHistory)
	}
}
