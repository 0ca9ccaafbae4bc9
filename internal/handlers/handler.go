package handlers

import (
	"telemetry_monitor/internal/logger"
	"telemetry_monitor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services, logging and metrics.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	registry *prometheus.Registry
	metrics  *metrics
}

// NewHandler constructs a new HTTP handler with dependencies. A nil log
// discards output.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	h := &Handler{
		services: services,
		log:      log,
		registry: prometheus.NewRegistry(),
	}
	h.metrics = newMetrics(h.registry, h.errorBufferSize)
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})))

	router.GET("/", h.index)
	router.GET("/health", h.health)

	h.registerTelemetryRoutes(router)
	h.registerErrorRoutes(router)

	// live error buffer size over WebSocket, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerTelemetryRoutes(r *gin.Engine) {
	// Body example: {"data":"365951380:1640995229697:'Temperature':98.48"}
	r.POST("/temp", h.postTemp)
}

func (h *Handler) registerErrorRoutes(r *gin.Engine) {
	errs := r.Group("/errors")
	{
		errs.GET("", h.getErrors)
		errs.DELETE("", h.deleteErrors)
	}
}
