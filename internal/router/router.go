package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
)

// Handler registers its routes on a router group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit    middleware.RateLimiterConfig
	CORS         middleware.CORSConfig
	MetricsPath  string
	DoctorMaxAge int
}

func DefaultConfig() Config {
	return Config{
		RateLimit:    middleware.DefaultRateLimiterConfig(),
		CORS:         middleware.DefaultCORSConfig(),
		MetricsPath:  "/metrics",
		DoctorMaxAge: 3600,
	}
}

type Router struct {
	engine  *gin.Engine
	config  Config
	metrics *routerMetrics
}

type routerMetrics struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func New(config Config, patientH, doctorH, appointmentH, healthH Handler) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:  engine,
		config:  config,
		metrics: initRouterMetrics(),
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		r.metricsMiddleware(),
		middleware.CORS(config.CORS),
	)

	if config.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(config.RateLimit)
		engine.Use(rateLimiter.RateLimit())
	}

	api := engine.Group("")
	healthH.RegisterRoutes(api)
	patientH.RegisterRoutes(api)
	appointmentH.RegisterRoutes(api)

	// Doctor data is immutable per process, so let clients cache it.
	doctors := api.Group("", middleware.CacheControl(config.DoctorMaxAge))
	doctorH.RegisterRoutes(doctors)

	engine.GET(config.MetricsPath, gin.WrapH(promhttp.HandlerFor(r.metrics.registry, promhttp.HandlerOpts{})))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httputil.Response{
			Success: false,
			Message: "endpoint not found",
		})
	})

	return r
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics() *routerMetrics {
	registry := prometheus.NewRegistry()
	m := &routerMetrics{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "clinic_api_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clinic_api_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clinic_api_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}

	registry.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
