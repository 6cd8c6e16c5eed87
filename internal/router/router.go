package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/salestrack-api/internal/handler"
	"github.com/jwalitptl/salestrack-api/internal/middleware"
)

// Handler registers a resource's routes on an API group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type RouterConfig struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	CORSConfig       middleware.CORSConfig
	MetricsPrefix    string
}

type Router struct {
	engine   *gin.Engine
	h        *handler.Handler
	handlers []Handler
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func NewRouter(h *handler.Handler, config RouterConfig, handlers ...Handler) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	metrics := initRouterMetrics(config.MetricsPrefix)

	r := &Router{
		engine:   engine,
		h:        h,
		handlers: handlers,
		metrics:  metrics,
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
	)
	engine.Use(middleware.CORS(config.CORSConfig))

	if config.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	r.setupHealthCheck()

	api := r.engine.Group("/api/v1")
	for _, h := range r.handlers {
		h.RegisterRoutes(api)
	}
}

func (r *Router) setupHealthCheck() {
	health := r.engine.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
	}
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		errorTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "http_errors_total",
			Help:      "Total HTTP error responses",
		}, []string{"method", "path", "status"}),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(method, path, status).Inc()
		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(method, path, status).Inc()
		}
	}
}
