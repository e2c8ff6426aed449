package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MrsLondon/vivahub-api/internal/handler"
	authHandler "github.com/MrsLondon/vivahub-api/internal/handler/auth"
	bookingHandler "github.com/MrsLondon/vivahub-api/internal/handler/booking"
	cartHandler "github.com/MrsLondon/vivahub-api/internal/handler/cart"
	catalogHandler "github.com/MrsLondon/vivahub-api/internal/handler/catalog"
	reviewHandler "github.com/MrsLondon/vivahub-api/internal/handler/review"
	salonHandler "github.com/MrsLondon/vivahub-api/internal/handler/salon"
	"github.com/MrsLondon/vivahub-api/internal/middleware"
	"github.com/MrsLondon/vivahub-api/internal/model"
)

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	h        *handler.Handler
	authH    *authHandler.Handler
	salonH   *salonHandler.Handler
	catalogH *catalogHandler.Handler
	bookingH *bookingHandler.Handler
	cartH    *cartHandler.Handler
	reviewH  *reviewHandler.Handler
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int
	RequestTimeout   time.Duration
	CORSConfig       middleware.CORSConfig
	MetricsPrefix    string
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	h *handler.Handler,
	authH *authHandler.Handler,
	salonH *salonHandler.Handler,
	catalogH *catalogHandler.Handler,
	bookingH *bookingHandler.Handler,
	cartH *cartHandler.Handler,
	reviewH *reviewHandler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	middleware.RegisterValidators()

	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     auth,
		h:        h,
		authH:    authH,
		salonH:   salonH,
		catalogH: catalogH,
		bookingH: bookingH,
		cartH:    cartH,
		reviewH:  reviewH,
		metrics:  initRouterMetrics(config.MetricsPrefix),
	}

	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = middleware.DefaultTimeoutConfig().Duration
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: timeout}),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	if config.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RPS:   config.RateLimitRPS,
			Burst: config.RateLimitBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)
	r.setupPublicRoutes(api)

	// Checkout sits behind optional auth: anonymous callers are answered
	// with a login redirect rather than a flat 401.
	optional := api.Group("")
	optional.Use(r.auth.OptionalAuthenticate())
	r.cartH.RegisterCheckoutRoute(optional)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.setupProtectedRoutes(protected)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("", r.h.HealthCheck)
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
	}
	rg.GET("/metrics", r.h.MetricsHandler)
}

func (r *Router) setupPublicRoutes(rg *gin.RouterGroup) {
	r.authH.RegisterRoutes(rg)

	// The browse and search surface is cacheable and open to everyone.
	public := rg.Group("")
	public.Use(middleware.Cache(middleware.PublicCacheConfig()))
	r.salonH.RegisterRoutes(public)
	r.catalogH.RegisterRoutes(public)
	r.bookingH.RegisterRoutes(public)
	r.reviewH.RegisterRoutes(public)
}

func (r *Router) setupProtectedRoutes(rg *gin.RouterGroup) {
	r.authH.RegisterProtectedRoutes(rg)
	r.cartH.RegisterRoutes(rg)

	customers := rg.Group("")
	customers.Use(r.auth.RequireRole(model.UserRoleCustomer))
	r.bookingH.RegisterCustomerRoutes(customers)
	r.reviewH.RegisterCustomerRoutes(customers)

	owners := rg.Group("")
	owners.Use(r.auth.RequireRole(model.UserRoleBusiness))
	r.salonH.RegisterOwnerRoutes(owners)
	r.catalogH.RegisterOwnerRoutes(owners)
	r.bookingH.RegisterOwnerRoutes(owners)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
