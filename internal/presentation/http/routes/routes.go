package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/config"
	domainRepo "github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/repository"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/handler"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/middleware"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Stage   *handler.StageHandler
	Order   *handler.OrderHandler
	Pricing *handler.PricingHandler
	Client  *handler.ClientHandler
	Task    *handler.TaskHandler
	Payment *handler.PaymentHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.RateLimiter
}

// NewRateLimiter builds the API rate limiter from configuration
func NewRateLimiter(cfg config.RateLimitConfig) *middleware.RateLimiter {
	duration := cfg.Duration
	if duration <= 0 {
		duration = 60
	}
	return middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.Requests) / float64(duration),
		BurstSize:         cfg.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Provider callbacks authenticate with the shared secret
		webhooks := v1.Group("/webhooks")
		webhooks.Use(deps.RateLimiter.Middleware())
		webhooks.Use(middleware.WebhookSecret(deps.Cfg.Payments.WebhookSecret))
		webhooks.POST("/payments", h.Payment.Webhook)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(deps.RateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Price corrections and the tax configuration are limited to managers
	managers := middleware.RequireRole(utils.RoleOwner, utils.RoleManager)

	// Pricing
	pricing := protected.Group("/pricing")
	{
		pricing.POST("/quote", h.Pricing.Quote)
		pricing.POST("/quote/batch", h.Pricing.QuoteBatch)
		pricing.GET("/config", managers, h.Pricing.Config)
	}

	// Orders
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo:     deps.IdempotencyRepo,
			Required: true,
		}), h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/stage", h.Stage.Transition)
		orders.PATCH("/:id/services/:serviceId/price", managers, h.Order.UpdateServicePrice)
		orders.POST("/:id/checkout", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Checkout)
	}

	// Clients
	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
	}

	// Tasks
	tasks := protected.Group("/tasks")
	{
		tasks.GET("/:id", h.Task.Get)
		tasks.POST("/:id/start", h.Task.Start)
		tasks.POST("/:id/stop", h.Task.Stop)
		tasks.POST("/:id/time", h.Task.AddTime)
		tasks.PATCH("/:id/stage", h.Task.SetStage)
	}
}
