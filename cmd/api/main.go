package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/application/service"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/config"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/pricing"
	domainRepo "github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/repository"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/infrastructure/crm"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/infrastructure/database"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/infrastructure/repository"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/infrastructure/webhook"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/handler"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/routes"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/logger"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/utils"
)

func main() {
	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()
	log := logger.L()

	// Load configuration
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	pricingCfg := cfg.Pricing.ToDomain()
	if problems := pricing.ValidateConfig(pricingCfg); len(problems) > 0 {
		log.Fatal("Invalid pricing configuration", zap.Strings("errors", problems))
	}

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	if err := database.SeedCatalog(db); err != nil {
		log.Warn("Failed to seed service catalog", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	clientRepo := repository.NewClientRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	eventRepo := repository.NewEventLogRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	purgeCtx, stopPurge := context.WithCancel(context.Background())
	defer stopPurge()
	go purgeExpiredKeys(purgeCtx, idempotencyRepo, time.Hour)

	// Integrations stay nil interfaces when not configured
	var crmGateway service.CRMGateway
	if cfg.CRM.Enabled() {
		crmGateway = crm.NewClient(crm.Config{
			BaseURL:      cfg.CRM.BaseURL,
			APIKey:       cfg.CRM.APIKey,
			ClientID:     cfg.CRM.ClientID,
			ClientSecret: cfg.CRM.ClientSecret,
			TokenURL:     cfg.CRM.TokenURL,
			LocationID:   cfg.CRM.LocationID,
			Timeout:      cfg.CRM.Timeout,
		})
	} else {
		log.Warn("CRM integration disabled; client notifications and payment links are skipped")
	}

	var statusWebhook service.StatusWebhook
	if cfg.Webhook.OrderStatusURL != "" {
		statusWebhook = webhook.NewEmitter(cfg.Webhook.OrderStatusURL, cfg.Webhook.Secret, cfg.Webhook.Timeout)
	}

	// Initialize services
	clientService := service.NewClientService(clientRepo, crmGateway)
	taskService := service.NewTaskService(taskRepo)
	paymentService := service.NewPaymentService(orderRepo, eventRepo, clientService, crmGateway, cfg.Payments.DepositPercent)
	orderService := service.NewOrderService(orderRepo, catalogRepo, eventRepo, clientService, pricingCfg, cfg.Payments.DepositPercent)
	stageService := service.NewStageService(service.StageServiceDeps{
		OrderRepo: orderRepo,
		EventRepo: eventRepo,
		Tasks:     taskService,
		Payments:  paymentService,
		Contacts:  clientService,
		CRM:       crmGateway,
		Webhook:   statusWebhook,
		ReadyTag:  cfg.CRM.ReadyTag,
	})

	handlers := &routes.Handlers{
		Stage:   handler.NewStageHandler(stageService),
		Order:   handler.NewOrderHandler(orderService, paymentService),
		Pricing: handler.NewPricingHandler(orderService),
		Client:  handler.NewClientHandler(clientService),
		Task:    handler.NewTaskHandler(taskService),
		Payment: handler.NewPaymentHandler(paymentService),
	}

	rateLimiter := routes.NewRateLimiter(cfg.RateLimit)
	defer rateLimiter.Stop()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting server", zap.String("name", cfg.App.Name), zap.String("port", port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// purgeExpiredKeys deletes stale idempotency keys until ctx is cancelled
func purgeExpiredKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				logger.L().Warn("Failed to purge idempotency keys", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}
