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
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	assetapp "github.com/kioskcrm/backend/internal/application/asset"
	eventapp "github.com/kioskcrm/backend/internal/application/event"
	geoapp "github.com/kioskcrm/backend/internal/application/geo"
	identityapp "github.com/kioskcrm/backend/internal/application/identity"
	importapp "github.com/kioskcrm/backend/internal/application/import"
	marketingapp "github.com/kioskcrm/backend/internal/application/marketing"
	orgapp "github.com/kioskcrm/backend/internal/application/organization"
	partnerapp "github.com/kioskcrm/backend/internal/application/partner"
	reminderapp "github.com/kioskcrm/backend/internal/application/reminder"
	workflowapp "github.com/kioskcrm/backend/internal/application/workflow"
	"github.com/kioskcrm/backend/internal/infrastructure/auth"
	"github.com/kioskcrm/backend/internal/infrastructure/cache"
	"github.com/kioskcrm/backend/internal/infrastructure/config"
	"github.com/kioskcrm/backend/internal/infrastructure/event"
	"github.com/kioskcrm/backend/internal/infrastructure/integration"
	"github.com/kioskcrm/backend/internal/infrastructure/logger"
	"github.com/kioskcrm/backend/internal/infrastructure/persistence"
	"github.com/kioskcrm/backend/internal/infrastructure/printing"
	"github.com/kioskcrm/backend/internal/infrastructure/scheduler"
	"github.com/kioskcrm/backend/internal/infrastructure/storage"
	"github.com/kioskcrm/backend/internal/infrastructure/telemetry"
	"github.com/kioskcrm/backend/internal/interfaces/http/handler"
	"github.com/kioskcrm/backend/internal/interfaces/http/middleware"
	"github.com/kioskcrm/backend/internal/interfaces/http/router"

	_ "github.com/kioskcrm/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const version = "1.0.0"

//	@title			Kiosk CRM API
//	@version		1.0
//	@description	Multi-tenant kiosk asset management and sales CRM
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

//	@securityDefinitions.apikey	CronSecret
//	@in							header
//	@name						Authorization
//	@description				Scheduler secret. Format: "Bearer {secret}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer shutdown(log, "tracer provider", tracerProvider.Shutdown)

	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer shutdown(log, "meter provider", meterProvider.Shutdown)

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	defer shutdown(log, "logger provider", loggerProvider.Shutdown)
	if loggerProvider.IsEnabled() {
		level := logger.ParseLevel(cfg.Log.Level)
		log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, loggerProvider.ZapCore(level))
		}))
	}

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to link spans to profiles", zap.Error(err))
		}
	}

	var businessMetrics *telemetry.BusinessMetrics
	if meterProvider.IsEnabled() {
		businessMetrics, err = telemetry.NewBusinessMetrics(meterProvider.Meter("kiosk-crm"))
		if err != nil {
			log.Warn("Business metrics disabled", zap.Error(err))
		}
	}

	log.Info("Starting Kiosk CRM backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.NewDBTracingPlugin(cfg.Telemetry, log).Register(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Redis backs the catalog cache and the token blacklist
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis", zap.Error(err))
			}
		}()
	}

	triggerConfig, err := scheduler.CronTriggerConfigFrom(cfg.Scheduler)
	if err != nil {
		log.Fatal("Invalid scheduler configuration", zap.Error(err))
	}
	loc := triggerConfig.Location

	// Repositories
	regionRepo := persistence.NewGormRegionRepository(db.DB)
	areaRepo := persistence.NewGormAreaRepository(db.DB)
	fcRepo := persistence.NewGormFCRepository(db.DB)
	corpRepo := persistence.NewGormCorporationRepository(db.DB)
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	pricingRepo := persistence.NewGormPricingRepository(db.DB)
	kioskRepo := persistence.NewGormKioskRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	processRepo := persistence.NewGormProcessRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryRequestRepository(db.DB)
	campaignRepo := persistence.NewGormCampaignRepository(db.DB)
	leadRepo := persistence.NewGormLeadRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Domain events
	eventBus := event.NewInMemoryEventBus(log)
	if cfg.Kafka.Enabled {
		writer, err := event.NewKafkaWriter(cfg.Kafka)
		if err != nil {
			log.Fatal("Invalid kafka configuration", zap.Error(err))
		}
		forwarder := event.NewKafkaForwarder(writer, "", log)
		defer func() {
			if err := forwarder.Close(); err != nil {
				log.Error("Error closing kafka writer", zap.Error(err))
			}
		}()
		eventBus.Subscribe(forwarder)
		log.Info("Forwarding domain events to kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic))
	}
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer shutdown(log, "event bus", eventBus.Stop)
	events := eventapp.NewDispatcher(eventBus, log)

	// Integrations
	geoOpts := []geoapp.GeoServiceOption{
		geoapp.WithMetrics(businessMetrics),
		geoapp.WithLogger(log),
		geoapp.WithTransactionScope(persistence.NewGormGeoTransactionScope(db.DB)),
	}
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if redisClient != nil {
		geoOpts = append(geoOpts, geoapp.WithCatalogCache(cache.NewRedisCatalogCache(redisClient, cfg.Geo.CatalogCacheTTL)))
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}

	var (
		pipedriveOrgs  partnerapp.PipedriveOrganizations
		pipedriveDeals marketingapp.PipedriveDeals
	)
	if cfg.Pipedrive.Enabled {
		client, err := integration.NewPipedriveClient(cfg.Pipedrive)
		if err != nil {
			log.Fatal("Invalid pipedrive configuration", zap.Error(err))
		}
		pipedriveOrgs, pipedriveDeals = client, client
	}

	var quotationPrinter workflowapp.QuotationPrinter
	if cfg.Printing.Enabled {
		renderer := printing.NewChromedpRenderer(cfg.Printing, log)
		defer func() {
			if err := renderer.Close(); err != nil {
				log.Error("Error closing PDF renderer", zap.Error(err))
			}
		}()
		quotationPrinter = printing.NewQuotationPrinter(renderer)
	}

	var exportStore importapp.ObjectStore
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3ExportStorage(ctx, cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize export storage", zap.Error(err))
		}
		exportStore = s3Store
	}

	slack, mailer, topic := reminderChannels(ctx, cfg, log)

	// Application services
	geoService := geoapp.NewGeoService(regionRepo, areaRepo, geoOpts...)
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userRepo, jwtService, blacklist, log)
	fcService := orgapp.NewFCService(fcRepo, corpRepo, branchRepo, events)
	corporationService := orgapp.NewCorporationService(corpRepo, fcRepo, branchRepo, events)
	branchService := orgapp.NewBranchService(branchRepo, corpRepo, geoService, events)
	partnerService := partnerapp.NewPartnerService(partnerRepo, geoService, pipedriveOrgs, events, log)
	pricingService := partnerapp.NewPricingService(pricingRepo, partnerRepo, loc)
	kioskService := assetapp.NewKioskService(assetapp.KioskServiceDeps{
		KioskRepo:    kioskRepo,
		ContractRepo: contractRepo,
		BranchRepo:   branchRepo,
		PartnerRepo:  partnerRepo,
		Geo:          geoService,
		TxScope:      persistence.NewGormKioskTransactionScope(db.DB),
		Events:       events,
		Metrics:      businessMetrics,
		Location:     loc,
	})
	orderService := workflowapp.NewOrderService(workflowapp.OrderServiceDeps{
		OrderRepo:   orderRepo,
		PartnerRepo: partnerRepo,
		BranchRepo:  branchRepo,
		KioskRepo:   kioskRepo,
		Printer:     quotationPrinter,
		Issuer:      cfg.App.Name,
		Events:      events,
		Logger:      log,
		Location:    loc,
	})
	processService := workflowapp.NewProcessService(processRepo, orderRepo, userRepo, loc)
	deliveryService := workflowapp.NewDeliveryService(deliveryRepo, orderRepo, loc)
	campaignService := marketingapp.NewCampaignService(campaignRepo, leadRepo, loc)
	leadService := marketingapp.NewLeadService(marketingapp.LeadServiceDeps{
		LeadRepo:     leadRepo,
		CampaignRepo: campaignRepo,
		PartnerRepo:  partnerRepo,
		Locator:      geoService,
		TxScope:      persistence.NewGormLeadTransactionScope(db.DB),
		Pipedrive:    pipedriveDeals,
		Events:       events,
		Logger:       log,
	})
	kioskImportService := importapp.NewKioskImportService(kioskRepo, partnerRepo, geoService, events, businessMetrics, log, loc)
	partnerImportService := importapp.NewPartnerImportService(partnerRepo, geoService, events, businessMetrics, log)
	exportService := importapp.NewExportService(importapp.ExportServiceDeps{
		KioskRepo:   kioskRepo,
		PartnerRepo: partnerRepo,
		BranchRepo:  branchRepo,
		LeadRepo:    leadRepo,
		Geo:         geoService,
		Store:       exportStore,
		Location:    loc,
		Logger:      log,
	})
	reminderService := reminderapp.NewReminderService(reminderapp.ReminderServiceDeps{
		ProcessRepo:  processRepo,
		DeliveryRepo: deliveryRepo,
		KioskRepo:    kioskRepo,
		UserRepo:     userRepo,
		Geo:          geoService,
		Slack:        slack,
		Mailer:       mailer,
		Topic:        topic,
		DefaultTo:    cfg.Mail.DefaultTo,
		Window:       cfg.Reminder.Window,
		Location:     loc,
		Metrics:      businessMetrics,
		Logger:       log,
	})

	if cfg.Scheduler.Enabled {
		trigger := scheduler.NewCronTrigger(triggerConfig, scheduler.JobFunc{
			JobName: "reminders",
			Fn: func(ctx context.Context) error {
				result, err := reminderService.Run(ctx)
				if err != nil {
					return err
				}
				log.Info("Reminder run finished",
					zap.Int("scanned", result.Scanned),
					zap.Int("notified", result.Notified),
					zap.Int("failed", result.Failed))
				return nil
			},
		}, log)
		if err := trigger.Start(ctx); err != nil {
			log.Fatal("Failed to start reminder trigger", zap.Error(err))
		}
		defer shutdown(log, "reminder trigger", trigger.Stop)
		log.Info("Reminder trigger started",
			zap.Int("hour", triggerConfig.Hour),
			zap.Int("minute", triggerConfig.Minute),
			zap.String("timezone", loc.String()))
	}

	// HTTP
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecureWithConfig(middleware.SecurityConfigFor(cfg.App)))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize, cfg.HTTP.MaxUploadSize))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.SpanErrorMarker())
	if meterProvider.IsEnabled() {
		engine.Use(middleware.HTTPMetrics(meterProvider.Meter("http.server")))
	}

	sessions := auth.NewSessionManager(cfg.Session)
	authMiddleware := middleware.Auth(middleware.AuthConfig{
		Tokens:   authService,
		Sessions: sessions,
		Logger:   log,
	})

	healthChecks := map[string]handler.HealthCheck{"database": db.Ping}
	if redisClient != nil {
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, healthChecks)

	engine.GET("/health", systemHandler.Health)
	if cfg.Telemetry.PrometheusEnabled {
		if h := meterProvider.Handler(); h != nil {
			engine.GET("/metrics", gin.WrapH(h))
		}
	}
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, authMiddleware),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	guards := router.Guards{
		Authenticated: []gin.HandlerFunc{
			authMiddleware,
			middleware.TracingAttributes(),
			middleware.Profiling(middleware.DefaultProfilingConfig(profiler.IsEnabled())),
		},
		Cron: middleware.CronSecret(cfg.Cron.Secret),
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		loginLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer loginLimiter.Stop()
		guards.LoginLimit = middleware.RateLimit(loginLimiter)
		log.Info("Login rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow))
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.RegisterAPI(r, router.Handlers{
		System:      systemHandler,
		Auth:        handler.NewAuthHandler(authService, sessions),
		User:        handler.NewUserHandler(userService),
		Geo:         handler.NewGeoHandler(geoService),
		FC:          handler.NewFCHandler(fcService),
		Corporation: handler.NewCorporationHandler(corporationService),
		Branch:      handler.NewBranchHandler(branchService),
		Partner:     handler.NewPartnerHandler(partnerService, pricingService),
		Kiosk:       handler.NewKioskHandler(kioskService),
		Order:       handler.NewOrderHandler(orderService),
		Process:     handler.NewProcessHandler(processService),
		Delivery:    handler.NewDeliveryHandler(deliveryService),
		Campaign:    handler.NewCampaignHandler(campaignService),
		Lead:        handler.NewLeadHandler(leadService),
		Transfer:    handler.NewTransferHandler(kioskImportService, partnerImportService, exportService),
		Cron:        handler.NewCronHandler(reminderService),
	}, guards)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// reminderChannels builds the optional notification channels. A channel
// that fails to initialize is left out and logged.
func reminderChannels(ctx context.Context, cfg *config.Config, log *zap.Logger) (
	slack reminderapp.SlackPoster, mailer reminderapp.Mailer, topic reminderapp.TopicPublisher,
) {
	if cfg.Slack.Enabled {
		client, err := integration.NewSlackClient(cfg.Slack)
		if err != nil {
			log.Warn("Slack reminders disabled", zap.Error(err))
		} else {
			slack = client
		}
	}
	if cfg.Mail.Enabled {
		awsCfg, err := integration.LoadAWSConfig(ctx, cfg.Mail.Region)
		if err == nil {
			var m *integration.SESMailer
			if m, err = integration.NewSESMailer(awsCfg, cfg.Mail.From); err == nil {
				mailer = m
			}
		}
		if err != nil {
			log.Warn("Mail reminders disabled", zap.Error(err))
		}
	}
	if cfg.Notify.Enabled {
		awsCfg, err := integration.LoadAWSConfig(ctx, cfg.Notify.Region)
		if err == nil {
			var p *integration.SNSPublisher
			if p, err = integration.NewSNSPublisher(awsCfg, cfg.Notify.TopicARN); err == nil {
				topic = p
			}
		}
		if err != nil {
			log.Warn("SNS reminders disabled", zap.Error(err))
		}
	}
	return slack, mailer, topic
}

func shutdown(log *zap.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Error("Error stopping "+name, zap.Error(err))
	}
}
