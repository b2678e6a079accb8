package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servicehub/config"
	"servicehub/cron"
	"servicehub/handlers"
	"servicehub/middleware"
	"servicehub/routes"
	"servicehub/services/admin"
	"servicehub/services/auth"
	"servicehub/services/booking"
	"servicehub/services/contact"
	"servicehub/services/listing"
	"servicehub/services/notification"
	"servicehub/services/payment"
	"servicehub/services/provider"
	"servicehub/services/settings"
	"servicehub/services/storage"
	"servicehub/services/tasks"
	"servicehub/services/user"
	"servicehub/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: %v", err)
	}
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx := context.Background()

	repos, mongoClient, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("main: failed to open repositories", zap.Error(err))
	}

	redisClients, err := utils.InitRedis()
	if err != nil {
		logger.Fatal("main: failed to connect to Redis", zap.Error(err))
	}
	defer redisClients.Close()

	// Identity and push.
	var (
		verifier  auth.TokenVerifier
		fcmClient *messaging.Client
	)
	switch cfg.AuthMode {
	case "local":
		logger.Warn("AUTH_MODE=local: accepting HS256 tokens signed with JWT_SECRET")
		verifier = auth.NewLocalVerifier(cfg.JWTSecret)
	default:
		fb, err := utils.FirebaseInit(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Fatal("main: failed to initialize Firebase", zap.Error(err))
		}
		verifier = auth.NewFirebaseVerifier(fb.Auth)
		fcmClient = fb.Messaging
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("main: failed to initialize image storage", zap.Error(err))
	}

	var processor payment.Processor
	if cfg.StripeKey != "" {
		processor = payment.NewStripeProcessor(cfg.StripeKey, logger)
	} else {
		logger.Warn("STRIPE_KEY not set; card payments are simulated")
		processor = payment.NewSimulatedProcessor(0, logger)
	}

	queueOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
	enqueuer := tasks.NewAsynqEnqueuer(queueOpt, logger)
	defer enqueuer.Close()

	// services.
	settingsService := settings.NewDefaultSettingsService(repos.settings, redisClients.Cache, cfg.PaymentWindowMinutes, logger)
	userService := user.NewDefaultUserService(repos.users, repos.providers, cfg.SuperadminEmailList(), logger)
	listingService := listing.NewDefaultListingService(repos.listings, repos.providers, store, logger)
	providerService := provider.NewDefaultProviderService(repos.providers, userService, listingService, store, logger)
	sessions := booking.NewRedisSessionStore(redisClients.Session, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
	bookingService := booking.NewDefaultBookingService(
		repos.bookings, repos.listings, repos.users, sessions, settingsService, processor, enqueuer, logger,
	)
	contactService := contact.NewDefaultContactService(repos.contacts, enqueuer, logger)
	adminService := admin.NewDefaultAdminService(repos.providers, repos.users, repos.listings, repos.bookings)
	notificationService := notification.NewDefaultNotificationService(
		repos.bookings, repos.contacts, repos.users, settingsService,
		notification.NewEmailSender(cfg.SendgridAPIKey, cfg.MailFrom, "ServiceHub", logger),
		notification.NewPushSender(fcmClient, logger),
		logger,
	)

	// background jobs.
	worker := cron.NewWorker(queueOpt, notificationService, logger)
	worker.Start()

	monitor := utils.NewHealthMonitor(redisClients.All(), mongoClient)
	scheduler, err := cron.NewScheduler(bookingService, monitor, logger)
	if err != nil {
		logger.Fatal("main: failed to schedule jobs", zap.Error(err))
	}
	scheduler.Start()

	// HTTP.
	authn := middleware.NewAuthenticator(verifier, repos.users, redisClients.Auth, logger)
	handlerBundle := &handlers.HandlerBundle{
		Authn:       authn,
		SettingsSvc: settingsService,
		Auth:        handlers.NewAuthHandler(userService, authn),
		Listings:    handlers.NewListingHandler(listingService),
		Providers:   handlers.NewProviderHandler(providerService),
		Superadmin:  handlers.NewSuperadminHandler(userService, adminService),
		Bookings:    handlers.NewBookingHandler(bookingService, bookingService),
		Contacts:    handlers.NewContactHandler(contactService),
		Settings:    handlers.NewSettingsHandler(settingsService),
		Health:      handlers.NewHealthHandler(monitor),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.RegisterMetrics()
	router := gin.New()
	routes.RegisterRoutes(router, handlerBundle, routes.Options{
		AllowedOrigins:    cfg.Origins(),
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
		TrustedProxies:    cfg.Proxies(),
	}, logger)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	scheduler.Stop()
	worker.Shutdown()
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
		}
	}
	logger.Info("main: server stopped gracefully")
}

// openStorage selects the image storage backend.
func openStorage(ctx context.Context, cfg *config.Config) (storage.StorageService, error) {
	switch cfg.StorageBackend {
	case "gcs":
		return storage.NewGCSStorage(ctx, cfg.FirebaseCredentialsFile, cfg.GCSBucket)
	case "memory":
		return storage.NewMemoryStorage(), nil
	default:
		return storage.NewCloudinaryStorage(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	}
}
