package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusshield/config"
	"campusshield/controllers"
	"campusshield/database"
	"campusshield/logger"
	"campusshield/routes"
	"campusshield/services"
	"campusshield/storage"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	createAdmin := flag.String("create-admin", "", "create a local admin with this email (password from ADMIN_PASSWORD) and exit")
	adminName := flag.String("admin-name", "", "display name for -create-admin")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	logger.Init(cfg.Log, cfg.Server.Mode)
	defer logger.Sync()

	ctx := context.Background()

	mongo, err := db.Connect(ctx, cfg.Mongo)
	if err != nil {
		logger.Log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongo.Disconnect()

	localAuth := services.NewLocalAuth(db.NewAdminStore(mongo))
	if *createAdmin != "" {
		admin, err := localAuth.CreateAdmin(ctx, *createAdmin, *adminName, os.Getenv("ADMIN_PASSWORD"))
		if err != nil {
			logger.Log.Fatal("Failed to create admin", zap.Error(err))
		}
		logger.Log.Info("admin created", zap.String("email", admin.Email))
		return
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			logger.Log.Error("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	var authProvider services.AuthProvider = localAuth
	passwords := controllers.NewPasswordController(localAuth)
	if cfg.Auth.Provider == "firebase" {
		fb, err := services.NewFirebaseAuth(ctx, cfg.Auth.FirebaseAPIKey)
		if err != nil {
			logger.Log.Fatal("Failed to init Firebase auth", zap.Error(err))
		}
		authProvider = fb
		passwords = nil
	}

	var revoker services.Revoker
	if cfg.Redis.URL != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer rdb.Close()
		revoker = db.NewRedisRevoker(rdb)
	} else {
		logger.Log.Warn("REDIS_URL not set, logged-out sessions are tracked in memory only")
		revoker = services.NewMemoryRevoker()
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Log.Fatal("Failed to init upload storage", zap.Error(err), zap.String("type", cfg.Storage.Type))
	}
	defer store.Close()

	notifier := services.NewNotifier(cfg.Mail)
	complaints := services.NewComplaintService(db.NewComplaintStore(mongo), store, notifier, cfg.Storage.Folder, cfg.Storage.MaxBytes)
	auth := services.NewAuthService(authProvider, revoker, cfg.Auth)

	jobs, err := services.NewJobs(complaints, notifier, cfg.Jobs)
	if err != nil {
		logger.Log.Fatal("Failed to schedule jobs", zap.Error(err))
	}
	jobs.Start()

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.SentryDSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.MaxMultipartMemory = cfg.Storage.MaxBytes

	routes.SetupRoutes(r, cfg, routes.Handlers{
		Complaints: controllers.NewComplaintController(complaints, cfg.Storage.MaxBytes),
		Dashboard:  controllers.NewDashboardController(complaints, cfg.Server.Location()),
		Auth:       controllers.NewAuthController(auth, cfg.Auth.CookieSecure),
		Passwords:  passwords,
		Tokens:     auth,
		DB:         mongo,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("auth", cfg.Auth.Provider), zap.String("storage", cfg.Storage.Type))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jobs.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("server shutdown error", zap.Error(err))
	}
	complaints.Wait(shutdownCtx)
}
