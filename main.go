// File: runway/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"runway/config"
	"runway/console"
	"runway/cron"
	"runway/database"
	auditRepo "runway/database/repository/audit"
	"runway/handlers"
	"runway/middleware"
	"runway/routes"
	"runway/services/events"
	"runway/services/runway"
	"runway/services/tasks"
	"runway/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.AppConfig.Mode == config.ModeConsole {
		runConsole(logger)
		return
	}
	runServer(logger)
}

// newStore builds the session store on the configured backend.
func newStore(k int) (*runway.Store, error) {
	idx, err := runway.NewIndex(config.AppConfig.StoreBackend)
	if err != nil {
		return nil, err
	}
	return runway.NewStore(k, runway.WithIndex(idx)), nil
}

func runConsole(logger *zap.Logger) {
	ui := console.New(os.Stdin, os.Stdout)

	k := config.AppConfig.MinSeparation
	if k == config.KUnset {
		var err error
		if k, err = ui.PromptK(); err != nil {
			logger.Sugar().Infof("main: no k given, exiting: %v", err)
			return
		}
	}

	store, err := newStore(k)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	svc := runway.NewDefaultRunwayService(store, logger)

	if err := ui.Run(context.Background(), svc); err != nil {
		logger.Sugar().Fatalf("main: console failed: %v", err)
	}
}

func runServer(logger *zap.Logger) {
	k := config.AppConfig.MinSeparation
	if k == config.KUnset {
		logger.Sugar().Fatal("main: MIN_SEPARATION (or --k) is required in server mode")
	}

	store, err := newStore(k)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	svc := runway.NewDefaultRunwayService(store, logger)
	runwayHandler := handlers.NewRunwayHandler(svc)

	rootCtx, stopMonitors := context.WithCancel(context.Background())
	defer stopMonitors()

	var redisClients []*redis.Client

	if config.AppConfig.EventsEnabled {
		client := utils.GetEventsClient()
		redisClients = append(redisClients, client)
		pub := events.NewRedisPublisher(client, events.DefaultChannel)
		svc.Publisher = pub
		runwayHandler.Events = pub
	}

	if config.AppConfig.AuditEnabled {
		if err := database.InitDB(); err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		repo := auditRepo.NewMongoAuditRepo(database.Database())
		if err := repo.EnsureIndexes(); err != nil {
			logger.Warn("main: failed to ensure audit indexes", zap.Error(err))
		}
		svc.Audit = repo
		runwayHandler.Audit = repo
	}

	var reminderWorker *asynq.Server
	if config.AppConfig.RemindersEnabled {
		var pub events.Publisher = events.NoopPublisher{}
		if svc.Publisher != nil {
			pub = svc.Publisher
		}
		reminderWorker = cron.InitReminderWorker(pub, logger)

		client := asynq.NewClient(cron.RedisOpt())
		defer client.Close()
		inspector := asynq.NewInspector(cron.RedisOpt())
		defer inspector.Close()
		svc.Reminders = tasks.NewAsynqReminderScheduler(client, inspector)
	}

	if len(redisClients) > 0 || database.MongoClient != nil {
		utils.StartHealthMonitor(rootCtx, time.Minute, redisClients, database.MongoClient)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlers.NewHandlerBundle(runwayHandler))

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting runway server on %s (k=%d, backend=%s)...", srv.Addr, k, config.AppConfig.StoreBackend)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}
	if err := database.Close(ctx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
