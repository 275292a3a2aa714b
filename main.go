// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"locali/config"
	"locali/cron"
	"locali/handlers"
	"locali/middleware"
	"locali/routes"
	"locali/services/dialogue"
	"locali/services/event"
	"locali/services/notification"
	"locali/services/recommend"
	"locali/services/suggestions"
	"locali/services/user"
	"locali/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	fb := &lazyFirebase{ctx: ctx}

	// repositories.
	repos, err := buildRepositories(ctx, fb, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize repositories: %v", err)
	}
	defer repos.close()

	identity, verifier, err := buildIdentity(ctx, fb, repos)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize auth: %v", err)
	}
	blobs, err := buildBlobStore(ctx, fb)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage: %v", err)
	}

	notificationService := &notification.DefaultNotificationService{Users: repos.Users, Logger: logger}
	if fb.Ready() {
		if msg, err := fb.app.Messaging(ctx); err != nil {
			logger.Warn("main: push notifications disabled", zap.Error(err))
		} else {
			notificationService.Messenger = msg
		}
	}

	// Reminder queue.
	queueOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	reminders := cron.NewReminderScheduler(queueOpt, config.AppConfig.ReminderLeadTime, logger)
	defer func() { _ = reminders.Close() }()
	worker := cron.StartReminderWorker(queueOpt, &cron.ReminderHandler{
		Events:       repos.Events,
		Notification: notificationService,
		Logger:       logger,
	}, logger)

	// services.
	recommendService := &recommend.DefaultRecommendService{
		Events: repos.Events,
		Users:  repos.Users,
		Cache:  utils.GetCacheClient(),
		TTL:    config.AppConfig.RecommendationCacheTTL,
		Logger: logger,
	}
	userService := &user.DefaultUserService{
		Repo:      repos.Users,
		Identity:  identity,
		Blobs:     blobs,
		Recommend: recommendService,
		Logger:    logger,
	}
	eventService := &event.DefaultEventService{
		Repo:         repos.Events,
		Users:        repos.Users,
		Blobs:        blobs,
		Notification: notificationService,
		Reminders:    reminders,
		Logger:       logger,
	}
	suggestionService := &suggestions.DefaultSuggestionService{Events: eventService, Logger: logger}
	dialogueManager := dialogue.NewManager(
		dialogue.NewRedisSessionStore(utils.GetSessionClient(), config.AppConfig.DialogueSessionTTL),
		eventService,
		dialogue.Options{ReplyDelay: config.AppConfig.DialogueReplyDelay},
		config.AppConfig.DialogueSessionTTL,
		logger,
	)

	auth := &middleware.Auth{Verifier: verifier, Cache: utils.GetAuthCacheClient(), Logger: logger}

	utils.StartHealthMonitor(ctx, 30*time.Second, map[string]utils.HealthCheck{
		"cache":    utils.RedisHealthCheck(utils.GetCacheClient()),
		"auth":     utils.RedisHealthCheck(utils.GetAuthCacheClient()),
		"sessions": utils.RedisHealthCheck(utils.GetSessionClient()),
	})

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin, logger))

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		auth.Required(),
		auth.Optional(),
		&handlers.UserHandler{UserService: userService, Logger: logger},
		&handlers.EventHandler{Events: eventService, Recommend: recommendService, Users: userService, Logger: logger},
		&handlers.SuggestionHandler{Suggestions: suggestionService},
		handlers.NewDialogueHandler(dialogueManager, logger),
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	stop()

	logger.Sugar().Info("main: server stopped gracefully")
}
