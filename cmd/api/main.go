package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ppsociety/membership-backend/api/routes"
	"github.com/ppsociety/membership-backend/internal/config"
	"github.com/ppsociety/membership-backend/internal/handlers"
	"github.com/ppsociety/membership-backend/internal/logger"
	"github.com/ppsociety/membership-backend/internal/repositories"
	mongorepo "github.com/ppsociety/membership-backend/internal/repositories/mongodb"
	"github.com/ppsociety/membership-backend/internal/services"
	"github.com/ppsociety/membership-backend/pkg/mailer"
	"github.com/ppsociety/membership-backend/pkg/mongodb"
)

func main() {
	// .env is optional, config falls back to real environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		zlog.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			zlog.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	userRepoImpl := mongorepo.NewUserRepository(db)
	eventRepoImpl := mongorepo.NewEventRepository(db)
	newsRepoImpl := mongorepo.NewNewsRepository(db)
	subRepoImpl := mongorepo.NewSubscriptionRepository(db)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelIndex()
	for _, ensure := range []func(context.Context) error{
		userRepoImpl.EnsureIndexes,
		eventRepoImpl.EnsureIndexes,
		newsRepoImpl.EnsureIndexes,
		subRepoImpl.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			zlog.Fatal("Failed to ensure indexes", zap.Error(err))
		}
	}

	var userRepo repositories.UserRepository = userRepoImpl
	var eventRepo repositories.EventRepository = eventRepoImpl
	var newsRepo repositories.NewsRepository = newsRepoImpl
	var subRepo repositories.SubscriptionRepository = subRepoImpl

	mail := mailer.New(cfg.Mail, zlog)

	authService := services.NewAuthService(userRepo, mail, cfg, zlog)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo, userRepo)
	newsService := services.NewNewsService(newsRepo, userRepo, zlog)
	subService := services.NewSubscriptionService(subRepo, mail, zlog)

	handlerDeps := routes.HandlerDependencies{
		AuthHandler:         handlers.NewAuthHandler(authService, zlog),
		UserHandler:         handlers.NewUserHandler(userService, zlog),
		EventHandler:        handlers.NewEventHandler(eventService, zlog),
		NewsHandler:         handlers.NewNewsHandler(newsService, zlog),
		SubscriptionHandler: handlers.NewSubscriptionHandler(subService, zlog),
	}

	router := routes.SetupRouter(cfg, zlog, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		zlog.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exiting")
}
