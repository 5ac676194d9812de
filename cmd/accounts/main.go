package main

import (
	"log"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/ordesk/ordesk/internal/pkg/config"
	"github.com/ordesk/ordesk/internal/pkg/database"
	"github.com/ordesk/ordesk/internal/pkg/health"
	"github.com/ordesk/ordesk/internal/pkg/logger"
	"github.com/ordesk/ordesk/internal/pkg/middleware"
	natspkg "github.com/ordesk/ordesk/internal/pkg/nats"
	"github.com/ordesk/ordesk/internal/pkg/server"
	wspkg "github.com/ordesk/ordesk/internal/pkg/websocket"
	"github.com/ordesk/ordesk/services/accounts/gateway"
	"github.com/ordesk/ordesk/services/accounts/handler"
	httpHandler "github.com/ordesk/ordesk/services/accounts/handler/http"
	natsHandler "github.com/ordesk/ordesk/services/accounts/handler/nats"
	wsHandler "github.com/ordesk/ordesk/services/accounts/handler/websocket"
	"github.com/ordesk/ordesk/services/accounts/repository"
	"github.com/ordesk/ordesk/services/accounts/usecase"
	"go.uber.org/zap"
)

func main() {
	appName := "accounts-service"
	configPath := os.Getenv("CONFIG_PATH")
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize NATS
	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer natsClient.Close()

	// Initialize repositories
	accountRepo := repository.NewAccountRepo(configs, postgresClient.GetDB())
	sessionRepo := repository.NewSessionRepo(configs, redisClient)

	// Initialize gateway
	accountGW := gateway.NewAccountGW(natsClient, configs)

	// Live connection registry
	registry := wspkg.NewRegistry()

	// Initialize usecase
	accountUC := usecase.NewAccountUC(accountRepo, accountRepo, sessionRepo, accountRepo, accountGW, registry, configs)

	// Handlers for HTTP
	authHandler := httpHandler.NewAuthHandler(accountUC, configs)
	notificationHandler := httpHandler.NewNotificationHandler(accountUC)

	// Handlers for WebSocket
	echoWSHandler := wsHandler.NewEchoWebSocketHandler(registry)

	// Handlers for NATS
	natsH := natsHandler.NewNatsHandler(accountUC, natsClient)

	h := handler.NewHandler(authHandler, notificationHandler, echoWSHandler, natsH, accountUC, redisClient, configs)

	// Initialize NATS consumers
	if err := h.InitNATSConsumers(); err != nil {
		zapLogger.Fatal("Failed to initialize NATS consumers", zap.Error(err))
	}
	defer h.Close()

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	// Add middlewares
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Register health endpoints
	health.RegisterHealthEndpoints(e, appName)

	// Register service routes
	h.RegisterRoutes(e)

	zapLogger.Info("Starting server",
		zap.String("app", appName),
		zap.Int("port", configs.Server.Port),
	)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server terminated unexpectedly",
			zap.String("app", appName),
			zap.Error(err),
		)
	}
}
