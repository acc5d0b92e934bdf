package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"direct-chat-service/internal/config"
	"direct-chat-service/internal/db"
	"direct-chat-service/internal/handlers"
	"direct-chat-service/internal/middleware"
	"direct-chat-service/internal/notifications"
	"direct-chat-service/internal/observability"
	"direct-chat-service/internal/profile"
	"direct-chat-service/internal/rabbitmq"
	"direct-chat-service/internal/repositories"
	"direct-chat-service/internal/services"
	"direct-chat-service/internal/telemetry"
	"direct-chat-service/internal/ws"
)

const serviceName = "direct-chat-service"

func main() {
	cfg := config.Load()

	shutdownTracer := telemetry.InitTracer(cfg.TracingEnabled, cfg.OTLPEndpoint, serviceName)
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("tracer shutdown: %v", err)
		}
	}()

	database, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.PushExchange)
	defer publisher.Close()
	log.Printf("notification publisher mode=%s", rabbitmq.PublisherMode(publisher))

	dispatcher := notifications.NewDispatcher(publisher, "push.user", serviceName, cfg.Environment)
	profileClient := profile.NewHTTPClient(cfg.UserServiceURL, time.Duration(cfg.ProfileTimeoutS)*time.Second)

	chatRepo := repositories.NewChatRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	flagRepo := repositories.NewFeatureFlagRepo(database)

	featureService := services.NewFeatureService(flagRepo)
	chatService := services.NewChatService(chatRepo, messageRepo, profileClient, dispatcher)
	messageService := services.NewMessageService(messageRepo, chatService, profileClient, dispatcher)

	hub := ws.NewHub()

	chatHandler := handlers.NewChatHandler(chatService, hub)
	messageHandler := handlers.NewMessageHandler(messageService, hub)
	settingsHandler := handlers.NewSettingsHandler(featureService)
	chatWS := ws.NewChatWebSocketHandler(hub, chatService, []byte(cfg.JWTSecret))

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.AuthMiddleware([]byte(cfg.JWTSecret))
	gate := middleware.FeatureGate(featureService)

	// Settings stay reachable while the feature is off, otherwise it could
	// never be turned back on over the API.
	router.GET("/direct-chats/settings", auth, settingsHandler.GetSettings)
	router.PATCH("/direct-chats/settings", auth, middleware.RequireAdmin(), settingsHandler.UpdateSettings)

	chats := router.Group("/direct-chats", auth, gate)
	chats.POST("", chatHandler.CreateChat)
	chats.GET("", chatHandler.ListChats)
	chats.GET("/pending", chatHandler.ListPendingChats)
	chats.GET("/:chat_id", chatHandler.GetChat)
	chats.PATCH("/:chat_id/confirm", chatHandler.ConfirmChat)
	chats.DELETE("/:chat_id", chatHandler.DeleteChat)
	chats.POST("/:chat_id/messages", messageHandler.CreateMessage)
	chats.GET("/:chat_id/messages", messageHandler.GetMessages)
	chats.PATCH("/:chat_id/messages/:message_id", messageHandler.UpdateMessage)
	chats.DELETE("/:chat_id/messages/:message_id", messageHandler.DeleteMessage)
	chats.PATCH("/:chat_id/messages/:message_id/reactions", messageHandler.UpdateReaction)

	router.GET("/ws/direct-chats/:chat_id", chatWS.Handle)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
