package cmd

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codekivy/kivybot-be/config"
	"github.com/codekivy/kivybot-be/handler"
	"github.com/codekivy/kivybot-be/logger"
	"github.com/codekivy/kivybot-be/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the KivyBot API server",
	Long:  `Starts the HTTP server that handles chat, voice and document requests.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		zlog, err := logger.New(cfg.Env, cfg.LogLevel)
		if err != nil {
			log.Fatalf("Failed to build logger: %v", err)
		}
		defer zlog.Sync()

		// Initialize services
		extractService := service.NewExtractService(zlog)
		store := service.NewDocumentStore(extractService, cfg.MaxSessions, zlog)

		visionService, err := service.NewVisionService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, zlog)
		if err != nil {
			zlog.Fatal("failed to initialize vision service", zap.Error(err))
		}
		defer visionService.Close()

		fastChatService := service.NewFastChatService(cfg.GroqEndpoint, cfg.GroqAPIKey, cfg.GroqModel, zlog)
		speechService := service.NewSpeechService(cfg.DeepgramAPIKey, zlog)

		requestRouter := service.NewRouter(store, visionService, fastChatService, speechService, zlog)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler(cfg.AllowedOrigins)
		chatHandler := handler.NewChatHandler(requestRouter)
		voiceHandler := handler.NewVoiceHandler(requestRouter)
		documentHandler := handler.NewDocumentHandler(store)
		healthHandler := handler.NewHealthHandler(store)

		// Setup Gin router
		router := gin.Default()

		// Apply global middleware
		router.Use(corsHandler.CorsMiddleware)

		api := router.Group("/api")
		{
			api.POST("/chat", chatHandler.HandleChat)
			api.POST("/voice", voiceHandler.HandleVoice)
			api.POST("/document/clear", documentHandler.HandleClear)
			api.GET("/document/status", documentHandler.HandleStatus)
		}

		router.GET("/", healthHandler.HandleRoot)
		router.GET("/health", healthHandler.HandleHealth)

		zlog.Info("starting server", zap.String("port", cfg.Port))
		if err := router.Run(":" + cfg.Port); err != nil {
			zlog.Fatal("server stopped", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
