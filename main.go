package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meetbook/config"
	"meetbook/database"
	chatlogRepo "meetbook/database/repository/chatlog"
	"meetbook/handlers"
	"meetbook/routes"
	"meetbook/services/agent"
	"meetbook/services/bookingapi"
	"meetbook/services/extract"
	"meetbook/services/slots"
	"meetbook/utils"
)

func main() {
	config.LoadConfig()

	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	utils.InitSessionStore()
	utils.InitCache()

	cfg := config.AppConfig

	// NLU fallback is optional: without a key, extraction runs on the
	// deterministic pass alone.
	var nlu extract.NLUService
	if cfg.GeminiAPIKey != "" {
		gemini, err := extract.NewGeminiNLU(cfg.GeminiAPIKey)
		if err != nil {
			logger.Fatal("Failed to initialize Gemini NLU", zap.Error(err))
		}
		nlu = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, NLU fallback disabled")
	}

	apiBackend := bookingapi.NewAPIBackend(
		cfg.BookingAPIURL,
		cfg.BookingServiceID,
		splitStaffIDs(cfg.BookingStaffIDs),
		cfg.BookingTimezone,
	)

	var fallback bookingapi.Committer
	if cfg.BookingPageURL != "" {
		fallback = bookingapi.NewBrowserBackend(cfg.BookingPageURL)
	}

	catalog := slots.NewCachedCatalog(
		apiBackend,
		utils.GetCacheClient(),
		time.Duration(cfg.SlotCacheTTLMinutes)*time.Minute,
	)

	store := agent.NewRedisSessionStore(
		utils.GetSessionClient(),
		time.Duration(cfg.SessionTTLMinutes)*time.Minute,
	)

	handlers.Agent = agent.NewAgentService(
		store,
		&extract.DefaultExtractor{NLU: nlu},
		catalog,
		bookingapi.NewExecutor(apiBackend, fallback),
	)
	handlers.ChatLogs = chatlogRepo.NewMongoChatLogRepo()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	routes.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.AppPort), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func splitStaffIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
