package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"scoutai/config"
	"scoutai/cron"
	"scoutai/database"
	ledgerRepo "scoutai/database/repository/ledger"
	"scoutai/handlers"
	"scoutai/routes"
	"scoutai/services/admin"
	"scoutai/services/availability"
	"scoutai/services/catalog"
	"scoutai/services/conversation"
	"scoutai/services/extractor"
	"scoutai/services/knowledge"
	"scoutai/services/notification"
	"scoutai/services/verification"
	"scoutai/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	ledger := ledgerRepo.NewMongoLedgerRepo()

	// domain services.
	catalogStore := catalog.Load(config.AppConfig.CatalogPath)
	engine := availability.NewEngine(catalogStore)

	geminiExtractor, err := extractor.NewGeminiExtractor(config.AppConfig.GeminiAPIKey, catalogStore)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize entity extractor: %v", err)
	}

	knowledgeIndex := knowledge.NewIndex(config.AppConfig.DocsDir)
	answerer, err := knowledge.NewAnswerer(config.AppConfig.GeminiAPIKey, knowledgeIndex)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize knowledge answerer: %v", err)
	}

	notifier := notification.NewSMTPNotificationService()
	verifier := verification.NewDefaultVerifier(ledger)
	adminService := admin.NewAdminService(ledger)

	scheduler := cron.NewReminderScheduler()
	defer scheduler.Close()
	cron.InitReminderWorker(ledger, notifier)

	conversationService := &conversation.DefaultConversationService{
		Catalog:   catalogStore,
		Engine:    engine,
		Extractor: geminiExtractor,
		Ledger:    ledger,
		Notifier:  notifier,
		Reminders: scheduler,
	}

	sessionStore := conversation.NewRedisSessionStore(utils.GetSessionCacheClient(), 30*time.Minute)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions:     sessionStore,
		Conversation: conversationService,
		Knowledge:    answerer,
		Verifier:     verifier,
		Ledger:       ledger,
		AdminService: adminService,
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
