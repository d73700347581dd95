package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"file-vault/conf"
	"file-vault/controller"
	"file-vault/database"
	"file-vault/service/file_service"
	"file-vault/service/upload_service"
	"file-vault/service/user_service"
	"file-vault/storage"
)

var ENV string

func init() {
	flag.StringVar(&ENV, "env", "loc", "Environment: loc/prod/example")
}

// @title           File Vault API
// @version         1.0
// @description     File storage service with single-shot and chunked uploads

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	srv, sweeper, cleanup := initAll()
	defer cleanup()

	// Start the expired session sweeper (in goroutine)
	sweeper.Start()
	log.Println("Session sweeper started successfully")

	// Start HTTP API service (in goroutine)
	go startServer(srv)
	log.Println("API service started successfully")

	// Wait for shutdown signal
	waitForShutdown()

	log.Println("Shutting down...")

	sweeper.Stop()
	shutdownServer(srv)

	log.Println("Server exited")
}

// initEnv initialize environment
func initEnv() {
	if ENV == "loc" {
		conf.SystemEnvironmentEnum = conf.LocalEnvironmentEnum
	} else if ENV == "prod" {
		conf.SystemEnvironmentEnum = conf.ProductionEnvironmentEnum
	} else if ENV == "example" {
		conf.SystemEnvironmentEnum = conf.ExampleEnvironmentEnum
	}
	fmt.Printf("Environment: %s\n", ENV)
}

// initAll initialize all components
func initAll() (*http.Server, *upload_service.CleanupProcessor, func()) {
	// Parse command line parameters
	flag.Parse()

	// Set environment
	initEnv()

	// Initialize configuration
	if err := conf.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	log.Printf("Configuration loaded: env=%s, port=%s", ENV, conf.Cfg.Port)

	// Initialize database
	if err := database.InitMySQL(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (optional, password reset codes need it)
	if err := database.InitRedis(); err != nil {
		log.Printf("Redis initialization failed (password reset disabled): %v", err)
	}

	// Initialize storage
	stor, err := storage.NewStorage()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Printf("Storage initialized: type=%s", conf.Cfg.Storage.Type)

	// Wire services
	activityService := file_service.NewFileActivityLogService()
	uploadService := upload_service.NewUploadService(stor, activityService)
	fileService := file_service.NewFileQueryService(stor, activityService)
	userService := user_service.NewUserService()

	sweeper := upload_service.NewCleanupProcessor(uploadService)

	router := controller.SetupRouter(uploadService, fileService, activityService, userService)

	srv := &http.Server{
		Addr:    ":" + conf.Cfg.Port,
		Handler: router,
	}

	cleanup := func() {
		if err := database.CloseMySQL(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
		if err := database.CloseRedis(); err != nil {
			log.Printf("Failed to close Redis: %v", err)
		}
	}

	return srv, sweeper, cleanup
}

// startServer start HTTP server
func startServer(srv *http.Server) {
	log.Printf("API service starting on port %s...", conf.Cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// waitForShutdown wait for shutdown signal
func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}

// shutdownServer gracefully shutdown server
func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
