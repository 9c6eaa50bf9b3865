package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flight_tracker/internal/api"
	"flight_tracker/internal/app/service"
	"flight_tracker/internal/common/security"
	"flight_tracker/internal/domain/repository"
	"flight_tracker/internal/platform/amadeus"
	"flight_tracker/internal/platform/cache"
	"flight_tracker/internal/platform/config"
	"flight_tracker/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	if err := database.Migrate(context.Background()); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	fmt.Println("Database connected and migrated.")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	flightRepo := repository.NewMemoryFlightRepository()

	// 6. Initialize Provider Client & Services
	provider := amadeus.NewClient(config.AppConfig, cache.NewRedisTokenCache(cache.RDB))
	authService := service.NewAuthService(userRepo)
	flightService := service.NewFlightService(provider, flightRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, flightService, database.Ping)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
