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

	"github.com/reposekdz/eastgate-sub004/config"
	"github.com/reposekdz/eastgate-sub004/controllers"
	"github.com/reposekdz/eastgate-sub004/repository"
	"github.com/reposekdz/eastgate-sub004/routes"
	"github.com/reposekdz/eastgate-sub004/services"
	"github.com/reposekdz/eastgate-sub004/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("ERROR: JWT_SECRET environment variable is not set")
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	log.Println("Database connection established, migrations applied")

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("Redis not configured; rate limiting disabled")
	}

	var events services.EventPublisher = services.NoopPublisher{}
	if amqpURL := os.Getenv("RABBITMQ_URL"); amqpURL != "" {
		events = services.NewAmqpPublisher(amqpURL)
	} else {
		log.Println("RabbitMQ not configured; booking events disabled")
	}

	store := repository.NewGormStore(db)

	pricing := services.NewPricingService(store)
	availability := services.NewAvailabilityService(store, pricing)
	bookings := services.NewBookingService(store, availability, events)
	rooms := services.NewRoomService(store)
	auth := services.NewAuthService(store, jwtSecret, 12*time.Hour)

	router := routes.SetupRouter(
		controllers.NewAvailabilityController(availability),
		controllers.NewBookingController(bookings),
		controllers.NewRoomController(rooms),
		controllers.NewAuthController(auth),
		jwtSecret,
		rdb,
	)

	addr := ":" + utils.EnvOrDefault("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
