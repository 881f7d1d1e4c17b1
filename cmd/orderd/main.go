package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/hdev14/store/internal/app"
	"github.com/hdev14/store/internal/consumer"
	"github.com/hdev14/store/internal/event"
	"github.com/hdev14/store/internal/metrics"
	"github.com/hdev14/store/internal/queue"
	"github.com/hdev14/store/internal/repository"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("orderd starting...")
	var wg sync.WaitGroup

	// Configuration
	metricsAddr := getEnv("METRICS_ADDR", ":9102")
	kafkaBrokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")

	// Database setup
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "store")
	migrationsPath := getEnv("MIGRATIONS_PATH", "./internal/repository/migrations")

	port, err := strconv.Atoi(dbPort)
	if err != nil {
		log.Fatalf("Invalid DB_PORT: %v", err)
	}

	creds := &repository.Credentials{
		Host:              dbHost,
		Port:              port,
		User:              dbUser,
		Password:          dbPass,
		DBName:            dbName,
		MigrationsDirPath: migrationsPath,
	}

	pgRepo, err := repository.NewPostgresRepository(creds)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pgRepo.Close()

	if err := pgRepo.RunMigrations(creds); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer redisClient.Close()
	repo := repository.NewVoucherCachedRepository(pgRepo, redisClient)

	queueMetrics := metrics.NewQueueMetrics(prometheus.DefaultRegisterer)
	eventQueue := queue.NewInstrumentedQueue(queue.NewKafkaQueue(kafkaBrokers...), queueMetrics)
	defer eventQueue.Close()

	application, err := app.New(repo, eventQueue)
	if err != nil {
		log.Fatalf("Failed to wire the command bus: %v", err)
	}
	log.Println("Command bus wired")

	// Domain-event subscribers
	application.Events.Register(event.PurchaseOrderItemAddedName, app.LogStockAdjustment)

	// Start payment consumer
	chargeConsumer := consumer.NewChargeConsumer(pgRepo, kafkaBrokers...)
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	wg.Add(1)
	go func() {
		defer wg.Done()
		chargeConsumer.Run(consumerCtx)
	}()

	// Metrics endpoint
	metricsServer := &http.Server{Addr: metricsAddr, Handler: metrics.Handler()}
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("Metrics available on %s", metricsAddr)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	consumerCancel()
	chargeConsumer.Close()
	if err := metricsServer.Shutdown(context.Background()); err != nil {
		log.Printf("metrics server shutdown error: %v", err)
	}
	wg.Wait()
	log.Println("orderd stopped")
}
