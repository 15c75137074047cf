package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dehanf/Smart-takeout-system/cmd"
	httpin "github.com/dehanf/Smart-takeout-system/internal/adapters/in/http"
	"github.com/dehanf/Smart-takeout-system/internal/adapters/out/kafka"
	"github.com/dehanf/Smart-takeout-system/internal/adapters/out/postgres/orderrepo"
	"github.com/dehanf/Smart-takeout-system/internal/adapters/out/routing"
	"github.com/dehanf/Smart-takeout-system/internal/core/application/usecases/commands"
	"github.com/dehanf/Smart-takeout-system/internal/core/domain/services"
	"github.com/dehanf/Smart-takeout-system/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	gormDB := mustConnectDB(configs)

	provider, err := routing.NewDistanceMatrixProvider(
		configs.RoutingAPIURL, configs.RoutingAPIKey, configs.RoutingTimeout)
	if err != nil {
		log.Fatalf("Failed to create routing provider: %v", err)
	}

	publisher, err := kafka.NewSaramaNotificationPublisher(
		configs.KafkaHost, configs.KafkaNotificationsTopic, logger)
	if err != nil {
		log.Fatalf("Failed to create Kafka publisher: %v", err)
	}
	defer publisher.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, provider, publisher, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}

	return cmd.Config{
		HTTPPort:                envOrDefault("HTTP_PORT", "8080"),
		DBHost:                  os.Getenv("DB_HOST"),
		DBPort:                  os.Getenv("DB_PORT"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBSslMode:               envOrDefault("DB_SSLMODE", "disable"),
		KafkaHost:               os.Getenv("KAFKA_HOST"),
		KafkaNotificationsTopic: envOrDefault("KAFKA_NOTIFICATIONS_TOPIC", "order-notifications"),
		RoutingAPIURL:           os.Getenv("ROUTING_API_URL"),
		RoutingAPIKey:           os.Getenv("ROUTING_API_KEY"),
		RoutingTimeout:          durationEnv("ROUTING_TIMEOUT", routing.DefaultTimeout),
		ProviderCooldown:        durationEnv("PROVIDER_COOLDOWN", commands.DefaultProviderCooldown),
		SlackBufferMinutes:      intEnv("SLACK_BUFFER_MINUTES", services.DefaultSlackBufferMinutes),
		StaleWindow:             durationEnv("STALE_TRACKING_WINDOW", jobs.DefaultStaleWindow),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %v", key, err)
	}
	return d
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("Invalid integer in %s: %v", key, err)
	}
	return n
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateProcessLocationUpdateCommandHandler(),
		app.CreateMarkOrderReadyCommandHandler(),
		app.CreateCompleteOrderCommandHandler(),
		app.CreateGetTrackedOrdersQueryHandler(),
		app.CreateGetOrderQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
