package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/parkbooking/config"
	"github.com/Domenick1991/parkbooking/internal/audit"
	"github.com/Domenick1991/parkbooking/internal/kafka"
	"github.com/Domenick1991/parkbooking/internal/logger"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.New(logger.Config{}).Fatal("Failed to load config", "error", err)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Service: "parkbooking-worker"})
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("Kafka brokers are not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic, log.With("component", "kafka"))
	defer consumer.Close()

	recorder := audit.NewRecorder(log)

	log.Info("Consuming booking events", "topic", cfg.Kafka.BookingEventsTopic, "group_id", cfg.Kafka.GroupID)
	if err := consumer.Consume(ctx, recorder.Handle); err != nil {
		log.Error("Consumer stopped", "error", err)
		return
	}
	log.Info("Worker stopped")
}
