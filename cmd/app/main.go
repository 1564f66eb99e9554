package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/parkbooking/api"
	"github.com/Domenick1991/parkbooking/config"
	"github.com/Domenick1991/parkbooking/internal/bootstrap"
	"github.com/Domenick1991/parkbooking/internal/cache"
	"github.com/Domenick1991/parkbooking/internal/kafka"
	"github.com/Domenick1991/parkbooking/internal/logger"
	"github.com/Domenick1991/parkbooking/internal/repository"
	"github.com/Domenick1991/parkbooking/internal/service/auth"
	"github.com/Domenick1991/parkbooking/internal/service/booking"
	"github.com/Domenick1991/parkbooking/internal/service/parking"
	"github.com/Domenick1991/parkbooking/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
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

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Service: "parkbooking-api"})
	if cfg.Log.Level != logger.DEBUG {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to postgres", "error", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			log.Fatal("Failed to migrate database", "error", err)
		}
		log.Info("Database schema is up to date")
	}
	if cfg.Database.Seed {
		if err := repository.Seed(ctx, pool); err != nil {
			log.Fatal("Failed to seed database", "error", err)
		}
		log.Info("Database seeded")
	}

	healthChecks := map[string]api.HealthCheck{
		"postgres": pool.Ping,
	}

	var (
		locker       booking.Locker
		parkingCache parking.Cache
	)
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.ParkingCacheTTLSeconds)*time.Second)
		defer redisCache.Close()
		locker = redisCache
		parkingCache = redisCache
		healthChecks["redis"] = redisCache.Ping
	} else {
		log.Warn("Redis is not configured, bookings are not locked per parking")
	}

	var producer booking.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, log.With("component", "kafka"))
		defer kafkaProducer.Close()
		producer = kafkaProducer
		healthChecks["kafka"] = kafkaProducer.CheckConnection
	}

	userRepo := repository.NewUserRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	parkingRepo := repository.NewParkingRepository(pool)

	bookingService := booking.NewBookingService(
		bookingRepo,
		locker,
		producer,
		log.With("component", "booking"),
		booking.WithEventsTopic(cfg.Kafka.BookingEventsTopic),
		booking.WithLockTTL(time.Duration(cfg.Booking.LockTTLSeconds)*time.Second),
	)
	parkingService := parking.NewParkingService(parkingRepo, parkingCache, log.With("component", "parking"))

	deps := bootstrap.Dependencies{
		Resolver:     auth.NewResolver(userRepo, cfg.Auth.JWTSecret, log.With("component", "auth")),
		Bookings:     bookingService,
		Parkings:     parkingService,
		Validator:    validation.New(),
		HealthChecks: healthChecks,
	}

	if err := bootstrap.Run(ctx, cfg, log, deps); err != nil {
		log.Fatal("Server error", "error", err)
	}
}
