package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/parkbooking/api"
	"github.com/Domenick1991/parkbooking/config"
	"github.com/Domenick1991/parkbooking/docs"
	"github.com/Domenick1991/parkbooking/internal/logger"
	"github.com/Domenick1991/parkbooking/internal/service/auth"
	"github.com/Domenick1991/parkbooking/internal/service/booking"
	"github.com/Domenick1991/parkbooking/internal/service/parking"
	"github.com/Domenick1991/parkbooking/internal/validation"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	shutdownTimeout    = 5 * time.Second
	healthCheckTimeout = 2 * time.Second
)

type Dependencies struct {
	Resolver     auth.CallerResolver
	Bookings     booking.BookingUseCase
	Parkings     parking.ParkingUseCase
	Validator    *validation.Validator
	HealthChecks map[string]api.HealthCheck
}

// NewRouter wires middleware and routes. Booking and parking routes
// require a resolved caller.
func NewRouter(cfg *config.Config, log *logger.Logger, deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(
		api.RequestLogging(log),
		api.Recovery(log),
		api.RequestTimeout(time.Duration(cfg.HTTP.RequestTimeoutSeconds)*time.Second),
	)

	router.GET("/ping", api.Ping)
	router.GET("/health", api.NewHealthHandler(deps.HealthChecks, healthCheckTimeout).Health)

	if cfg.HTTP.SwaggerEnabled {
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
			httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		)))
	}

	authenticated := api.Authenticate(deps.Resolver)
	api.NewBookingHandler(deps.Bookings, deps.Validator).Register(router.Group("/bookings", authenticated))
	api.NewParkingHandler(deps.Parkings).Register(router.Group("/parkings", authenticated))

	return router
}

// Run serves HTTP and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, log *logger.Logger, deps Dependencies) error {
	server := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewRouter(cfg, log, deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			_ = server.Close()
			return fmt.Errorf("shutdown http server: %w", err)
		}
		log.Info("Server stopped gracefully")
		return nil
	}
}
