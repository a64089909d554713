// Package app wires configuration, storage, services, and the HTTP server
// into a runnable application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/resqbite/resqbite-backend/internal/adapter/assessor"
	"github.com/resqbite/resqbite-backend/internal/adapter/postgres"
	deliveryrepo "github.com/resqbite/resqbite-backend/internal/adapter/postgres/delivery"
	fooditemrepo "github.com/resqbite/resqbite-backend/internal/adapter/postgres/fooditem"
	foodrequestrepo "github.com/resqbite/resqbite-backend/internal/adapter/postgres/foodrequest"
	notificationrepo "github.com/resqbite/resqbite-backend/internal/adapter/postgres/notification"
	organizationrepo "github.com/resqbite/resqbite-backend/internal/adapter/postgres/organization"
	restaurantrepo "github.com/resqbite/resqbite-backend/internal/adapter/postgres/restaurant"
	tokenrepo "github.com/resqbite/resqbite-backend/internal/adapter/postgres/token"
	userrepo "github.com/resqbite/resqbite-backend/internal/adapter/postgres/user"
	volunteerrepo "github.com/resqbite/resqbite-backend/internal/adapter/postgres/volunteer"
	jwtauth "github.com/resqbite/resqbite-backend/internal/auth"
	"github.com/resqbite/resqbite-backend/internal/config"
	authservice "github.com/resqbite/resqbite-backend/internal/service/auth"
	deliveryservice "github.com/resqbite/resqbite-backend/internal/service/delivery"
	fooditemservice "github.com/resqbite/resqbite-backend/internal/service/fooditem"
	"github.com/resqbite/resqbite-backend/internal/service/matching"
	notificationservice "github.com/resqbite/resqbite-backend/internal/service/notification"
	profileservice "github.com/resqbite/resqbite-backend/internal/service/profile"
	requestservice "github.com/resqbite/resqbite-backend/internal/service/request"
	"github.com/resqbite/resqbite-backend/internal/transport/middleware"
	"github.com/resqbite/resqbite-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, initializes the
// logger, connects to PostgreSQL, runs migrations, builds the service graph,
// and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := NewLogger(cfg.Log)

	log.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	restaurants := restaurantrepo.New(pool)
	organizations := organizationrepo.New(pool)
	volunteers := volunteerrepo.New(pool)
	foodItems := fooditemrepo.New(pool)
	foodRequests := foodrequestrepo.New(pool)
	deliveries := deliveryrepo.New(pool)
	notifications := notificationrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	jwt := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	assessorClient := assessor.NewClient(cfg.Assessor, log)

	authSvc := authservice.NewService(log, cfg.Auth, users, restaurants, organizations, volunteers, tokens, tx, jwt)
	profileSvc := profileservice.NewService(log, users, restaurants, organizations, volunteers)
	foodItemSvc := fooditemservice.NewService(log, foodItems, restaurants, assessorClient)
	requestSvc := requestservice.NewService(log, foodRequests, organizations)
	notificationSvc := notificationservice.NewService(log, notifications)
	deliverySvc := deliveryservice.NewService(log, deliveries, foodItems, volunteers, restaurants, organizations, notifications, tx)
	matchingSvc := matching.NewService(log, deliveries, foodItems, volunteers, restaurants, organizations, notifications, matching.NewEstimator(cfg.Delivery))

	router := rest.NewRouter(rest.Handlers{
		Auth:         rest.NewAuthHandler(authSvc, log),
		Delivery:     rest.NewDeliveryHandler(deliverySvc, matchingSvc, log),
		FoodItem:     rest.NewFoodItemHandler(foodItemSvc, log),
		Request:      rest.NewRequestHandler(requestSvc, log),
		Notification: rest.NewNotificationHandler(notificationSvc, log),
		Profile:      rest.NewProfileHandler(profileSvc, log),
		Health:       rest.NewHealthHandler(pool, BuildVersion()),
	})

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimitPerMin),
		middleware.Auth(jwt),
	)(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
