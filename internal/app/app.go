package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creatormatch/internal/auth"
	"creatormatch/internal/config"
	"creatormatch/internal/handlers"
	"creatormatch/internal/logger"
	"creatormatch/internal/models"
	"creatormatch/internal/repositories"
	"creatormatch/internal/routes"
	"creatormatch/internal/services"
	"creatormatch/internal/validator"
	"creatormatch/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run wires the whole application and blocks until shutdown.
func Run() error {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Server.Env)
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	// Match writes go through an elevated handle: the acting role has no
	// direct grants on user_matches.
	adminDB := db
	if cfg.Database.AdminDSN != "" && cfg.Database.AdminDSN != cfg.Database.DSN {
		adminDB, err = gorm.Open(postgres.Open(cfg.Database.AdminDSN), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("connect admin database: %w", err)
		}
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Creator{},
		&models.OnboardingAnswer{},
		&models.UserMatch{},
		&models.UserSubscription{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	repos := services.Repositories{
		Users:        repositories.NewUserRepository(db),
		Creators:     repositories.NewCreatorRepository(db),
		Matches:      repositories.NewMatchRepository(adminDB),
		Onboarding:   repositories.NewOnboardingRepository(db),
		Subscription: repositories.NewSubscriptionRepository(db),
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	svcs := services.NewServiceContainer(repos, tokens, cfg.Matching)
	appHandlers := handlers.NewAppHandlers(svcs, validator.New(), cfg.Payment.WebhookSecret)
	router := routes.SetupRouter(appHandlers, tokens)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := workers.NewSubscriptionWorker(repos.Subscription, time.Hour)
	go worker.Start(ctx)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
