package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/happyinline/inline-backend/api/routes"
	"github.com/happyinline/inline-backend/internal/accounts"
	"github.com/happyinline/inline-backend/internal/auth"
	"github.com/happyinline/inline-backend/internal/customers"
	"github.com/happyinline/inline-backend/internal/enrollment"
	"github.com/happyinline/inline-backend/internal/notifications"
	"github.com/happyinline/inline-backend/internal/profiles"
	"github.com/happyinline/inline-backend/internal/shops"
	"github.com/happyinline/inline-backend/internal/staff"
	"github.com/happyinline/inline-backend/pkg/config"
	"github.com/happyinline/inline-backend/pkg/db"
	"github.com/happyinline/inline-backend/pkg/logger"
	"github.com/happyinline/inline-backend/pkg/mailer"
	"github.com/happyinline/inline-backend/pkg/metrics"
	"github.com/happyinline/inline-backend/pkg/migrate"
	"github.com/happyinline/inline-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	mailClient, err := mailer.New(cfg.SMTP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create mailer", err)
		os.Exit(1)
	}

	profilesRepo := profiles.NewRepository(dbClient.DB())
	shopsRepo := shops.NewRepository(dbClient.DB())
	staffRepo := staff.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		Profiles:    profilesRepo,
		JWTConfig:   cfg.JWT,
		PasswordCfg: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	shopsService, err := shops.NewService(shopsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create shops service", err)
		os.Exit(1)
	}

	provisioner, err := accounts.NewProvisioner(profilesRepo, cfg.Password, cfg.Enrollment)
	if err != nil {
		logg.Error(context.Background(), "failed to create account provisioner", err)
		os.Exit(1)
	}

	lockedCreator, err := staff.NewLockedCreator(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create locked staff creator", err)
		os.Exit(1)
	}

	enrollmentService, err := enrollment.NewService(enrollment.ServiceParams{
		Profiles:    profilesRepo,
		Staff:       staffRepo,
		CappedStaff: lockedCreator,
		Provisioner: provisioner,
		Logger:      logg,
		Config:      cfg.Enrollment,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create enrollment service", err)
		os.Exit(1)
	}

	customersService, err := customers.NewService(profilesRepo, shopsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()), mailClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			registry,
			authService,
			shopsService,
			enrollmentService,
			customersService,
			notificationsService,
		),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
