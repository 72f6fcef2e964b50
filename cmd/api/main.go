package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JGP1992/theitaliancorner-sub001/api/controllers"
	"github.com/JGP1992/theitaliancorner-sub001/api/routes"
	"github.com/JGP1992/theitaliancorner-sub001/internal/audit"
	"github.com/JGP1992/theitaliancorner-sub001/internal/auth"
	"github.com/JGP1992/theitaliancorner-sub001/internal/catalog"
	"github.com/JGP1992/theitaliancorner-sub001/internal/customers"
	"github.com/JGP1992/theitaliancorner-sub001/internal/deliveries"
	"github.com/JGP1992/theitaliancorner-sub001/internal/production"
	"github.com/JGP1992/theitaliancorner-sub001/internal/productiontasks"
	"github.com/JGP1992/theitaliancorner-sub001/internal/stocktakes"
	"github.com/JGP1992/theitaliancorner-sub001/internal/stores"
	"github.com/JGP1992/theitaliancorner-sub001/internal/users"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/auth/session"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/config"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/logger"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/metrics"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/migrate"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	loc, err := cfg.App.Location()
	if err != nil {
		logg.Error(context.Background(), "invalid business time zone", err)
		os.Exit(1)
	}

	created, err := users.EnsureBootstrapAdmin(context.Background(), dbClient, cfg.Bootstrap, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap admin user", err)
		os.Exit(1)
	}
	if created {
		logg.Info(context.Background(), "bootstrap admin created")
	}

	services, err := buildServices(cfg, logg, dbClient, sessionManager, loc)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

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
		Handler: routes.NewRouter(cfg, logg, routes.Infra{
			Sessions: sessionManager,
			Redis:    redisClient,
			Checks: map[string]controllers.Pinger{
				"db":    dbClient,
				"redis": redisClient,
			},
			HTTPMetrics:    metrics.NewHTTPMetrics(registry),
			MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}, services),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-sigCtx.Done():
		logg.Info(ctx, "api server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
		}
	}
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, sessions *session.Manager, loc *time.Location) (routes.Services, error) {
	conn := dbClient.DB()
	auditRepo := audit.NewRepository(conn)
	recorder := audit.NewRecorder(auditRepo, logg)
	userRepo := users.NewRepository(conn)

	var (
		out routes.Services
		err error
	)

	if out.Auth, err = auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessions,
		Audit:          recorder,
		Logger:         logg,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	}); err != nil {
		return out, err
	}
	if out.Users, err = users.NewService(users.ServiceParams{
		Repo:           userRepo,
		Audit:          recorder,
		PasswordConfig: cfg.Password,
	}); err != nil {
		return out, err
	}
	if out.Stores, err = stores.NewService(stores.NewRepository(conn), recorder); err != nil {
		return out, err
	}
	if out.Catalog, err = catalog.NewService(catalog.NewRepository(conn), recorder); err != nil {
		return out, err
	}
	if out.Customers, err = customers.NewService(customers.NewRepository(conn), recorder); err != nil {
		return out, err
	}
	if out.Stocktakes, err = stocktakes.NewService(stocktakes.ServiceParams{
		Repo:  stocktakes.NewRepository(conn),
		Tx:    dbClient,
		Audit: recorder,
	}); err != nil {
		return out, err
	}
	if out.Deliveries, err = deliveries.NewService(deliveries.ServiceParams{
		Repo:   deliveries.NewRepository(conn),
		Tx:     dbClient,
		Audit:  recorder,
		Logger: logg,
	}); err != nil {
		return out, err
	}
	if out.Production, err = production.NewService(production.NewRepository(conn), loc); err != nil {
		return out, err
	}
	if out.ProductionTasks, err = productiontasks.NewService(productiontasks.ServiceParams{
		Repo:   productiontasks.NewRepository(conn),
		Audit:  recorder,
		Logger: logg,
	}); err != nil {
		return out, err
	}
	if out.Audit, err = audit.NewService(auditRepo); err != nil {
		return out, err
	}
	return out, nil
}
