package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rahulmehta/fieldcrm-backend/api/routes"
	"github.com/rahulmehta/fieldcrm-backend/internal/accounts"
	"github.com/rahulmehta/fieldcrm-backend/internal/auth"
	"github.com/rahulmehta/fieldcrm-backend/internal/employees"
	"github.com/rahulmehta/fieldcrm-backend/internal/expenses"
	"github.com/rahulmehta/fieldcrm-backend/internal/locations"
	"github.com/rahulmehta/fieldcrm-backend/internal/masters"
	"github.com/rahulmehta/fieldcrm-backend/internal/salaries"
	"github.com/rahulmehta/fieldcrm-backend/internal/territory"
	"github.com/rahulmehta/fieldcrm-backend/pkg/config"
	"github.com/rahulmehta/fieldcrm-backend/pkg/db"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
	"github.com/rahulmehta/fieldcrm-backend/pkg/metrics"
	"github.com/rahulmehta/fieldcrm-backend/pkg/migrate"
	"github.com/rahulmehta/fieldcrm-backend/pkg/otp"
	"github.com/rahulmehta/fieldcrm-backend/pkg/places"
	"github.com/rahulmehta/fieldcrm-backend/pkg/postal"
	redisclient "github.com/rahulmehta/fieldcrm-backend/pkg/redis"
	"github.com/rahulmehta/fieldcrm-backend/pkg/sms"
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

	redisClient, err := redisclient.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	outbound := metrics.NewOutboundMetrics(registry)

	otpStore, err := otp.NewStore(redisClient, cfg.OTP)
	if err != nil {
		logg.Error(context.Background(), "failed to create otp store", err)
		os.Exit(1)
	}

	smsSender, err := sms.New(cfg.SMS, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create sms sender", err)
		os.Exit(1)
	}

	postalClient := postal.NewClient(
		postal.WithBaseURL(cfg.Postal.BaseURL),
		postal.WithTimeout(cfg.Postal.Timeout),
		postal.WithMetrics(outbound),
	)

	placesClient, err := places.NewClient(cfg.GoogleMaps.APIKey,
		places.WithSearchRadius(cfg.GoogleMaps.SearchRadius),
		places.WithCallInterval(cfg.GoogleMaps.CallInterval),
		places.WithMetrics(outbound),
		places.WithLogger(logg),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create places client", err)
		os.Exit(1)
	}

	employeesRepo := employees.NewRepository(dbClient.DB())
	mastersRepo := masters.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:  employeesRepo,
		RoleRepo:  mastersRepo,
		OTPStore:  otpStore,
		SMSSender: smsSender,
		JWTConfig: cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	employeesService, err := employees.NewService(employeesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create employees service", err)
		os.Exit(1)
	}

	mastersService, err := masters.NewService(masters.ServiceParams{
		Repo:   mastersRepo,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create masters service", err)
		os.Exit(1)
	}

	locationsService, err := locations.NewService(locations.ServiceParams{
		Repo:   locations.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create locations service", err)
		os.Exit(1)
	}

	accountsService, err := accounts.NewService(accounts.ServiceParams{
		Repo:      accounts.NewRepository(dbClient.DB()),
		Sequencer: accounts.NewRedisSequencer(redisClient),
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create accounts service", err)
		os.Exit(1)
	}

	salariesService, err := salaries.NewService(salaries.ServiceParams{
		Repo:      salaries.NewRepository(dbClient.DB()),
		Employees: employeesRepo,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create salaries service", err)
		os.Exit(1)
	}

	expensesService, err := expenses.NewService(expenses.ServiceParams{
		Repo:   expenses.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create expenses service", err)
		os.Exit(1)
	}

	territoryService, err := territory.NewService(territory.ServiceParams{
		Repo:     territory.NewRepository(dbClient.DB()),
		Salesmen: employeesRepo,
		Postal:   postalClient,
		Places:   placesClient,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create territory service", err)
		os.Exit(1)
	}

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
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, routes.Services{
			Auth:      authService,
			Employees: employeesService,
			Masters:   mastersService,
			Locations: locationsService,
			Accounts:  accountsService,
			Salaries:  salariesService,
			Expenses:  expensesService,
			Territory: territoryService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
