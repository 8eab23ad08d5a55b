package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/ponto-eletronico/internal"
	"github.com/frahmantamala/ponto-eletronico/internal/auth"
	"github.com/frahmantamala/ponto-eletronico/internal/broker"
	"github.com/frahmantamala/ponto-eletronico/internal/company"
	companyPostgres "github.com/frahmantamala/ponto-eletronico/internal/company/postgres"
	"github.com/frahmantamala/ponto-eletronico/internal/core/events"
	"github.com/frahmantamala/ponto-eletronico/internal/employee"
	employeePostgres "github.com/frahmantamala/ponto-eletronico/internal/employee/postgres"
	"github.com/frahmantamala/ponto-eletronico/internal/timeentry"
	timeentryPostgres "github.com/frahmantamala/ponto-eletronico/internal/timeentry/postgres"
	"github.com/frahmantamala/ponto-eletronico/internal/transport"
	"github.com/frahmantamala/ponto-eletronico/internal/transport/rest"
	"github.com/frahmantamala/ponto-eletronico/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config    *internal.Config
	DB        *sqlx.DB
	Gorm      *gorm.DB
	Bus       *events.EventBus
	Publisher *broker.Publisher
	Router    *chi.Mux
	Logger    *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		deps.close(ctx)
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

// close drains pending event handlers before releasing the broker and the pool.
func (d *Dependencies) close(ctx context.Context) {
	if err := d.Bus.Wait(ctx); err != nil {
		d.Logger.Warn("Pending event handlers abandoned", "error", err)
	}
	if d.Publisher != nil {
		if err := d.Publisher.Close(); err != nil {
			d.Logger.Error("Broker close error", "error", err)
		}
	}
	if err := d.DB.Close(); err != nil {
		d.Logger.Error("Database close error", "error", err)
	}
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config
	lg := deps.Logger
	base := transport.NewBaseHandler(lg)

	companyService := company.NewService(companyPostgres.NewCompanyRepository(deps.Gorm), lg)
	employeeService := employee.NewService(employeePostgres.NewEmployeeRepository(deps.Gorm), lg)
	timeEntryService := timeentry.NewService(timeentryPostgres.NewTimeEntryRepository(deps.Gorm), lg)

	accounts := employee.NewAccountService(employeeService, companyService, deps.Bus, lg)
	ledger := timeentry.NewLedger(timeEntryService, employeeService, deps.Bus, lg)

	routes := rest.Dependencies{
		DB:               deps.DB,
		CompanyHandler:   company.NewHandler(base, companyService),
		EmployeeHandler:  employee.NewHandler(base, accounts),
		TimeEntryHandler: timeentry.NewHandler(base, ledger, cfg.Pagination),
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		RequireAuth:      cfg.Security.RequireAuth,
		Logger:           lg,
	}

	if cfg.Security.JWTAccessSecret != "" && cfg.Security.JWTRefreshSecret != "" {
		authService := auth.NewService(employeeService, auth.NewJWTTokenGenerator(cfg.Security), lg)
		routes.AuthHandler = auth.NewHandler(base, authService)
		routes.Verifier = authService
	}

	rest.RegisterAllRoutes(deps.Router, routes)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	setupRuntime(config)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	bus := events.NewEventBus(lg)
	var publisher *broker.Publisher
	if config.Broker.Enabled {
		publisher, err = broker.NewPublisher(config.Broker.URL, config.Broker.Queue)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to connect to broker: %w", err)
		}
		broker.Forward(bus, publisher, lg)
		lg.Info("forwarding events to broker", "queue", config.Broker.Queue)
	}

	return &Dependencies{
		Config:    config,
		Logger:    lg,
		DB:        db,
		Gorm:      gormDB,
		Bus:       bus,
		Publisher: publisher,
		Router:    chi.NewRouter(),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm runs gorm on top of the pool opened by initDB.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
}
