package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	authPostgres "github.com/frahmantamala/hr-management/internal/auth/postgres"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/employee"
	employeePostgres "github.com/frahmantamala/hr-management/internal/employee/postgres"
	"github.com/frahmantamala/hr-management/internal/learningplan"
	planPostgres "github.com/frahmantamala/hr-management/internal/learningplan/postgres"
	"github.com/frahmantamala/hr-management/internal/notification"
	"github.com/frahmantamala/hr-management/internal/performance"
	perfPostgres "github.com/frahmantamala/hr-management/internal/performance/postgres"
	"github.com/frahmantamala/hr-management/internal/transport/rest"
	"github.com/frahmantamala/hr-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
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
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
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
		deps.Logger.Info("received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	lg := deps.Logger
	cfg := deps.Config

	// Event bus and notification subscriber. Mail is log-delivered until a
	// real SMTP sender is wired in.
	eventBus := events.NewEventBus(lg)
	mailer := notification.NewLogMailer(lg)
	sender := notification.Sender{Address: cfg.Mail.FromAddress, Name: cfg.Mail.FromName}
	notification.NewEventHandler(mailer, sender, lg).RegisterHandlers(eventBus)

	// Repositories
	employeeRepo := employeePostgres.NewEmployeeRepository(deps.GormDB)
	planRepo := planPostgres.NewLearningPlanRepository(deps.GormDB)
	reviewRepo := perfPostgres.NewPerformanceRepository(deps.GormDB)
	authRepo := authPostgres.NewRepository(deps.GormDB)

	// Services
	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)

	authService := auth.NewService(authRepo, tokenGen, employeeRepo, cfg.Security.BCryptCost)
	employeeService := employee.NewService(employeeRepo, authService, eventBus, lg)
	planService := learningplan.NewService(planRepo, employeeRepo, lg)
	reviewService := performance.NewService(reviewRepo, employeeRepo, eventBus, lg)

	// Handlers
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	planHandler := learningplan.NewHandler(planService)
	reviewHandler := performance.NewHandler(reviewService)
	dashboardHandler := rest.NewDashboardHandler(employeeService, planService, reviewService, lg)

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		cfg,
		authHandler,
		employeeHandler,
		planHandler,
		reviewHandler,
		dashboardHandler,
		lg,
	)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
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

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
