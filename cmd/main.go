package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hydraulic_dashboard/internal/handlers"
	"hydraulic_dashboard/internal/logger"
	"hydraulic_dashboard/internal/ml"
	"hydraulic_dashboard/internal/repository"
	"hydraulic_dashboard/internal/repository/db"
	"hydraulic_dashboard/internal/server"
	"hydraulic_dashboard/internal/service"

	"github.com/spf13/viper"
)

const defaultSimTick = 1 * time.Second

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	detector := ml.NewDetector()
	services := service.NewService(repos, detector)
	apiHandler := handlers.NewHandler(services, log)

	// fixed demo logins (admin/operator/viewer)
	if err := services.SeedDemoUsers(); err != nil {
		log.Fatalw("failed to seed demo users", "err", err)
	}

	// fit the detector up front so health classification is ML-backed from
	// the first tick; threshold bands remain the fallback
	if err := detector.Train(nil); err != nil {
		log.Errorw("initial detector training failed; using threshold fallback", "err", err)
	}

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start simulator (via composed service)
	go services.Simulator.Run(ctx, simTick())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	viper.SetEnvPrefix("hydraulic")
	viper.AutomaticEnv()
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "hydraulic.db")
		dbPath = "hydraulic.db"
	}
	return db.InitDB(dbPath)
}

// simTick returns the simulator tick interval from config, defaulting to 1s.
func simTick() time.Duration {
	if d := viper.GetDuration("sim.tick"); d > 0 {
		return d
	}
	return defaultSimTick
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8000"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
