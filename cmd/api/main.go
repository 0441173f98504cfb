package main

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

	"github.com/cossmil/asistencia-backend/internal/config"
	appHTTP "github.com/cossmil/asistencia-backend/internal/handler/http"
	"github.com/cossmil/asistencia-backend/internal/handler/http/middleware"
	"github.com/cossmil/asistencia-backend/internal/pkg/cron"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
	"github.com/cossmil/asistencia-backend/internal/pkg/jwt"
	"github.com/cossmil/asistencia-backend/internal/pkg/password"
	"github.com/cossmil/asistencia-backend/internal/repository/postgresql"
	assignmentService "github.com/cossmil/asistencia-backend/internal/service/assignment"
	attendanceService "github.com/cossmil/asistencia-backend/internal/service/attendance"
	serviceAuth "github.com/cossmil/asistencia-backend/internal/service/auth"
	"github.com/cossmil/asistencia-backend/internal/service/master"
	"github.com/cossmil/asistencia-backend/internal/service/personnel"
	zoneService "github.com/cossmil/asistencia-backend/internal/service/zone"
	"github.com/go-chi/httplog/v3"
)

const (
	shutdownTimeout      = 15 * time.Second
	housekeepingInterval = time.Minute
)

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "cossmil-asistencia"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.Options{
		MaxConns:       cfg.Database.MaxConns,
		AcquireTimeout: cfg.Database.AcquireTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	areaRepo := postgresql.NewAreaRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	adminRepo := postgresql.NewAdminRepository(db)
	supervisorRepo := postgresql.NewSupervisorRepository(db)
	workerRepo := postgresql.NewWorkerRepository(db)
	zoneRepo := postgresql.NewZoneRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.AdminAccessExpiration)
	if err != nil {
		return err
	}
	hasher := password.NewHasher(cfg.App.BcryptCost)

	authService := serviceAuth.NewAuthService(adminRepo, supervisorRepo, workerRepo, hasher, JWTService)
	masterService := master.NewMasterService(db, areaRepo, roleRepo, supervisorRepo)
	supervisorService := personnel.NewSupervisorService(db, supervisorRepo, areaRepo, hasher)
	workerService := personnel.NewWorkerService(db, workerRepo, supervisorRepo, areaRepo, roleRepo, hasher)
	adminService := personnel.NewAdminService(adminRepo, hasher)
	zoneSvc := zoneService.NewZoneService(zoneRepo)
	assignmentSvc := assignmentService.NewAssignmentService(db, assignmentRepo, workerRepo, zoneRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, assignmentRepo, attendanceService.Options{
		GracePeriod: cfg.Attendance.GracePeriod,
		Location:    cfg.Location(),
	})

	loginLimiter := middleware.NewLoginLimiter(cfg.RateLimit.LoginPerSecond, cfg.RateLimit.LoginBurst)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         logger,
			AllowedOrigins: cfg.App.AllowedOrigins,
			LoginLimiter:   loginLimiter,
			DB:             db,
		},
		JWTService,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(authService),
			Master:     appHTTP.NewMasterHandler(masterService),
			Personnel:  appHTTP.NewPersonnelHandler(supervisorService, workerService, adminService),
			Zone:       appHTTP.NewZoneHandler(zoneSvc),
			Assignment: appHTTP.NewAssignmentHandler(assignmentSvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, cfg.Location()),
		},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler(ctx)
	scheduler.AddJob("login-limiter-sweep", housekeepingInterval, cron.SweepJob("login-limiter-sweep", loginLimiter))
	scheduler.AddJob("db-pool-stats", housekeepingInterval, cron.PoolStatsJob(db))
	scheduler.Start()
	defer scheduler.Stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "timezone", cfg.App.Timezone, "grace_period", cfg.Attendance.GracePeriod)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
