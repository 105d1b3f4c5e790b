package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/hris-core-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-core-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-core-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-core-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hris-core-go/internal/service/dashboard"
	leaveService "github.com/cmlabs-hris/hris-core-go/internal/service/leave"
	payrollService "github.com/cmlabs-hris/hris-core-go/internal/service/payroll"
	userService "github.com/cmlabs-hris/hris-core-go/internal/service/user"
	"github.com/go-chi/httplog/v3"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-core"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	cal := calendar.New(cfg.App.Timezone)

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	userSvc := userService.NewUserService(userRepo, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, cal)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, userRepo, leaveService.Config{
		YearlyAllowance: cfg.Leave.YearlyAllowance,
		ReviewPolicy:    cfg.Leave.ReviewPolicy,
	})
	dashboardSvc := dashboardService.NewDashboardService(userRepo, attendanceRepo, leaveRequestRepo, attendanceSvc, leaveSvc, cal)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, userRepo, attendanceRepo, leaveRequestRepo, cal)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:             logger,
			AllowedOrigins:     cfg.HTTP.AllowedOrigins,
			RateLimitPerMinute: cfg.HTTP.RateLimitPerMinute,
		},
		JWTService,
		appHTTP.NewAuthHandler(userSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
	)

	slog.Info("configuration loaded",
		"timezone", cfg.App.Timezone.String(),
		"leave_review_policy", cfg.Leave.ReviewPolicy,
		"leave_yearly_allowance", cfg.Leave.YearlyAllowance,
	)
	return appHTTP.Serve(ctx, fmt.Sprintf(":%d", cfg.App.Port), router, cfg.HTTP.ShutdownTimeout)
}
