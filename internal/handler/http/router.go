package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger             *slog.Logger
	AllowedOrigins     []string
	RateLimitPerMinute int
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	dashboardHandler DashboardHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(metrics.Instrument)

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if opts.RateLimitPerMinute > 0 {
			r.Use(httprate.Limit(opts.RateLimitPerMinute, time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					response.TooManyRequests(w, "Too many requests, slow down")
				}),
			))
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", authHandler.GetProfile)
				r.Patch("/", authHandler.UpdateProfile)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.Get)
				r.Post("/", attendanceHandler.Record)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/", leaveHandler.ListRequests)
				r.Post("/", leaveHandler.CreateRequest)
				r.Get("/balance", leaveHandler.GetBalance)
				r.Get("/{id}", leaveHandler.GetRequest)
			})

			r.Route("/dashboard/employee", func(r chi.Router) {
				r.Get("/", dashboardHandler.GetEmployeeDashboard)
				r.Post("/check-in", dashboardHandler.CheckIn)
			})

			r.Get("/payroll", payrollHandler.List)

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/", attendanceHandler.ListByDay)
					r.Get("/roster", attendanceHandler.Roster)
					r.Get("/export", attendanceHandler.Export)
				})
				r.Patch("/leave/{id}", leaveHandler.ReviewRequest)
				r.Get("/dashboard", dashboardHandler.GetAdminDashboard)
				r.Get("/employees", authHandler.ListEmployees)
				r.Post("/employees", authHandler.CreateEmployee)
				r.Post("/payroll", payrollHandler.Upsert)
			})
		})
	})
	return r
}
