package http

import (
	"log/slog"
	"net/http"

	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/cossmil/asistencia-backend/internal/handler/http/middleware"
	"github.com/cossmil/asistencia-backend/internal/handler/http/response"
	"github.com/cossmil/asistencia-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	LoginLimiter   *middleware.LoginLimiter
	DB             Pinger
}

type Handlers struct {
	Auth       AuthHandler
	Master     MasterHandler
	Personnel  PersonnelHandler
	Zone       ZoneHandler
	Assignment AssignmentHandler
	Attendance AttendanceHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	limiter := cfg.LoginLimiter
	if limiter == nil {
		limiter = middleware.NewLoginLimiter(1, 5)
	}

	// Requires authentication
	authenticated := func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService))
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.DB != nil {
			r.Get("/health", HealthHandler(cfg.DB))
		}

		r.Route("/admin", func(r chi.Router) {
			r.With(limiter.Handler).Post("/login", h.Auth.LoginAdmin)

			r.Group(func(r chi.Router) {
				authenticated(r)
				r.Use(middleware.AdminOnly)

				r.Get("/me", h.Personnel.Me)
				r.Get("/", h.Personnel.ListAdmins)
				r.Post("/", h.Personnel.CreateAdmin)
				r.Get("/{id}", h.Personnel.GetAdmin)
				r.Put("/{id}", h.Personnel.UpdateAdmin)
				r.Delete("/{id}", h.Personnel.DeleteAdmin)
			})
		})

		supervisorRoutes := func(r chi.Router) {
			r.With(limiter.Handler).Post("/login", h.Auth.LoginSupervisor)

			r.Group(func(r chi.Router) {
				authenticated(r)
				r.Use(middleware.RequireStaff)

				r.Get("/", h.Personnel.ListSupervisors)
				r.Get("/area/{areaId}", h.Personnel.ListSupervisorsByArea)
				r.Get("/{id}", h.Personnel.GetSupervisor)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Personnel.CreateSupervisor)
					r.Put("/{id}", h.Personnel.UpdateSupervisor)
					r.Delete("/{id}", h.Personnel.DeleteSupervisor)
				})
			})
		}
		r.Route("/personal-area", supervisorRoutes)
		r.Route("/personal", supervisorRoutes)

		r.Route("/trabajadores", func(r chi.Router) {
			r.With(limiter.Handler).Post("/login", h.Auth.LoginWorker)

			r.Group(func(r chi.Router) {
				authenticated(r)

				r.With(middleware.RequireRole(auth.KindWorker, auth.KindAdmin)).
					Put("/change-password", h.Personnel.ChangeWorkerPassword)
				r.Get("/{id}", h.Personnel.GetWorker)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireStaff)
					r.Get("/", h.Personnel.ListWorkers)
					r.Get("/area/{areaId}", h.Personnel.ListWorkersByArea)
					r.Get("/personal-area/{personalAreaId}", h.Personnel.ListWorkersBySupervisor)
					r.Post("/", h.Personnel.CreateWorker)
					r.Put("/{id}", h.Personnel.UpdateWorker)
					r.Delete("/{id}", h.Personnel.DeleteWorker)
				})
			})
		})

		r.Group(func(r chi.Router) {
			authenticated(r)

			r.Route("/areas", func(r chi.Router) {
				r.Get("/", h.Master.ListAreas)
				r.Get("/{id}", h.Master.GetArea)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Master.CreateArea)
					r.Put("/{id}", h.Master.UpdateArea)
					r.Delete("/{id}", h.Master.DeleteArea)
				})
			})

			r.Route("/roles", func(r chi.Router) {
				r.Get("/", h.Master.ListRoles)
				r.Get("/area/{areaId}", h.Master.ListRolesByArea)
				r.Get("/personal-area/{personalAreaId}", h.Master.ListRolesBySupervisor)
				r.Get("/{id}", h.Master.GetRole)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireStaff)
					r.Post("/", h.Master.CreateRole)
					r.Put("/{id}", h.Master.UpdateRole)
					r.Delete("/{id}", h.Master.DeleteRole)
				})
			})

			r.Route("/ubicaciones", func(r chi.Router) {
				r.Get("/", h.Zone.List)
				r.Get("/{id}", h.Zone.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireStaff)
					r.Post("/", h.Zone.Create)
					r.Put("/{id}", h.Zone.Update)
					r.Delete("/{id}", h.Zone.Delete)
				})
			})

			assignmentRoutes := func(r chi.Router) {
				r.Get("/", h.Assignment.List)
				r.Get("/{id}", h.Assignment.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireStaff)
					r.Post("/", h.Assignment.Create)
					r.Put("/{id}", h.Assignment.Update)
					r.Delete("/{id}", h.Assignment.Delete)
				})
			}
			r.Route("/asignaciones", assignmentRoutes)
			r.Route("/assignments", assignmentRoutes)

			r.Route("/asistencias", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Get("/{id}", h.Attendance.Get)
				r.With(middleware.RequireRole(auth.KindWorker)).Post("/", h.Attendance.Mark)
			})
		})
	})

	return r
}
