package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/handler/http/middleware"
	"github.com/attendly/attendly-backend-go/internal/handler/http/response"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/attendly/attendly-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterDeps struct {
	DB                *database.DB
	JWTService        jwt.Service
	AuthHandler       AuthHandler
	AttendanceHandler AttendanceHandler
	LeaveHandler      LeaveHandler
	PolicyHandler     PolicyHandler
	ProfileHandler    ProfileHandler
	DashboardHandler  DashboardHandler
	FrontendURL       string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendly"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if !deps.DB.Healthy(r.Context()) {
			response.InternalServerError(w, "Database unreachable")
			return
		}
		response.Success(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.AuthHandler.Register)
			r.Post("/refresh", deps.AuthHandler.RefreshToken)
			r.Post("/logout", deps.AuthHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", deps.AuthHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", deps.AuthHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", deps.AuthHandler.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Patch("/auth/password", deps.AuthHandler.ChangePassword)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", deps.AttendanceHandler.CheckIn)
				r.Post("/check-out", deps.AttendanceHandler.CheckOut)
				r.Get("/my", deps.AttendanceHandler.GetMyAttendance)

				// HR and admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", deps.AttendanceHandler.List)
					r.Get("/{id}", deps.AttendanceHandler.Get)
					r.Patch("/{id}", deps.AttendanceHandler.Update)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", deps.LeaveHandler.Create)
				r.Get("/my", deps.LeaveHandler.GetMyLeaves)

				// HR and admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", deps.LeaveHandler.List)
					r.Get("/{id}", deps.LeaveHandler.Get)
					r.Post("/{id}/approve", deps.LeaveHandler.Approve)
					r.Post("/{id}/reject", deps.LeaveHandler.Reject)
					r.Patch("/{id}/remarks", deps.LeaveHandler.UpdateRemarks)
				})
			})

			r.Route("/policy", func(r chi.Router) {
				r.Get("/", deps.PolicyHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Put("/", deps.PolicyHandler.Update)
				})
			})

			r.Route("/profiles", func(r chi.Router) {
				r.Get("/me", deps.ProfileHandler.GetMe)

				// HR and admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", deps.ProfileHandler.List)
					r.Get("/{id}", deps.ProfileHandler.Get)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionProfileManage))
					r.Patch("/{id}", deps.ProfileHandler.Update)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/attendance", deps.DashboardHandler.AttendanceSummary)
				r.Get("/leaves", deps.DashboardHandler.LeaveSummary)
			})
		})
	})

	return r
}
