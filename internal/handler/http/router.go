package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-portal/internal/config"
	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

const version = "v1.0.0"

// NewLogger returns the JSON logger used for application and request logs.
func NewLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-portal"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	)
}

func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	JWTService jwt.Service,
	store session.Store,
	sessionHandler SessionHandler,
	dashboardHandler DashboardHandler,
	attendanceHandler AttendanceHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
		// Event streams stay open for minutes; log them on close only
		Skip: func(req *http.Request, respStatus int) bool {
			return req.URL.Path == "/api/v1/attendance/events" && respStatus == http.StatusOK
		},
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	authenticated := chi.Chain(
		chiMiddleware.AllowContentType("application/json"),
		jwtauth.Verifier(JWTService.JWTAuth()),
		middleware.AuthRequired(JWTService),
		middleware.TouchSession(store, cfg.Session.TTL),
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/roles", ListRoles)

		r.Route("/session", func(r chi.Router) {
			r.Post("/", sessionHandler.Start)

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(authenticated...)
				r.Get("/", sessionHandler.Current)
				r.Delete("/", sessionHandler.End)
				r.Get("/stream-token", sessionHandler.StreamToken)
			})
		})

		r.With(authenticated...).Get("/dashboard", dashboardHandler.GetDashboard)

		r.Route("/attendance", func(r chi.Router) {
			// Authenticated by a stream token in the query string
			r.Get("/events", attendanceHandler.Events)

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(authenticated...)
				r.Get("/", attendanceHandler.Get)
				r.Post("/punch-in", attendanceHandler.PunchIn)
				r.Post("/punch-out", attendanceHandler.PunchOut)
				r.Get("/timesheet.pdf", attendanceHandler.Timesheet)
			})
		})
	})
	return r
}
