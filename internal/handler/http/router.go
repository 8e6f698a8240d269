package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/timeqr/timeqr-backend-go/internal/handler/http/middleware"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	employeeHandler EmployeeHandler,
	justificationHandler JustificationHandler,
	scheduleHandler ScheduleHandler,
	reportHandler ReportHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeqr-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListDayGroups)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.Put("/", employeeHandler.Update)
					r.Delete("/", employeeHandler.Deactivate)
					r.Get("/badge", employeeHandler.Badge)
				})
			})

			r.Route("/justifications", func(r chi.Router) {
				r.Get("/", justificationHandler.ListByRange)
				r.Post("/", justificationHandler.Create)
				r.Put("/{id}", justificationHandler.Update)
				r.Delete("/{id}", justificationHandler.Delete)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", scheduleHandler.List)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/period-summary", reportHandler.PeriodSummary)
				r.Get("/general-summary", reportHandler.GeneralSummary)
				r.Get("/missing-checkins", reportHandler.MissingCheckIns)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", dashboardHandler.TodayStats)
			})
		})
	})
	return r
}
