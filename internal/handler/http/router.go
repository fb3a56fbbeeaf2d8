package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jfraser77/hrops-backend/internal/config"
	"github.com/jfraser77/hrops-backend/internal/handler/http/middleware"
	"github.com/jfraser77/hrops-backend/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	terminationHandler TerminationHandler,
	userHandler UserHandler,
	inventoryHandler InventoryHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrops-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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
	r.Use(chiMiddleware.Heartbeat("/api/v1/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/terminations", func(r chi.Router) {
				r.Use(middleware.RequireStaff)

				r.Get("/", terminationHandler.List)
				r.Post("/", terminationHandler.Create)

				// Sweep trigger and record mutations are IT work
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireIT)
					r.Post("/check-overdue", terminationHandler.CheckOverdue)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", terminationHandler.Get)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireIT)
						r.Put("/", terminationHandler.Update)
						r.Delete("/", terminationHandler.Delete)
						r.Post("/return", terminationHandler.MarkReturned)
						r.Post("/archive", terminationHandler.Archive)

						r.Route("/checklist", func(r chi.Router) {
							r.Post("/bulk", terminationHandler.BulkSetChecklist)
							r.Post("/items", terminationHandler.AddChecklistItem)
							r.Put("/items/{itemID}", terminationHandler.SetItemCompletion)
							r.Delete("/items/{itemID}", terminationHandler.RemoveChecklistItem)
						})
					})
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireStaff)

				r.Get("/it-staff", userHandler.ListITStaff)
				r.Get("/{id}", userHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", userHandler.Create)
				})
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Use(middleware.RequireStaff)

				r.Get("/", inventoryHandler.List)

				// Adjustments are IT work
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireIT)
					r.Post("/{userID}/adjust", inventoryHandler.Adjust)
				})
			})
		})
	})

	return r
}
