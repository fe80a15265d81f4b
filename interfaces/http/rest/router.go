// Package rest serves the HTTP API.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"archibridge/application/commands/bus"
	querybus "archibridge/application/queries/bus"
	"archibridge/infrastructure/config"
	"archibridge/interfaces/http/rest/handlers"
	"archibridge/interfaces/http/rest/middleware"
	"archibridge/pkg/auth"
	apperrors "archibridge/pkg/errors"
	"archibridge/pkg/observability"
)

// Audience is the JWT audience the API accepts
const Audience = "archibridge-api"

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	cfg        *config.Config
	metrics    *observability.Collector
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	cfg *config.Config,
	metrics *observability.Collector,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		cfg:        cfg,
		metrics:    metrics,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() (http.Handler, error) {
	errorHandler := apperrors.NewErrorHandler(rt.logger, rt.cfg.IsDevelopment())

	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(errorHandler.Middleware)
	router.Use(middleware.Logger(rt.logger))
	if rt.cfg.Metrics.Enabled {
		router.Use(middleware.Metrics(rt.metrics))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.cfg.Metrics.Enabled {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	var authenticate func(http.Handler) http.Handler
	if rt.cfg.Server.Auth.Enabled {
		validator, err := auth.NewJWTValidator(auth.JWTConfig{
			SecretKey: rt.cfg.Server.Auth.JWTSecret,
			Issuer:    rt.cfg.Server.Auth.JWTIssuer,
			Audience:  []string{Audience},
		})
		if err != nil {
			return nil, err
		}
		authenticate = middleware.Authenticate(validator, rt.logger)
	}

	router.Route("/api/v1", func(r chi.Router) {
		if rt.cfg.Server.RateLimit > 0 {
			r.Use(middleware.RateLimit(auth.NewIPRateLimiter(rt.cfg.Server.RateLimit)))
		}
		if authenticate != nil {
			r.Use(authenticate)
		}

		modelHandler := handlers.NewModelHandler(rt.commandBus, rt.queryBus, errorHandler, rt.logger)
		csvHandler := handlers.NewCSVHandler(rt.commandBus, errorHandler, rt.logger)
		imageHandler := handlers.NewImageHandler(rt.commandBus, rt.queryBus, errorHandler, rt.logger)

		r.Route("/models", func(r chi.Router) {
			r.Post("/", modelHandler.CreateModel)
			r.Get("/", modelHandler.ListModels)
			r.Post("/open", modelHandler.OpenModel)

			r.Route("/{modelID}", func(r chi.Router) {
				r.Get("/", modelHandler.GetModel)
				r.Post("/save", modelHandler.SaveModel)
				r.Post("/undo", modelHandler.Undo)
				r.Post("/redo", modelHandler.Redo)

				r.Post("/import/csv", csvHandler.ImportCSV)
				r.Post("/export/csv", csvHandler.ExportCSV)

				r.Post("/images", imageHandler.AddImage)
				r.Get("/images", imageHandler.ListImages)
				r.Get("/images/*", imageHandler.GetImage)
			})
		})
	})

	return router, nil
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck reports ready once the buses are wired
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if rt.commandBus == nil || rt.queryBus == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"not ready"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
