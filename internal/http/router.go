package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/offiswap/internal/auth"
	"github.com/redmonkez12/offiswap/internal/config"
	"github.com/redmonkez12/offiswap/internal/httputil"
	"github.com/redmonkez12/offiswap/internal/listing"
	"github.com/redmonkez12/offiswap/internal/logging"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handlers groups the feature handlers mounted by the router
type Handlers struct {
	Auth           *auth.Handler
	AuthMiddleware *auth.Middleware
	Listing        *listing.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, store Pinger, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", auth.TokenHeader},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: false,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)               // Security headers on all responses
	r.Use(middleware.Recoverer)          // Recover from panics
	r.Use(middleware.RequestID)          // Add request ID
	r.Use(middleware.RealIP)             // Set RemoteAddr to real IP
	r.Use(logging.RequestLogger(logger)) // Structured logging with request context
	r.Use(middleware.Compress(5))        // Compress responses

	r.Get("/", handleWelcome)
	r.Get("/health", handleHealth(store))

	// Swagger UI - only in development
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled", "path", "/swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})

		r.Route("/listings", func(r chi.Router) {
			r.Get("/", h.Listing.List)

			// static /my wins over /{id} in chi's tree
			r.With(h.AuthMiddleware.RequireAuth).Get("/my", h.Listing.ListMine)

			r.Get("/{id}", h.Listing.Get)

			r.Group(func(r chi.Router) {
				r.Use(h.AuthMiddleware.RequireAuth)
				r.Post("/", h.Listing.Create)
				r.Put("/{id}", h.Listing.Update)
				r.Delete("/{id}", h.Listing.Delete)
			})
		})
	})

	return r
}

// handleWelcome
// @Summary      API banner
// @Tags         health
// @Produce      json
// @Success      200 {object} httputil.MessageResponse
// @Router       / [get]
func handleWelcome(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, httputil.MessageResponse{Message: "Welcome to OffiSwap API!"}, http.StatusOK)
}

// handleHealth checks that the API is running and the store answers
// @Summary      Health check
// @Description  Check if the API is running and the store is reachable
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} httputil.ErrorResponse "Store unreachable"
// @Router       /health [get]
func handleHealth(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.PingContext(ctx); err != nil {
			logging.GetLoggerFromContext(r.Context()).Error("health check failed", "error", err.Error())
			httputil.RespondErrorWithCode(w, "Store unavailable.", httputil.CodeUnavailable, http.StatusServiceUnavailable)
			return
		}

		httputil.RespondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	}
}
