package wire

import (
	"net/http"

	"filmorate/internal/adaptor"
	"filmorate/internal/data/repository"
	"filmorate/internal/usecase"
	"filmorate/pkg/middleware"
	"filmorate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and the router
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) (*App, error) {
	service, err := usecase.NewService(repo, config, logger)
	if err != nil {
		return nil, err
	}
	handler := adaptor.NewHandler(service, config, logger)

	return &App{
		Router: setupRouter(handler, config, logger),
	}, nil
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware; request id first so every later layer can log it
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(config.HTTP.CORSAllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(config.HTTP.RateLimitRequests, config.HTTP.RateLimitWindow))

		wireFilm(r, handler.Film)
		wireUser(r, handler.User)
		wireReference(r, handler.Genre, handler.Mpa)
	})

	return r
}
