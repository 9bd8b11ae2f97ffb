package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"showcase-service/internal/configs"
	"showcase-service/internal/constants"
	"showcase-service/internal/core/port"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// PageRoutes регистрирует HTML-страницы сайта на общем роутере
type PageRoutes interface {
	Routes(r chi.Router)
}

// Handlers - все обработчики JSON API
type Handlers struct {
	Catalog *CatalogHandler
	Tour    *TourHandler
	Contact *ContactHandler
	Hero    *HeroHandler
}

// Server - HTTP-сервер витрины: HTML-страницы и JSON API на одном порту
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
	// cancelStreams отменяет контексты всех запросов, чтобы SSE-потоки завершились до Shutdown
	cancelStreams context.CancelFunc
}

// NewRouter собирает chi-роутер. Вынесен отдельно, чтобы его можно было тестировать через httptest.
func NewRouter(cfg configs.RESTconfig, handlers Handlers, pages PageRoutes, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	// Общие middleware
	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(SessionMiddleware)

	r.Route(constants.APIPrefix, func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", constants.TraceIDHeader},
			ExposedHeaders:   []string{constants.TraceIDHeader},
			AllowCredentials: true,
			MaxAge:           300, // 5 минут
		}))
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			WriteJSONError(w, http.StatusNotFound, "Not found")
		})

		r.Get("/buildings", handlers.Catalog.FindBuildings)
		r.Route("/buildings/{index}", func(r chi.Router) {
			r.Get("/", handlers.Catalog.GetBuildingDetails)

			r.Get("/tour", handlers.Tour.GetTour)
			r.Delete("/tour", handlers.Tour.Close)
			r.Post("/tour/type", handlers.Tour.ChooseType)
			r.Post("/tour/back", handlers.Tour.Back)
			r.Post("/tour/submit", handlers.Tour.Submit)
		})
		r.Get("/filters/options", handlers.Catalog.GetFilterOptions)
		r.Get("/content", handlers.Catalog.GetContent)

		r.Post("/contact/messages", handlers.Contact.SendMessage)

		r.Get("/hero/stream", handlers.Hero.Stream)
		r.Post("/hero/pause", handlers.Hero.Pause)
		r.Post("/hero/resume", handlers.Hero.Resume)
		r.Post("/hero/select", handlers.Hero.Select)
	})

	// Поток и кнопки слайдшоу для самой страницы (тот же origin, без CORS)
	r.Get("/hero/stream", handlers.Hero.Stream)
	r.Post("/hero/pause", handlers.Hero.PauseAndReturn)
	r.Post("/hero/resume", handlers.Hero.ResumeAndReturn)
	r.Post("/hero/select", handlers.Hero.SelectAndReturn)

	if pages != nil {
		pages.Routes(r)
	}

	return r
}

func NewServer(cfg configs.RESTconfig, handlers Handlers, pages PageRoutes, baseLogger port.LoggerPort) *Server {
	baseCtx, cancel := context.WithCancel(context.Background())

	srv := &http.Server{
		Addr:              ":" + cfg.PORT,
		Handler:           NewRouter(cfg, handlers, pages, baseLogger),
		ReadHeaderTimeout: 10 * time.Second,
		// WriteTimeout не задаем: hero-поток держит соединение открытым
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	return &Server{
		httpServer:    srv,
		logger:        baseLogger.WithFields(port.Fields{"component": "rest_server"}),
		cancelStreams: cancel,
	}
}

// Start запускает HTTP-сервер и блокируется до его остановки
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server...", nil)
	// Открытые hero-потоки никогда не становятся idle, поэтому закрываем их явно
	s.cancelStreams()
	return s.httpServer.Shutdown(ctx)
}
