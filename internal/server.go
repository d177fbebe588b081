// Package internal is the HTTP surface of the inventory service.
package internal

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"techtrack-api/internal/assistant"
	"techtrack-api/internal/config"
	"techtrack-api/internal/handlers"
	"techtrack-api/internal/inventory"
)

type Server struct {
	Store    *inventory.Store
	Sessions *assistant.Sessions
	Analyst  assistant.Analyst
	Router   *chi.Mux
	Metrics  *Metrics
	Logger   *zap.Logger

	// Now is the clock used for warranty expiry; tests pin it
	Now func() time.Time

	cfg *config.Config
}

// NewServer wires the router. A nil metrics creates a private set; a nil
// logger discards request logs.
func NewServer(cfg *config.Config, store *inventory.Store, analyst assistant.Analyst, metrics *Metrics, logger *zap.Logger) *Server {
	if metrics == nil {
		metrics = NewMetrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := metrics.TrackInventory(store); err != nil {
		logger.Warn("inventory gauge not registered", zap.Error(err))
	}

	s := &Server{
		Store:    store,
		Sessions: assistant.NewSessions(),
		Analyst:  analyst,
		Router:   chi.NewRouter(),
		Metrics:  metrics,
		Logger:   logger,
		Now:      time.Now,
		cfg:      cfg,
	}

	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(RequestLogger(logger))
	if cfg.EnableMetrics {
		s.Router.Use(s.Metrics.Middleware())
	}

	s.Router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	if cfg.EnableMetrics {
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}

	s.mountRoutes(s.Router)
	return s
}

func (s *Server) mountRoutes(r chi.Router) {
	r.Get("/dashboard", s.getDashboard)

	r.Route("/assets", func(r chi.Router) {
		r.Get("/", s.listAssets)
		r.Post("/", s.createAsset)
		r.Get("/draft", s.getDraft)
		r.Get("/export.xlsx", s.exportAssets)
		r.Delete("/{id}", s.deleteAsset)
	})

	importsHandler := handlers.NewImportsHandler(s.Store, s.Logger)
	r.Post("/imports/excel", importsHandler.UploadExcel)

	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware)
		r.Get("/assistant/messages", s.listMessages)
		r.Post("/assistant/messages", s.postMessage)
	})
}

// ServeHTTP lets the server be used directly as a handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
