// Package httpapi exposes the localized disaster information API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TTMK7777/Japan-Disaster-Alert/internal/jma"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/quake"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/shelter"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/translate"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/warning"
)

const (
	serviceName    = "japan-disaster-alert"
	serviceVersion = "1.0.0"
)

type feedClient interface {
	Warnings(ctx context.Context, areaCode string) (*jma.WarningReport, error)
	WeatherOverview(ctx context.Context, areaCode string) (*jma.Overview, error)
}

type quakeLister interface {
	Recent(ctx context.Context, limit int) ([]quake.Earthquake, error)
}

type specialLister interface {
	SpecialWarnings(ctx context.Context, lang string) []warning.Alert
}

type Server struct {
	resolver   *translate.Resolver
	feeds      feedClient
	quakes     quakeLister
	classifier *warning.Classifier
	aggregator specialLister
	shelters   *shelter.Registry

	router chi.Router
	server *http.Server
}

type Option func(*Server)

func WithShelters(registry *shelter.Registry) Option {
	return func(s *Server) {
		s.shelters = registry
	}
}

func NewServer(
	resolver *translate.Resolver,
	feeds feedClient,
	quakes quakeLister,
	classifier *warning.Classifier,
	aggregator specialLister,
	opts ...Option,
) *Server {
	s := &Server{
		resolver:   resolver,
		feeds:      feeds,
		quakes:     quakes,
		classifier: classifier,
		aggregator: aggregator,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/earthquakes", s.handleEarthquakes)
		r.Get("/weather/{areaCode}", s.handleWeather)
		r.Get("/alerts", s.handleAlerts)
		r.Get("/warnings/special", s.handleSpecialWarnings)
		r.Post("/translate", s.handleTranslate)
		r.Get("/shelters", s.handleShelters)
		r.Get("/shelters/types", s.handleShelterTypes)
		r.Get("/languages", s.handleLanguages)
	})

	s.router = r
}
