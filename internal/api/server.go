package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/signalcraft/outreach/internal/outcome"
	"github.com/signalcraft/outreach/internal/pipeline"
	"github.com/signalcraft/outreach/internal/store"
)

// ABStore is the A/B test surface the API needs.
type ABStore interface {
	CreateABTest(ctx context.Context, name, variantA, variantB string) (uuid.UUID, error)
	GetABTest(ctx context.Context, id uuid.UUID) (store.ABTest, error)
}

type Server struct {
	router  *chi.Mux
	port    int
	tracker *outcome.Tracker
	runner  *pipeline.Runner
	abstore ABStore
	workers int
	logger  *slog.Logger

	mu      sync.Mutex
	batches map[uuid.UUID][]pipeline.UnitResult
}

func NewServer(port int, tracker *outcome.Tracker, runner *pipeline.Runner, abstore ABStore, workers int, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:  router,
		port:    port,
		tracker: tracker,
		runner:  runner,
		abstore: abstore,
		workers: workers,
		logger:  logger,
		batches: make(map[uuid.UUID][]pipeline.UnitResult),
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/status", s.status)
	router.Post("/api/v1/outcomes/events", s.ingestEvent)
	router.Get("/api/v1/segments/{segment}/insights", s.segmentInsights)
	router.Get("/api/v1/segments/{segment}/report", s.segmentReport)
	router.Post("/api/v1/abtests", s.createABTest)
	router.Get("/api/v1/abtests/{id}", s.getABTest)
	router.Post("/api/v1/batches", s.submitBatch)
	router.Get("/api/v1/batches/{id}", s.batchStatus)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}
