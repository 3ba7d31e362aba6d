package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/signalcraft/outreach/internal/outcome"
	"github.com/signalcraft/outreach/internal/pipeline"
	"github.com/signalcraft/outreach/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "outreach",
		"status":  "running",
	})
}

// ingestEvent accepts the webhook-shaped lifecycle payload. Duplicate
// deliveries return 202 like first deliveries: the caller cannot tell and
// must not care.
func (s *Server) ingestEvent(w http.ResponseWriter, r *http.Request) {
	var payload outcome.EventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed payload")
		return
	}
	ev, err := payload.Event()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.tracker.Ingest(r.Context(), ev); err != nil {
		switch {
		case errors.Is(err, outcome.ErrInvalidEvent):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, outcome.ErrUnknownMessage):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			s.logger.Error("event ingestion failed", "error", err)
			writeError(w, http.StatusInternalServerError, "ingestion failed")
		}
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) segmentInsights(w http.ResponseWriter, r *http.Request) {
	segment := chi.URLParam(r, "segment")
	report, err := s.tracker.Insights(r.Context(), segment)
	if err != nil {
		s.logger.Error("insight query failed", "segment", segment, "error", err)
		writeError(w, http.StatusInternalServerError, "insight query failed")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) segmentReport(w http.ResponseWriter, r *http.Request) {
	segment := chi.URLParam(r, "segment")
	report, err := s.tracker.Report(r.Context(), segment)
	if err != nil {
		s.logger.Error("segment report failed", "segment", segment, "error", err)
		writeError(w, http.StatusInternalServerError, "segment report failed")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type createABTestRequest struct {
	Name     string `json:"name"`
	VariantA string `json:"variantA"`
	VariantB string `json:"variantB"`
}

func (s *Server) createABTest(w http.ResponseWriter, r *http.Request) {
	var req createABTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed payload")
		return
	}
	if req.Name == "" || req.VariantA == "" || req.VariantB == "" || req.VariantA == req.VariantB {
		writeError(w, http.StatusBadRequest, "name and two distinct variants are required")
		return
	}
	id, err := s.abstore.CreateABTest(r.Context(), req.Name, req.VariantA, req.VariantB)
	if err != nil {
		s.logger.Error("ab test creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "ab test creation failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) getABTest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid test id")
		return
	}
	test, err := s.abstore.GetABTest(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "ab test not found")
			return
		}
		s.logger.Error("ab test fetch failed", "error", err)
		writeError(w, http.StatusInternalServerError, "ab test fetch failed")
		return
	}
	writeJSON(w, http.StatusOK, test)
}

type submitBatchRequest struct {
	Targets []pipeline.Target `json:"targets"`
}

// submitBatch accepts a list of targets and runs them in the background.
// The response carries a batch id for polling results.
func (s *Server) submitBatch(w http.ResponseWriter, r *http.Request) {
	var req submitBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed payload")
		return
	}
	if len(req.Targets) == 0 {
		writeError(w, http.StatusBadRequest, "no targets")
		return
	}
	for i := range req.Targets {
		if req.Targets[i].ID == uuid.Nil {
			req.Targets[i].ID = uuid.New()
		}
	}

	batchID := uuid.New()
	queued := make([]pipeline.UnitResult, len(req.Targets))
	for i, t := range req.Targets {
		queued[i] = pipeline.UnitResult{TargetID: t.ID, Company: t.Company, Status: pipeline.StatusQueued}
	}
	s.mu.Lock()
	s.batches[batchID] = queued
	s.mu.Unlock()

	// Detached from the request context: the batch outlives the HTTP call.
	go func(targets []pipeline.Target) {
		results := s.runner.RunBatch(context.Background(), targets, s.workers)
		s.mu.Lock()
		s.batches[batchID] = results
		s.mu.Unlock()
		s.logger.Info("batch complete", "batch_id", batchID, "units", len(results))
	}(req.Targets)

	writeJSON(w, http.StatusAccepted, map[string]any{
		"batchId": batchID.String(),
		"units":   len(req.Targets),
	})
}

func (s *Server) batchStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid batch id")
		return
	}
	s.mu.Lock()
	results, ok := s.batches[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "batch not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"batchId": id.String(),
		"units":   results,
	})
}
