package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/signalcraft/outreach/internal/outcome"
)

// EventSource is the pull-mode outcome event collaborator.
type EventSource interface {
	Pending(ctx context.Context) ([]outcome.Event, error)
}

// HTTPSource pulls pending events from a JSON endpoint.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *HTTPSource) Pending(ctx context.Context) ([]outcome.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch pending events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("event source status %d: %s", resp.StatusCode, string(body))
	}

	var payloads []outcome.EventPayload
	if err := json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	events := make([]outcome.Event, 0, len(payloads))
	for _, p := range payloads {
		ev, err := p.Event()
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// Poller periodically drains the pull-mode event source into the tracker.
// Duplicate deliveries across polls are safe: the tracker's monotonic flags
// make re-ingestion a no-op.
type Poller struct {
	cron    *cron.Cron
	source  EventSource
	tracker *outcome.Tracker
	logger  *slog.Logger
}

func New(source EventSource, tracker *outcome.Tracker, logger *slog.Logger) *Poller {
	return &Poller{
		cron:    cron.New(),
		source:  source,
		tracker: tracker,
		logger:  logger,
	}
}

// Start registers the poll job with a standard cron expression and starts
// the scheduler.
func (p *Poller) Start(schedule string) error {
	if _, err := p.cron.AddFunc(schedule, func() {
		p.Poll(context.Background())
	}); err != nil {
		return fmt.Errorf("register poll job: %w", err)
	}
	p.cron.Start()
	p.logger.Info("outcome poller started", "schedule", schedule)
	return nil
}

// Stop halts the scheduler and waits for a running poll to finish.
func (p *Poller) Stop() {
	<-p.cron.Stop().Done()
}

// Poll drains the source once. Each event is ingested independently: a bad
// event is logged and skipped, never blocking its siblings.
func (p *Poller) Poll(ctx context.Context) {
	events, err := p.source.Pending(ctx)
	if err != nil {
		p.logger.Error("poll failed", "error", err)
		return
	}
	for _, ev := range events {
		if err := p.tracker.Ingest(ctx, ev); err != nil {
			p.logger.Error("event ingestion failed",
				"message_id", ev.MessageID,
				"event", string(ev.Type),
				"error", err,
			)
		}
	}
	if len(events) > 0 {
		p.logger.Info("poll complete", "events", len(events))
	}
}
