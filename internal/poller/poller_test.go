package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/signalcraft/outreach/internal/outcome"
)

// stubStore accepts any known message once per event type.
type stubStore struct {
	known map[uuid.UUID]outcome.Record
	flags map[uuid.UUID]map[outcome.EventType]bool

	marked int
}

func newStubStore() *stubStore {
	return &stubStore{
		known: map[uuid.UUID]outcome.Record{},
		flags: map[uuid.UUID]map[outcome.EventType]bool{},
	}
}

func (s *stubStore) add(id uuid.UUID) {
	s.known[id] = outcome.Record{MessageID: id, Segment: "fitness"}
	s.flags[id] = map[outcome.EventType]bool{}
}

func (s *stubStore) MarkEvent(_ context.Context, id uuid.UUID, event outcome.EventType, _ time.Time) (bool, outcome.Record, error) {
	rec, ok := s.known[id]
	if !ok {
		return false, outcome.Record{}, outcome.ErrUnknownMessage
	}
	if s.flags[id][event] {
		return false, outcome.Record{}, nil
	}
	s.flags[id][event] = true
	s.marked++
	return true, rec, nil
}

func (s *stubStore) MergeSegmentQuality(context.Context, string, float64) error       { return nil }
func (s *stubStore) MergeStyleOutcome(context.Context, string, string, bool) error    { return nil }
func (s *stubStore) MergeStyleEvent(context.Context, string, outcome.EventType) error { return nil }
func (s *stubStore) InsertQualitySample(context.Context, string, string, float64) error {
	return nil
}
func (s *stubStore) AccumulateABEvent(context.Context, uuid.UUID, string, outcome.EventType) error {
	return nil
}
func (s *stubStore) ABGroups(context.Context, uuid.UUID) (outcome.Group, outcome.Group, error) {
	return outcome.Group{}, outcome.Group{}, nil
}
func (s *stubStore) UpdateABEvaluation(context.Context, uuid.UUID, outcome.Evaluation) error {
	return nil
}
func (s *stubStore) StyleStats(context.Context, string) ([]outcome.StyleStat, error) {
	return nil, nil
}
func (s *stubStore) QualitySamples(context.Context, string) ([]float64, error) { return nil, nil }

type stubSource struct {
	events []outcome.Event
	err    error
}

func (s stubSource) Pending(context.Context) ([]outcome.Event, error) {
	return s.events, s.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPoll_IngestsAllEvents(t *testing.T) {
	store := newStubStore()
	a, b := uuid.New(), uuid.New()
	store.add(a)
	store.add(b)

	p := New(stubSource{events: []outcome.Event{
		{MessageID: a, Type: outcome.EventOpened},
		{MessageID: b, Type: outcome.EventReplied},
	}}, outcome.NewTracker(store, discard()), discard())

	p.Poll(context.Background())
	if store.marked != 2 {
		t.Errorf("marked %d events, want 2", store.marked)
	}
}

func TestPoll_BadEventDoesNotBlockSiblings(t *testing.T) {
	store := newStubStore()
	good := uuid.New()
	store.add(good)

	p := New(stubSource{events: []outcome.Event{
		{MessageID: uuid.New(), Type: outcome.EventSent}, // unknown message
		{MessageID: good, Type: outcome.EventSent},
	}}, outcome.NewTracker(store, discard()), discard())

	p.Poll(context.Background())
	if store.marked != 1 {
		t.Errorf("marked %d events, want 1 (the known one)", store.marked)
	}
}

func TestPoll_SourceFailureIsLoggedOnly(t *testing.T) {
	store := newStubStore()
	p := New(stubSource{err: errors.New("endpoint down")}, outcome.NewTracker(store, discard()), discard())

	p.Poll(context.Background())
	if store.marked != 0 {
		t.Errorf("marked %d events, want 0", store.marked)
	}
}

func TestHTTPSource_Pending(t *testing.T) {
	id := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"messageId":"` + id.String() + `","eventType":"opened","qualityScore":0.8}]`))
	}))
	defer server.Close()

	events, err := NewHTTPSource(server.URL).Pending(context.Background())
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.MessageID != id || ev.Type != outcome.EventOpened {
		t.Errorf("event = %+v", ev)
	}
	if ev.Quality == nil || *ev.Quality != 0.8 {
		t.Errorf("quality = %v, want 0.8", ev.Quality)
	}
}

func TestHTTPSource_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	if _, err := NewHTTPSource(server.URL).Pending(context.Background()); err == nil {
		t.Error("expected error for non-200 status")
	}
}

func TestHTTPSource_BadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"messageId":"not-a-uuid","eventType":"opened"}]`))
	}))
	defer server.Close()

	if _, err := NewHTTPSource(server.URL).Pending(context.Background()); !errors.Is(err, outcome.ErrInvalidEvent) {
		t.Errorf("error = %v, want ErrInvalidEvent", err)
	}
}
