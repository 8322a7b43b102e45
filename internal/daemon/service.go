// Package daemon provides the long-running metrics poller and its HTTP API.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/chatpulse/internal/model"
	"github.com/theirongolddev/chatpulse/internal/panel"
	"github.com/theirongolddev/chatpulse/internal/source"
	"github.com/theirongolddev/chatpulse/internal/store"

	"github.com/sirupsen/logrus"
)

// Config controls the daemon runtime behavior.
type Config struct {
	InputPath    string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	Options      panel.Options

	// HistoryPath enables snapshot recording when non-empty.
	HistoryPath string
	HistoryKeep int

	Logger *logrus.Logger
}

// Delta captures metric changes between polls.
type Delta struct {
	TotalMessages       int64   `json:"total_messages"`
	AverageResponseTime float64 `json:"average_response_time"`
	ResolvedChats       int64   `json:"resolved_chats"`
	ActiveAdmins        int64   `json:"active_admins"`
	SatisfactionChanged bool    `json:"satisfaction_changed"`
	TierChanged         bool    `json:"tier_changed"`
}

// Event types.
const (
	EventSnapshot = "snapshot"
	EventChanged  = "metrics_changed"
)

// Event is emitted whenever the metrics input changes.
type Event struct {
	ID        int64          `json:"id"`
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Snapshot  model.Snapshot `json:"snapshot"`
	Tier      string         `json:"tier"`
	Delta     Delta          `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time       `json:"started_at"`
	LastPollAt      time.Time       `json:"last_poll_at"`
	PollIntervalSec int             `json:"poll_interval_sec"`
	PollCount       int64           `json:"poll_count"`
	InputPath       string          `json:"input_path"`
	Current         *model.Snapshot `json:"current,omitempty"`
	Tier            string          `json:"tier,omitempty"`
	Recorded        int64           `json:"recorded"`
	LastError       string          `json:"last_error,omitempty"`
	EventCount      int             `json:"event_count"`
	SubscriberCount int             `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg     Config
	log     logrus.FieldLogger
	history *store.History

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	recorded    int64
	lastError   string
	hasSnapshot bool
	snapshot    model.Snapshot
	layout      panel.Layout
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 15 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return &Service{
		cfg:       cfg,
		log:       logger.WithField("component", "daemon"),
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/panel", s.handlePanel)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	return mux
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.HistoryPath != "" {
		h, err := store.Open(s.cfg.HistoryPath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		s.history = h
		defer func() { _ = h.Close() }()
	}

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	start := time.Now()
	snap, err := source.LoadSnapshot(s.cfg.InputPath)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = time.Now()
		s.pollCount++
		s.mu.Unlock()
		s.log.WithError(err).Warn("poll failed")
		return
	}

	layout := panel.Build(snap.Metrics, s.cfg.Options)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.layout = layout
	s.lastPollAt = time.Now()
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      EventSnapshot,
			Timestamp: s.lastPollAt,
			Snapshot:  snap,
			Tier:      layout.Performance.Tier.String(),
		}
		publish = true
	} else if !prev.Metrics.Equal(snap.Metrics) {
		delta := diffMetrics(prev.Metrics, snap.Metrics)
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      EventChanged,
			Timestamp: s.lastPollAt,
			Snapshot:  snap,
			Tier:      layout.Performance.Tier.String(),
			Delta:     delta,
		}
		publish = true
	}
	s.mu.Unlock()

	if !publish {
		s.log.WithField("elapsed", time.Since(start)).Debug("poll: unchanged")
		return
	}

	s.publishEvent(ev)
	s.recordSnapshot(snap)
	s.log.WithFields(logrus.Fields{
		"event":    ev.Type,
		"messages": snap.Metrics.TotalMessages,
		"tier":     ev.Tier,
		"elapsed":  time.Since(start),
	}).Info("metrics updated")
}

// recordSnapshot stores snap unless the history already ends with the same
// metrics, which is the case after a daemon restart.
func (s *Service) recordSnapshot(snap model.Snapshot) {
	if s.history == nil {
		return
	}
	latest, err := s.history.Latest()
	switch {
	case err == nil && latest.Metrics.Equal(snap.Metrics):
		s.log.WithField("id", latest.ID).Debug("history already current")
		return
	case err != nil && !errors.Is(err, store.ErrNoSnapshots):
		s.log.WithError(err).Error("read latest snapshot")
		return
	}
	if _, err := s.history.Record(snap); err != nil {
		s.log.WithError(err).Error("record snapshot")
		return
	}
	if _, err := s.history.Prune(s.cfg.HistoryKeep); err != nil {
		s.log.WithError(err).Warn("prune history")
	}
	s.mu.Lock()
	s.recorded++
	s.mu.Unlock()
}

func diffMetrics(prev, curr model.MetricsInput) Delta {
	return Delta{
		TotalMessages:       curr.TotalMessages - prev.TotalMessages,
		AverageResponseTime: minutesDelta(prev.AverageResponseTime, curr.AverageResponseTime),
		ResolvedChats:       curr.ResolvedChats - prev.ResolvedChats,
		ActiveAdmins:        curr.ActiveAdmins - prev.ActiveAdmins,
		SatisfactionChanged: !satisfactionEqual(prev.CustomerSatisfaction, curr.CustomerSatisfaction),
		TierChanged:         panel.Classify(prev.AverageResponseTime) != panel.Classify(curr.AverageResponseTime),
	}
}

// minutesDelta is zero when either side is NaN so events stay
// JSON-encodable; TierChanged still reports the move.
func minutesDelta(prev, curr float64) float64 {
	if math.IsNaN(prev) || math.IsNaN(curr) {
		return 0
	}
	return curr - prev
}

func satisfactionEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		InputPath:       s.cfg.InputPath,
		Recorded:        s.recorded,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
	if s.hasSnapshot {
		snap := s.snapshot
		st.Current = &snap
		st.Tier = s.layout.Performance.Tier.String()
	}
	return st
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handlePanel(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	ok := s.hasSnapshot
	layout := s.layout
	s.mu.RUnlock()

	if !ok {
		http.Error(w, "no metrics loaded yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(layout)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	if st := s.snapshotStatus(); st.Current != nil {
		writeSSE(w, Event{
			Type:      EventSnapshot,
			Timestamp: time.Now(),
			Snapshot:  *st.Current,
			Tier:      st.Tier,
		})
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
