package daemon

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/chatpulse/internal/model"
	"github.com/theirongolddev/chatpulse/internal/panel"
	"github.com/theirongolddev/chatpulse/internal/store"
)

func TestDiffMetrics(t *testing.T) {
	prev := model.MetricsInput{
		TotalMessages:       100,
		AverageResponseTime: 4,
		ResolvedChats:       30,
		ActiveAdmins:        3,
	}
	curr := model.MetricsInput{
		TotalMessages:        130,
		AverageResponseTime:  6.5,
		ResolvedChats:        36,
		ActiveAdmins:         3,
		CustomerSatisfaction: model.Satisfaction(0),
	}

	delta := diffMetrics(prev, curr)
	if delta.TotalMessages != 30 {
		t.Fatalf("TotalMessages delta = %d, want 30", delta.TotalMessages)
	}
	if delta.ResolvedChats != 6 {
		t.Fatalf("ResolvedChats delta = %d, want 6", delta.ResolvedChats)
	}
	if math.Abs(delta.AverageResponseTime-2.5) > 1e-9 {
		t.Fatalf("AverageResponseTime delta = %.2f, want 2.50", delta.AverageResponseTime)
	}
	if !delta.SatisfactionChanged {
		t.Fatal("absent -> 0 satisfaction should count as a change")
	}
	if !delta.TierChanged {
		t.Fatal("4 -> 6.5 minutes crosses the excellent/good boundary")
	}
	if delta == (Delta{}) {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if got := diffMetrics(curr, curr); got != (Delta{}) {
		t.Fatalf("identical inputs delta = %+v, want zero", got)
	}

	nan := model.MetricsInput{AverageResponseTime: math.NaN()}
	if got := diffMetrics(nan, nan); got != (Delta{}) {
		t.Fatalf("NaN -> NaN delta = %+v, want zero", got)
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		InputPath:    "metrics.json",
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func writeMetrics(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestPollOnceEmitsOnChangeAndRecords(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "metrics.json")
	writeMetrics(t, input, `{"totalMessages":1234,"averageResponseTime":7,"resolvedChats":300,"activeAdmins":5}`)

	h, err := store.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = h.Close() }()

	s := New(Config{InputPath: input, Options: panel.DefaultOptions()})
	s.history = h

	s.pollOnce()
	s.pollOnce() // unchanged: no new event
	writeMetrics(t, input, `{"totalMessages":1300,"averageResponseTime":7,"resolvedChats":300,"activeAdmins":5,"customerSatisfaction":92}`)
	s.pollOnce()

	st := s.snapshotStatus()
	if st.PollCount != 3 {
		t.Errorf("PollCount = %d, want 3", st.PollCount)
	}
	if st.EventCount != 2 {
		t.Fatalf("EventCount = %d, want 2", st.EventCount)
	}
	if st.Recorded != 2 {
		t.Errorf("Recorded = %d, want 2", st.Recorded)
	}
	if st.Tier != "good" {
		t.Errorf("Tier = %q, want good", st.Tier)
	}
	if n, _ := h.Count(); n != 2 {
		t.Errorf("history rows = %d, want 2", n)
	}

	s.mu.RLock()
	second := s.events[1]
	s.mu.RUnlock()
	if second.Type != EventChanged || second.Delta.TotalMessages != 66 || !second.Delta.SatisfactionChanged {
		t.Errorf("second event = %+v", second)
	}
}

func TestPollOnceRecordsError(t *testing.T) {
	s := New(Config{InputPath: filepath.Join(t.TempDir(), "missing.json")})
	s.pollOnce()

	st := s.snapshotStatus()
	if st.LastError == "" {
		t.Fatal("LastError should be set for a missing input")
	}
	if st.Current != nil {
		t.Fatal("Current should be nil before a successful poll")
	}
}

func TestHandlePanel(t *testing.T) {
	input := filepath.Join(t.TempDir(), "metrics.json")
	writeMetrics(t, input, `{"totalMessages":1234,"averageResponseTime":45,"resolvedChats":90,"activeAdmins":0}`)

	s := New(Config{InputPath: input, Options: panel.DefaultOptions()})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/panel")
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status before poll = %d, want 503", resp.StatusCode)
	}

	s.pollOnce()

	resp, err = http.Get(srv.URL + "/v1/panel")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()

	var l panel.Layout
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		t.Fatal(err)
	}
	if len(l.Cards) != 4 {
		t.Errorf("cards = %d, want 4", len(l.Cards))
	}
	if l.Performance.Tier != panel.TierNeedsImprovement || l.Performance.Fill != -50 {
		t.Errorf("performance = %+v", l.Performance)
	}
	if l.Statistics.MessagesPerAdmin.Value != 0 || l.Statistics.ResolvedPerDay.Value != 3 {
		t.Errorf("statistics = %+v", l.Statistics)
	}
}

func TestRestartDoesNotDuplicateHistory(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "metrics.json")
	writeMetrics(t, input, `{"totalMessages":1234,"averageResponseTime":7,"resolvedChats":300,"activeAdmins":5}`)

	h, err := store.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = h.Close() }()

	for run := 0; run < 2; run++ {
		s := New(Config{InputPath: input, Options: panel.DefaultOptions()})
		s.history = h
		s.pollOnce()

		if st := s.snapshotStatus(); st.EventCount != 1 {
			t.Fatalf("run %d: EventCount = %d, want 1", run, st.EventCount)
		}
	}

	if n, _ := h.Count(); n != 1 {
		t.Fatalf("history rows after restart = %d, want 1", n)
	}
}
