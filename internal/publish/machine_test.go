package publish

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lectern-app/lectern/internal/models"
)

type mockPublisher struct {
	mu         sync.Mutex
	playlistID string
	err        error
	delay      time.Duration
	calls      int
	available  bool
}

func (p *mockPublisher) CreatePlaylist(ctx context.Context, title, description string, videoIDs []string) (string, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.err != nil {
		return "", p.err
	}
	return p.playlistID, nil
}

func (p *mockPublisher) Available() bool { return p.available }
func (p *mockPublisher) Name() string    { return "mock" }

func (p *mockPublisher) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type mockSink struct {
	mu    sync.Mutex
	saved []models.Snapshot
	err   error
}

func (s *mockSink) SaveSnapshot(snapshot models.Snapshot, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, snapshot)
	return s.err
}

func (s *mockSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

func testRequest() Request {
	return Request{
		Name: "Algorithms Week 1",
		IDs:  []string{"v1", "v2"},
		Groups: []models.SnapshotGroup{
			{Topic: "Sorting", Videos: []models.VideoCandidate{{ID: "v1"}, {ID: "v2"}}},
		},
	}
}

func newTestMachine(p Publisher, sink HistorySink) *Machine {
	return NewMachine(Opts{
		Publisher:      p,
		History:        sink,
		SuccessDismiss: 20 * time.Millisecond,
		ErrorDismiss:   40 * time.Millisecond,
	})
}

func waitForState(t *testing.T, m *Machine, want State, within time.Duration) {
	t.Helper()
	deadline := time.Now().Add(within)
	for time.Now().Before(deadline) {
		if m.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("state never reached %v, still %v", want, m.State())
}

func TestMachineSuccessFlow(t *testing.T) {
	sink := &mockSink{}
	m := newTestMachine(&mockPublisher{playlistID: "PL123", available: true}, sink)

	if !m.Trigger(context.Background(), testRequest()) {
		t.Fatal("trigger should start a publish attempt")
	}

	if m.State() != StateSuccess {
		t.Fatalf("expected success after trigger returns, got %v", m.State())
	}
	if m.PlaylistID() != "PL123" {
		t.Errorf("playlist id = %q, want PL123", m.PlaylistID())
	}
	if sink.count() != 1 {
		t.Errorf("history snapshot should be attempted once, got %d", sink.count())
	}

	waitForState(t, m, StateIdle, 500*time.Millisecond)
}

func TestMachineErrorFlow(t *testing.T) {
	sink := &mockSink{}
	m := newTestMachine(&mockPublisher{err: fmt.Errorf("quota exceeded"), available: true}, sink)

	m.Trigger(context.Background(), testRequest())

	if m.State() != StateError {
		t.Fatalf("expected error state, got %v", m.State())
	}
	if m.Message() != "quota exceeded" {
		t.Errorf("error message = %q", m.Message())
	}
	if sink.count() != 0 {
		t.Error("failed publish must not snapshot history")
	}

	waitForState(t, m, StateIdle, 500*time.Millisecond)
}

func TestMachineManualDismiss(t *testing.T) {
	m := NewMachine(Opts{
		Publisher:    &mockPublisher{err: fmt.Errorf("boom"), available: true},
		ErrorDismiss: time.Hour, // far enough that only a manual dismiss can end it
	})

	m.Trigger(context.Background(), testRequest())
	if m.State() != StateError {
		t.Fatalf("expected error state, got %v", m.State())
	}

	m.Dismiss()
	if m.State() != StateIdle {
		t.Errorf("manual dismiss should return to idle immediately, got %v", m.State())
	}

	// idle dismiss is a no-op
	m.Dismiss()
	if m.State() != StateIdle {
		t.Errorf("dismiss from idle changed state to %v", m.State())
	}
}

func TestMachineNoConcurrentRequests(t *testing.T) {
	p := &mockPublisher{playlistID: "PL1", delay: 50 * time.Millisecond, available: true}
	m := newTestMachine(p, nil)

	done := make(chan bool)
	go func() { done <- m.Trigger(context.Background(), testRequest()) }()

	waitForState(t, m, StateRequesting, 500*time.Millisecond)

	if m.Trigger(context.Background(), testRequest()) {
		t.Error("trigger while requesting must be a no-op")
	}

	if !<-done {
		t.Error("first trigger should have run")
	}
	if p.callCount() != 1 {
		t.Errorf("publisher called %d times, want 1", p.callCount())
	}
}

func TestMachineEmptyMarkedSet(t *testing.T) {
	p := &mockPublisher{playlistID: "PL1", available: true}
	m := newTestMachine(p, nil)

	if m.Trigger(context.Background(), Request{Name: "Empty"}) {
		t.Error("trigger with no marked ids must be a no-op")
	}
	if p.callCount() != 0 {
		t.Error("publisher must not be called for an empty request")
	}
	if m.State() != StateIdle {
		t.Errorf("state should remain idle, got %v", m.State())
	}
}

func TestMachineSinkFailureDoesNotAffectSuccess(t *testing.T) {
	sink := &mockSink{err: fmt.Errorf("disk full")}
	m := newTestMachine(&mockPublisher{playlistID: "PL9", available: true}, sink)

	m.Trigger(context.Background(), testRequest())

	if m.State() != StateSuccess {
		t.Errorf("sink failure must not change reported state, got %v", m.State())
	}
	if sink.count() != 1 {
		t.Errorf("snapshot should still be attempted, got %d", sink.count())
	}
}

func TestMachineUpdatesChannel(t *testing.T) {
	updates := make(chan Update, 16)
	m := NewMachine(Opts{
		Publisher:      &mockPublisher{playlistID: "PL2", available: true},
		SuccessDismiss: 10 * time.Millisecond,
		ErrorDismiss:   10 * time.Millisecond,
		Updates:        updates,
	})

	m.Trigger(context.Background(), testRequest())
	waitForState(t, m, StateIdle, 500*time.Millisecond)

	var states []State
	for {
		select {
		case u := <-updates:
			states = append(states, u.State)
			continue
		default:
		}
		break
	}

	want := []State{StateRequesting, StateSuccess, StateIdle}
	if len(states) != len(want) {
		t.Fatalf("updates = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("update %d = %v, want %v", i, states[i], want[i])
		}
	}
}

func TestWatchURL(t *testing.T) {
	url := WatchURL([]string{"a", "b", "c"})
	want := "https://www.youtube.com/watch_videos?video_ids=a,b,c"
	if url != want {
		t.Errorf("WatchURL = %q, want %q", url, want)
	}
}
