package publish

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lectern-app/lectern/internal/models"
	"github.com/lectern-app/lectern/internal/shared"
)

// State enumerates the publish lifecycle states.
type State int

const (
	StateIdle State = iota
	StateRequesting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return ""
	}
}

// Default hold times for the informational success/error messages.
const (
	SuccessDismiss = 2 * time.Second
	ErrorDismiss   = 4 * time.Second
)

// Publisher creates a playlist on the external account from an ordered list of
// video ids and returns the external playlist id.
type Publisher interface {
	CreatePlaylist(ctx context.Context, title, description string, videoIDs []string) (string, error)
	Available() bool
	Name() string
}

// HistorySink receives a best-effort snapshot of what was published.
type HistorySink interface {
	SaveSnapshot(snapshot models.Snapshot, actor string) error
}

// Request carries everything one publish attempt needs: the playlist name,
// the ordered marked ids, and the projected topic groups for the history sink.
type Request struct {
	Name   string
	IDs    []string
	Groups []models.SnapshotGroup
}

// Update is a state change notification for UI layers.
type Update struct {
	State      State
	Message    string
	PlaylistID string
}

// Machine is the publish state machine. One machine serves one curation
// session; a second trigger while requesting is ignored, not queued.
type Machine struct {
	mu sync.Mutex

	state      State
	message    string
	playlistID string

	publisher Publisher
	history   HistorySink
	logger    *log.Logger

	successDismiss time.Duration
	errorDismiss   time.Duration

	timer   *time.Timer   // pending auto-dismiss, nil when idle/requesting
	updates chan<- Update // optional, non-blocking notifications
}

// Opts configures a Machine. Zero-value dismiss durations fall back to the
// package defaults.
type Opts struct {
	Publisher      Publisher
	History        HistorySink
	Logger         *log.Logger
	SuccessDismiss time.Duration
	ErrorDismiss   time.Duration
	Updates        chan<- Update
}

// NewMachine creates an idle publish state machine.
func NewMachine(opts Opts) *Machine {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.SuccessDismiss <= 0 {
		opts.SuccessDismiss = SuccessDismiss
	}
	if opts.ErrorDismiss <= 0 {
		opts.ErrorDismiss = ErrorDismiss
	}

	return &Machine{
		state:          StateIdle,
		publisher:      opts.Publisher,
		history:        opts.History,
		logger:         opts.Logger,
		successDismiss: opts.SuccessDismiss,
		errorDismiss:   opts.ErrorDismiss,
		updates:        opts.Updates,
	}
}

// State returns the current lifecycle state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Message returns the user-visible message for the current state.
func (m *Machine) Message() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.message
}

// PlaylistID returns the external playlist id from the last successful publish.
func (m *Machine) PlaylistID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playlistID
}

// Trigger starts a publish attempt and blocks until the external call returns.
// Returns false without side effects when a request is already in flight, the
// id list is empty, or no publisher is configured.
//
// Callers that need a responsive UI run Trigger in a goroutine and observe
// state via State/Message or the updates channel.
func (m *Machine) Trigger(ctx context.Context, req Request) bool {
	m.mu.Lock()
	if m.state != StateIdle || len(req.IDs) == 0 || m.publisher == nil {
		m.mu.Unlock()
		return false
	}
	m.cancelTimerLocked()
	m.state = StateRequesting
	m.message = fmt.Sprintf("Publishing %q (%d videos)...", req.Name, len(req.IDs))
	m.playlistID = ""
	m.notifyLocked()
	m.mu.Unlock()

	description := fmt.Sprintf("Curated from syllabus topics (%d videos)", len(req.IDs))
	playlistID, err := m.publisher.CreatePlaylist(ctx, req.Name, description, req.IDs)
	if err != nil {
		m.fail(err.Error())
		return true
	}

	m.succeed(req, playlistID)
	return true
}

// Dismiss manually returns the machine to idle from success or error,
// cancelling the pending auto-dismiss timer. No-op in idle or requesting.
func (m *Machine) Dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateSuccess && m.state != StateError {
		return
	}
	m.cancelTimerLocked()
	m.state = StateIdle
	m.message = ""
	m.notifyLocked()
}

func (m *Machine) succeed(req Request, playlistID string) {
	m.mu.Lock()
	m.state = StateSuccess
	m.playlistID = playlistID
	m.message = fmt.Sprintf("Playlist created: %s", playlistID)
	m.scheduleDismissLocked(m.successDismiss, StateSuccess)
	m.notifyLocked()
	m.mu.Unlock()

	// Best effort: a history failure is logged, never surfaced.
	if m.history != nil {
		snapshot := models.Snapshot{
			Name:        req.Name,
			GeneratedAt: time.Now().UTC(),
			Topics:      req.Groups,
		}
		if err := m.history.SaveSnapshot(snapshot, m.publisher.Name()); err != nil {
			m.logger.Warn("failed to save publish snapshot", "name", req.Name, "error", err)
		}
	}
}

func (m *Machine) fail(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateError
	m.message = reason
	m.scheduleDismissLocked(m.errorDismiss, StateError)
	m.notifyLocked()
}

// scheduleDismissLocked arms the auto-dismiss timer for the state just
// entered. The timer only fires the transition if the machine is still in
// that state; Dismiss and Trigger cancel it first.
func (m *Machine) scheduleDismissLocked(after time.Duration, from State) {
	m.cancelTimerLocked()
	m.timer = time.AfterFunc(after, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.state != from {
			return
		}
		m.timer = nil
		m.state = StateIdle
		m.message = ""
		m.notifyLocked()
	})
}

func (m *Machine) cancelTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// notifyLocked sends a non-blocking update so a slow or absent listener never
// stalls a transition.
func (m *Machine) notifyLocked() {
	if m.updates == nil {
		return
	}
	select {
	case m.updates <- Update{State: m.state, Message: m.message, PlaylistID: m.playlistID}:
	default:
	}
}

// WatchURL builds the unauthenticated fallback: a YouTube queue URL preloaded
// with the marked ids. Opening it is synchronous and involves no state
// transition.
func WatchURL(videoIDs []string) string {
	return "https://www.youtube.com/watch_videos?video_ids=" + strings.Join(videoIDs, ",")
}
