package session

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/devconsole/go-auth-sdk/internal/stream"
)

// Manager wraps a Store with the canonical active/inactive signal and the
// session event feed. All mutations are serialised behind one mutex so a save
// and a concurrent clear cannot interleave partial writes.
type Manager struct {
	mu     sync.Mutex
	store  Store
	active *stream.Value[bool]
	events *stream.Feed[Event]
	log    zerolog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets the manager logger.
func WithManagerLogger(log zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager creates a Manager. The initial active signal reflects whether
// the persisted record is already stale; no event is published for it.
func NewManager(store Store, options ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		active: stream.NewValue(!store.HasExpired()),
		events: stream.NewFeed[Event](),
		log:    zerolog.Nop(),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// Current returns the persisted record, or nil when there is none.
func (m *Manager) Current() *SessionData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Get()
}

// SaveSession writes the record through, marks the session active and
// publishes EventSaved.
func (m *Manager) SaveSession(data *SessionData) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Save(data)
	m.active.Store(true)
	m.events.Publish(Event{Kind: EventSaved, Session: data})
	m.log.Debug().Msg("session saved")
}

// ClearSession removes the record, marks the session inactive and publishes
// EventCleared.
func (m *Manager) ClearSession() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Clear()
	m.active.Store(false)
	m.events.Publish(Event{Kind: EventCleared})
	m.log.Debug().Msg("session cleared")
}

// HasExpired delegates to the store. A positive result is observable: it
// publishes EventExpired and drops the active signal so watchers learn about
// the expiry even without an explicit refresh attempt.
func (m *Manager) HasExpired() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	expired := m.store.HasExpired()
	if expired {
		m.events.Publish(Event{Kind: EventExpired})
		m.active.Store(false)
	}
	return expired
}

// SetActive overrides the active signal without touching the store.
func (m *Manager) SetActive(active bool) {
	m.active.Store(active)
}

// Active returns the current active signal.
func (m *Manager) Active() bool {
	return m.active.Load()
}

// WatchActive subscribes to the active signal. The channel receives the
// current value immediately; the cancel function releases the watcher.
func (m *Manager) WatchActive() (<-chan bool, func()) {
	return m.active.Watch()
}

// Events subscribes to the session event feed.
func (m *Manager) Events() (<-chan Event, func()) {
	return m.events.Subscribe()
}
