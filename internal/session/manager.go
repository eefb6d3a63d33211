package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iliyamo/blackmouth-booking/internal/catalog"
	"github.com/iliyamo/blackmouth-booking/internal/model"
)

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// SlotSuggester produces reservation time suggestions.  It must not fail;
// failures are expected to degrade to a fallback list.
type SlotSuggester interface {
	Suggest(ctx context.Context, date time.Time, partySize int) []string
}

// Notifier is told about confirmed bookings.
type Notifier interface {
	BookingConfirmed(ctx context.Context, sessionID string, c model.Confirmation) error
}

// Options configures a Manager.  Catalog and Slots are required.
type Options struct {
	Catalog          *catalog.Catalog
	Slots            SlotSuggester
	Notifier         Notifier
	ReservationDelay time.Duration
	DeliveryDelay    time.Duration
	TTL              time.Duration
	Now              func() time.Time
	Logger           zerolog.Logger
}

// Manager owns every live session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	catalog  *catalog.Catalog
	slots    SlotSuggester
	notifier Notifier
	delays   map[model.WorkflowKind]time.Duration
	ttl      time.Duration
	now      func() time.Time
	log      zerolog.Logger
	ctx      context.Context
}

// NewManager returns a Manager whose background work stops when ctx is done.
func NewManager(ctx context.Context, opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		sessions: make(map[string]*Session),
		catalog:  opts.Catalog,
		slots:    opts.Slots,
		notifier: opts.Notifier,
		delays: map[model.WorkflowKind]time.Duration{
			model.KindReservation: opts.ReservationDelay,
			model.KindDelivery:    opts.DeliveryDelay,
		},
		ttl: opts.TTL,
		now: opts.Now,
		log: opts.Logger,
		ctx: ctx,
	}
}

func (m *Manager) delay(kind model.WorkflowKind) time.Duration { return m.delays[kind] }

// catalogOrder sorts cart lines the way the menu lists them.
func (m *Manager) catalogOrder(a, b string) bool {
	return m.catalog.Position(a) < m.catalog.Position(b)
}

// Create starts a new session with an empty cart.
func (m *Manager) Create() *Session {
	s := newSession(uuid.NewString(), m)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	m.log.Debug().Str("session_id", s.ID).Msg("session created")
	return s
}

// Get returns the session with id and marks it as recently used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch()
	return s, nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.  A zero TTL keeps sessions forever.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps expired sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.Sweep(); n > 0 {
				m.log.Info().Int("expired", n).Int("live", m.Len()).Msg("expired sessions swept")
			}
		}
	}
}
