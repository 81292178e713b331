package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"pocket/internal/cache"
	"pocket/internal/log"
	"pocket/internal/services"
)

// Entry guards one session's State. All actions on a session go through Do,
// so they run one at a time.
type Entry struct {
	mu    sync.Mutex
	state *State
}

// Do runs fn with exclusive access to the session state.
func (e *Entry) Do(fn func(*State) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.state)
}

// StoreConfig bounds the number of live sessions and how long an idle
// session survives.
type StoreConfig struct {
	MaxSessions int
	IdleTTL     time.Duration
}

// Store maps opaque tokens to sessions.
type Store struct {
	entries  *cache.LRUCache[*Entry]
	opts     []services.Option
	newToken func() string
	now      func() time.Time
	logger   *log.Logger
}

type StoreOption func(*Store)

// WithTrackerOptions passes opts to every tracker created on login.
func WithTrackerOptions(opts ...services.Option) StoreOption {
	return func(s *Store) { s.opts = append(s.opts, opts...) }
}

func WithTokenGenerator(fn func() string) StoreOption {
	return func(s *Store) { s.newToken = fn }
}

func WithStoreLogger(l *log.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// WithStoreClock sets the time source used for idle expiry.
func WithStoreClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(cfg StoreConfig, opts ...StoreOption) *Store {
	s := &Store{
		newToken: uuid.NewString,
		now:      time.Now,
		logger:   log.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent(log.ComponentSession)
	s.entries = cache.NewLRUCache[*Entry](cfg.MaxSessions, cfg.IdleTTL,
		cache.WithClock[*Entry](s.now),
		cache.WithEvictHandler(func(token string, _ *Entry) {
			s.logger.Debug("Session expired", log.FieldSession, shortToken(token))
		}),
	)
	return s
}

// Create registers a new unauthenticated session and returns its token.
func (s *Store) Create() (string, *Entry) {
	token := s.newToken()
	e := &Entry{state: NewState(s.opts...)}
	s.entries.Set(token, e)
	return token, e
}

// Get returns the session for token, refreshing its idle timer.
func (s *Store) Get(token string) (*Entry, bool) {
	if token == "" {
		return nil, false
	}
	return s.entries.Get(token)
}

// Delete forgets a session immediately.
func (s *Store) Delete(token string) {
	s.entries.Delete(token)
	s.logger.Debug("Session removed", log.FieldOperation, log.OpLogout, log.FieldSession, shortToken(token))
}

// Len reports the number of live sessions.
func (s *Store) Len() int { return s.entries.Size() }

// Cleaner exposes the underlying cache for periodic sweeping.
func (s *Store) Cleaner() cache.Cleaner { return s.entries }

func shortToken(token string) string {
	if len(token) > 8 {
		return token[:8]
	}
	return token
}
