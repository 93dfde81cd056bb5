package cart

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_cart_sessions",
		Help: "Number of sessions holding a cart",
	})
	evictedSessions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_sessions_evicted_total",
		Help: "Sessions dropped for being idle or to stay under the session cap",
	})
)

const (
	DefaultIdleTimeout = 24 * time.Hour
	DefaultMaxSessions = 100_000
)

var now = time.Now

type session struct {
	cart     *Cart
	lastSeen atomic.Int64
}

func (s *session) touch() {
	s.lastSeen.Store(now().UnixNano())
}

func (s *session) idleSince(cutoff int64) bool {
	return s.lastSeen.Load() < cutoff
}

// SessionStore owns the carts of live sessions. A cart is created when its session is
// first seen and dropped when the session ends, when it has been idle for longer than
// IdleTimeout, or when the store is full and it is the least recently used.
type SessionStore struct {
	IdleTimeout time.Duration
	MaxSessions int

	mu       sync.RWMutex
	sessions map[string]*session
	stop     chan struct{}
	stopOnce sync.Once
	sweeper  sync.WaitGroup
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		IdleTimeout: DefaultIdleTimeout,
		MaxSessions: DefaultMaxSessions,
		sessions:    make(map[string]*session),
		stop:        make(chan struct{}),
	}
}

// Start returns the cart of the session, creating it if needed.
func (s *SessionStore) Start(sessionId string) *Cart {
	s.mu.RLock()
	sess, ok := s.sessions[sessionId]
	s.mu.RUnlock()
	if ok {
		sess.touch()
		return sess.cart
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[sessionId]; ok {
		sess.touch()
		return sess.cart
	}
	if s.MaxSessions > 0 && len(s.sessions) >= s.MaxSessions {
		if s.evictIdle() == 0 {
			s.evictOldest()
		}
	}
	sess = &session{cart: NewCart()}
	sess.touch()
	s.sessions[sessionId] = sess
	activeSessions.Inc()
	return sess.cart
}

func (s *SessionStore) Get(sessionId string) (*Cart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionId]
	if !ok {
		return nil, false
	}
	sess.touch()
	return sess.cart, true
}

// End drops the session's cart. It reports whether the session existed.
func (s *SessionStore) End(sessionId string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionId]; !ok {
		return false
	}
	delete(s.sessions, sessionId)
	activeSessions.Dec()
	return true
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) drop(sessionId string) {
	delete(s.sessions, sessionId)
	activeSessions.Dec()
	evictedSessions.Inc()
}

// evictIdle must be called with the write lock held.
func (s *SessionStore) evictIdle() int {
	if s.IdleTimeout <= 0 {
		return 0
	}
	cutoff := now().Add(-s.IdleTimeout).UnixNano()
	evicted := 0
	for id, sess := range s.sessions {
		if sess.idleSince(cutoff) {
			s.drop(id)
			evicted++
		}
	}
	return evicted
}

// evictOldest must be called with the write lock held.
func (s *SessionStore) evictOldest() {
	oldestId := ""
	var oldest int64
	for id, sess := range s.sessions {
		if seen := sess.lastSeen.Load(); oldestId == "" || seen < oldest {
			oldestId, oldest = id, seen
		}
	}
	if oldestId != "" {
		s.drop(oldestId)
	}
}

// Evict drops every session idle for longer than IdleTimeout and returns how many
// were dropped.
func (s *SessionStore) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictIdle()
}

// StartEviction sweeps idle sessions every interval until Stop is called.
func (s *SessionStore) StartEviction(interval time.Duration) {
	s.sweeper.Add(1)
	go func() {
		defer s.sweeper.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.Evict(); n > 0 {
					zap.S().Infof("Evicted %d idle cart sessions", n)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop ends the eviction sweep and waits for it to exit.
func (s *SessionStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	s.sweeper.Wait()
}
