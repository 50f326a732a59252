package server

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"profilewizard/internal/domain"
	"profilewizard/internal/wizard"
)

// DefaultSessionIdle is how long an untouched wizard session is kept.
const DefaultSessionIdle = 30 * time.Minute

// errTooManySessions is returned by create when the registry is full.
var errTooManySessions = errors.New("too many open sessions, try again later")

type session struct {
	id       domain.SessionID
	ctrl     *wizard.Controller
	lastSeen atomic.Int64
}

func (s *session) touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }

// sessionRegistry maps session ids to running wizards.
type sessionRegistry struct {
	idle    time.Duration
	limit   int // 0 means unlimited
	newCtrl func() *wizard.Controller
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[domain.SessionID]*session
}

func newSessionRegistry(idle time.Duration, limit int, newCtrl func() *wizard.Controller) *sessionRegistry {
	if idle <= 0 {
		idle = DefaultSessionIdle
	}
	return &sessionRegistry{
		idle:     idle,
		limit:    max(limit, 0),
		newCtrl:  newCtrl,
		now:      time.Now,
		sessions: make(map[domain.SessionID]*session),
	}
}

// create starts a wizard and registers it under a fresh id. It fails with
// errTooManySessions once limit sessions are open.
func (r *sessionRegistry) create() (*session, error) {
	r.mu.Lock()
	if r.limit > 0 && len(r.sessions) >= r.limit {
		r.mu.Unlock()
		return nil, errTooManySessions
	}
	sess := &session{
		id:   domain.SessionID(uuid.NewString()),
		ctrl: r.newCtrl(),
	}
	sess.touch(r.now())
	sess.ctrl.Start()
	r.sessions[sess.id] = sess
	n := len(r.sessions)
	r.mu.Unlock()

	activeSessions.Set(float64(n))
	return sess, nil
}

func (r *sessionRegistry) get(id domain.SessionID) (*session, bool) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		sess.touch(r.now())
	}
	return sess, ok
}

// remove closes and forgets the session. It reports whether it existed.
func (r *sessionRegistry) remove(id domain.SessionID) bool {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()
	if !ok {
		return false
	}
	activeSessions.Set(float64(n))
	sess.ctrl.Close()
	return true
}

// sweep closes sessions idle for longer than the timeout and returns how
// many were removed.
func (r *sessionRegistry) sweep() int {
	cutoff := r.now().Add(-r.idle).UnixNano()

	r.mu.Lock()
	var expired []*session
	for id, sess := range r.sessions {
		if sess.lastSeen.Load() < cutoff {
			expired = append(expired, sess)
			delete(r.sessions, id)
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	activeSessions.Set(float64(n))
	for _, sess := range expired {
		sess.ctrl.Close()
	}
	return len(expired)
}

// startSweeper runs sweep periodically until the returned func is called.
func (r *sessionRegistry) startSweeper() (stop func()) {
	interval := max(r.idle/2, time.Second)
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				r.sweep()
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

func (r *sessionRegistry) closeAll() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[domain.SessionID]*session)
	r.mu.Unlock()

	activeSessions.Set(0)
	for _, sess := range all {
		sess.ctrl.Close()
	}
}
