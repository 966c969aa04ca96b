package services

import (
	"sync"
	"time"

	"github.com/muaishaq001/nacos-hub/internal/flow"
	"go.uber.org/zap"
)

// Session is the server side state behind one flow cookie.
type Session struct {
	ID            string
	Registration  *flow.Registration
	Collaboration *flow.Collaboration
	Notices       *flow.NoticeBuffer

	lastSeen time.Time
}

// FlowFactory builds the controllers of a new session; every notice they
// raise must go to notices.
type FlowFactory func(notices flow.Notifier) (*flow.Registration, *flow.Collaboration)

type SessionStore struct {
	ttl      time.Duration
	newFlows FlowFactory
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewSessionStore starts a janitor that drops sessions idle for longer than
// ttl every sweepEvery. Close stops it.
func NewSessionStore(ttl, sweepEvery time.Duration, f FlowFactory, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SessionStore{
		ttl:      ttl,
		newFlows: f,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.janitor(sweepEvery)
	return s
}

// Get returns the session for id, creating it on first use.
func (s *SessionStore) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		notices := &flow.NoticeBuffer{}
		reg, collab := s.newFlows(notices)
		sess = &Session{
			ID:            id,
			Registration:  reg,
			Collaboration: collab,
			Notices:       notices,
		}
		s.sessions[id] = sess
	}
	sess.lastSeen = s.now()
	return sess
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes idle sessions and reports how many went.
func (s *SessionStore) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *SessionStore) janitor(every time.Duration) {
	defer close(s.done)
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("sessions expired", zap.Int("count", n))
			}
		}
	}
}

func (s *SessionStore) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
}
