package session

import (
	"fmt"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sciorbit/orbit/pkg/graph"
	"github.com/sciorbit/orbit/pkg/logger"
)

const sweepInterval = time.Minute

// Store holds all live sessions in memory. Sessions idle past the TTL
// are closed and dropped by a background sweep; nothing is persisted.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore creates a store whose sessions expire after ttl of
// inactivity and starts the sweep goroutine.
func NewStore(ttl time.Duration) *Store {
	st := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go st.sweep()
	return st
}

// Create starts a new session rooted at the given paper.
func (st *Store) Create(root graph.Paper, dims graph.Dimensions) (*Session, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	s := New(id, root, dims)
	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()
	return s, nil
}

// Get returns the session with the given id, if it is still alive.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete closes the session with the given id and removes it.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if ok {
		s.Close()
	}
}

// Close stops the sweep and shuts down every live session.
func (st *Store) Close() {
	st.stopOnce.Do(func() {
		close(st.stop)
	})

	st.mu.Lock()
	sessions := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		sessions = append(sessions, s)
	}
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()

	var g errgroup.Group
	for _, s := range sessions {
		g.Go(func() error {
			s.Close()
			return nil
		})
	}
	g.Wait()
}

func (st *Store) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-st.stop:
			return
		case now := <-ticker.C:
			var expired []*Session
			st.mu.Lock()
			for id, s := range st.sessions {
				if s.IdleSince(now) > st.ttl {
					delete(st.sessions, id)
					expired = append(expired, s)
				}
			}
			st.mu.Unlock()

			for _, s := range expired {
				logger.Debug("Expiring idle session", "id", s.ID)
				s.Close()
			}
		}
	}
}
