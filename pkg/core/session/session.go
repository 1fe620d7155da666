package session

import (
	"sync"
	"time"

	"github.com/openwms/procflow/pkg/common/uuid"
	catalog "github.com/openwms/procflow/pkg/core/catalog"
	"github.com/openwms/procflow/pkg/core/configurator"
	"github.com/openwms/procflow/pkg/core/graph"
)

// Session is one editor's live document. The store is single-threaded
// by contract, so every access goes through With, which serializes on
// the session lock.
type Session struct {
	ID       uuid.UUID
	FlowUUID uuid.UUID // Nil until the document is bound to a saved flow
	Owner    uuid.UUID

	mu         sync.Mutex
	store      *graph.Store
	conf       *configurator.Configurator
	lastActive time.Time
}

func newSession(cat catalog.Service, owner uuid.UUID) *Session {
	store := graph.NewStore(cat)
	return &Session{
		ID:         uuid.New(),
		Owner:      owner,
		store:      store,
		conf:       configurator.New(cat, store),
		lastActive: time.Now(),
	}
}

// With runs fn holding the session lock and refreshes the idle clock.
func (s *Session) With(fn func(store *graph.Store, conf *configurator.Configurator) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	return fn(s.store, s.conf)
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
