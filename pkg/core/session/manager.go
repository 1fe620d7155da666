package session

import (
	"context"
	"time"

	"github.com/alphadose/haxmap"

	"github.com/openwms/procflow/pkg/common/code"
	"github.com/openwms/procflow/pkg/common/uuid"
	catalog "github.com/openwms/procflow/pkg/core/catalog"
	"github.com/openwms/procflow/pkg/middleware/logger"
	"github.com/openwms/procflow/pkg/utils"
)

// Manager is the process-wide session registry. Reads and writes hit
// the map concurrently from every request goroutine, hence haxmap; the
// per-session lock handles everything inside a session.
type Manager struct {
	sessions *haxmap.Map[string, *Session]
	catalog  catalog.Service
	ttl      time.Duration
}

func NewManager(ctx context.Context, cat catalog.Service, ttl time.Duration) *Manager {
	m := &Manager{
		sessions: haxmap.New[string, *Session](),
		catalog:  cat,
		ttl:      ttl,
	}
	utils.SafelyGo(func() {
		m.janitor(ctx)
	}, func(err error) {
		logger.Errorf(ctx, "session janitor err: %+v", err)
	})
	return m
}

func (m *Manager) Open(owner uuid.UUID) *Session {
	s := newSession(m.catalog, owner)
	m.sessions.Set(s.ID.String(), s)
	return s
}

func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	s, ok := m.sessions.Get(id.String())
	if !ok {
		return nil, code.SessionNotFound.WithMsg(id.String())
	}
	return s, nil
}

func (m *Manager) Close(id uuid.UUID) {
	m.sessions.Del(id.String())
}

func (m *Manager) Len() int {
	return int(m.sessions.Len())
}

// janitor drops sessions idle past the TTL. Expired editors reopen
// from the last saved flow; nothing is persisted here.
func (m *Manager) janitor(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-m.ttl)
			expired := make([]string, 0)
			m.sessions.ForEach(func(key string, s *Session) bool {
				if s.idleSince().Before(cutoff) {
					expired = append(expired, key)
				}
				return true
			})
			for _, key := range expired {
				m.sessions.Del(key)
				logger.Infof(ctx, "expired idle session: %s", key)
			}
		}
	}
}
