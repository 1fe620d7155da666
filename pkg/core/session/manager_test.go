package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwms/procflow/pkg/common/uuid"
	catalogimpl "github.com/openwms/procflow/pkg/core/catalog/catalog"
	"github.com/openwms/procflow/pkg/core/configurator"
	"github.com/openwms/procflow/pkg/core/graph"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewManager(ctx, catalogimpl.New(catalogimpl.Default()), time.Hour)
}

func TestOpenGetClose(t *testing.T) {
	m := newTestManager(t)
	owner := uuid.New()

	s := m.Open(owner)
	require.NotNil(t, s)
	assert.Equal(t, owner, s.Owner)
	assert.Equal(t, 1, m.Len())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	m.Close(s.ID)
	assert.Equal(t, 0, m.Len())
	_, err = m.Get(s.ID)
	assert.Error(t, err)
}

func TestGetUnknownSession(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Get(uuid.New())
	assert.Error(t, err)
}

func TestSessionsAreIsolated(t *testing.T) {
	m := newTestManager(t)
	a := m.Open(uuid.New())
	b := m.Open(uuid.New())

	_ = a.With(func(store *graph.Store, _ *configurator.Configurator) error {
		store.AddLocationNode("receiving_dock", graph.Position{})
		return nil
	})

	_ = b.With(func(store *graph.Store, _ *configurator.Configurator) error {
		assert.Empty(t, store.LocationNodes())
		return nil
	})
}

func TestWithSerializesMutations(t *testing.T) {
	m := newTestManager(t)
	s := m.Open(uuid.New())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
				store.AddLocationNode("staging_area", graph.Position{})
				return nil
			})
		}()
	}
	wg.Wait()

	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		assert.Len(t, store.LocationNodes(), 16)
		return nil
	})
}

func TestClonedMutationPayloadIsDetached(t *testing.T) {
	m := newTestManager(t)
	s := m.Open(uuid.New())

	// Handlers clone inside the lock before handing the entity to the
	// reply and the event fan-out. Marshalling the clone must stay safe
	// while later locked mutations rewrite the live node.
	var node *graph.LocationNode
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		node = store.AddLocationNode("receiving_dock", graph.Position{}).Clone()
		return nil
	})
	require.NotNil(t, node)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_, _ = json.Marshal(node)
		}
	}()
	for i := 0; i < 100; i++ {
		name := fmt.Sprintf("dock-%d", i)
		_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
			store.UpdateLocationNode(node.ID, graph.LocationPatch{Name: &name})
			return nil
		})
	}
	<-done

	assert.Equal(t, "Receiving Dock", node.Name)
}

func TestWithRefreshesIdleClock(t *testing.T) {
	m := newTestManager(t)
	s := m.Open(uuid.New())

	before := s.idleSince()
	time.Sleep(5 * time.Millisecond)
	_ = s.With(func(_ *graph.Store, _ *configurator.Configurator) error { return nil })
	assert.True(t, s.idleSince().After(before))
}
