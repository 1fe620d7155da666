package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwms/procflow/pkg/common/uuid"
	catalogimpl "github.com/openwms/procflow/pkg/core/catalog/catalog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(catalogimpl.New(catalogimpl.Default()))
}

func TestAddLocationNode(t *testing.T) {
	s := newTestStore(t)

	node := s.AddLocationNode("receiving_dock", Position{X: 100, Y: 50})
	require.NotNil(t, node)
	assert.Equal(t, "Receiving Dock", node.Name)
	assert.Equal(t, "receiving_dock", node.LocationTypeID)
	assert.Nil(t, node.Configuration)

	// Creation selects the node and opens the panel.
	assert.Equal(t, Selection{Kind: SelectLocation, ID: node.ID}, s.Selection())
	assert.True(t, s.PropertiesOpen())
}

func TestAddLocationNodeUnknownTypeIsNoOp(t *testing.T) {
	s := newTestStore(t)
	assert.Nil(t, s.AddLocationNode("cloud_storage", Position{}))
	assert.Empty(t, s.LocationNodes())
	assert.True(t, s.Selection().IsNone())
}

func TestUpdateLocationNodePatch(t *testing.T) {
	s := newTestStore(t)
	node := s.AddLocationNode("staging_area", Position{X: 1, Y: 2})

	name := "East Staging"
	require.True(t, s.UpdateLocationNode(node.ID, LocationPatch{Name: &name}))
	assert.Equal(t, "East Staging", node.Name)
	// Untouched fields stay.
	assert.Equal(t, Position{X: 1, Y: 2}, node.Position)

	// Missing id is a silent no-op.
	assert.False(t, s.UpdateLocationNode(uuidMust(t), LocationPatch{Name: &name}))
}

func TestAddMovementEdge(t *testing.T) {
	s := newTestStore(t)
	a := s.AddLocationNode("staging_area", Position{})
	b := s.AddLocationNode("storage_location", Position{})

	edge := s.AddMovementEdge(a.ID, b.ID, "putaway")
	require.NotNil(t, edge)
	assert.Equal(t, "Putaway", edge.TaskName)
	assert.Equal(t, Selection{Kind: SelectMovement, ID: edge.ID}, s.Selection())

	// Missing endpoint or type id: silent no-op.
	assert.Nil(t, s.AddMovementEdge(a.ID, uuidMust(t), "putaway"))
	assert.Nil(t, s.AddMovementEdge(a.ID, b.ID, "teleport"))
	assert.Len(t, s.MovementEdges(), 1)
}

func TestAddMovementEdgeAllowMultiple(t *testing.T) {
	s := newTestStore(t)
	a := s.AddLocationNode("storage_location", Position{})
	b := s.AddLocationNode("picking_face", Position{})

	// putaway allows multiples between the same pair.
	require.NotNil(t, s.AddMovementEdge(a.ID, b.ID, "putaway"))
	require.NotNil(t, s.AddMovementEdge(a.ID, b.ID, "putaway"))

	// transfer does not: the second one is blocked.
	require.NotNil(t, s.AddMovementEdge(a.ID, b.ID, "transfer"))
	assert.Nil(t, s.AddMovementEdge(a.ID, b.ID, "transfer"))

	// But the reverse direction is a different pair.
	assert.NotNil(t, s.AddMovementEdge(b.ID, a.ID, "transfer"))
	assert.Len(t, s.MovementEdges(), 4)
}

func TestAddMovementEdgeClearsPendingState(t *testing.T) {
	s := newTestStore(t)
	a := s.AddLocationNode("staging_area", Position{})
	b := s.AddLocationNode("storage_location", Position{})

	s.BeginMovement(PendingMovement{SourceID: a.ID, TargetID: b.ID})
	require.NotNil(t, s.PendingMovement())

	s.AddMovementEdge(a.ID, b.ID, "putaway")
	assert.Nil(t, s.PendingMovement())
}

func TestDeleteLocationNodeCascades(t *testing.T) {
	s := newTestStore(t)
	a := s.AddLocationNode("receiving_dock", Position{})
	b := s.AddLocationNode("staging_area", Position{})
	c := s.AddLocationNode("storage_location", Position{})

	s.AddMovementEdge(a.ID, b.ID, "putaway")
	keep := s.AddMovementEdge(b.ID, c.ID, "putaway")
	seq := s.AddLocationTask(a.ID, "receiving")
	require.NotNil(t, seq)

	require.True(t, s.DeleteLocationNode(a.ID))

	assert.Len(t, s.LocationNodes(), 2)
	// Only the edge not touching the deleted node survives.
	require.Len(t, s.MovementEdges(), 1)
	assert.Equal(t, keep.ID, s.MovementEdges()[0].ID)
	// The sequence edge went with the node's sequences.
	assert.Empty(t, s.SequenceEdges())
}

func TestDeleteLocationNodeClearsSelection(t *testing.T) {
	s := newTestStore(t)
	node := s.AddLocationNode("receiving_dock", Position{})
	require.False(t, s.Selection().IsNone())

	s.DeleteLocationNode(node.ID)
	assert.True(t, s.Selection().IsNone())
	assert.False(t, s.PropertiesOpen())
}

func TestDeleteLocationNodeKeepsUnrelatedSelection(t *testing.T) {
	s := newTestStore(t)
	a := s.AddLocationNode("receiving_dock", Position{})
	b := s.AddLocationNode("staging_area", Position{})
	s.Select(SelectLocation, b.ID)

	s.DeleteLocationNode(a.ID)
	assert.Equal(t, Selection{Kind: SelectLocation, ID: b.ID}, s.Selection())
}

func TestAddLocationTaskStacksSequences(t *testing.T) {
	s := newTestStore(t)
	node := s.AddLocationNode("receiving_dock", Position{X: 10, Y: 20})

	first := s.AddLocationTask(node.ID, "receiving")
	require.NotNil(t, first)
	assert.Equal(t, Position{X: 10, Y: 140}, first.Position)
	assert.Equal(t, node.ID, first.ParentLocationID)
	require.Len(t, first.Tasks, 1)
	assert.Equal(t, "receiving", first.Tasks[0].TaskTypeID)

	second := s.AddLocationTask(node.ID, "quality_check")
	require.NotNil(t, second)
	assert.Equal(t, Position{X: 10, Y: 220}, second.Position)

	// Each sequence gets its own edge from the parent location.
	require.Len(t, s.SequenceEdges(), 2)
	assert.Equal(t, node.ID, s.SequenceEdges()[0].Source)
	assert.Equal(t, first.ID, s.SequenceEdges()[0].Target)

	// The new sequence is selected.
	assert.Equal(t, Selection{Kind: SelectTaskSequence, ID: second.ID}, s.Selection())
}

func TestAddLocationTaskUnknownIDsNoOp(t *testing.T) {
	s := newTestStore(t)
	node := s.AddLocationNode("receiving_dock", Position{})

	assert.Nil(t, s.AddLocationTask(uuidMust(t), "receiving"))
	assert.Nil(t, s.AddLocationTask(node.ID, "singing"))
	assert.Empty(t, node.Sequences)
}

func TestAddTaskToSequence(t *testing.T) {
	s := newTestStore(t)
	node := s.AddLocationNode("receiving_dock", Position{})
	seq := s.AddLocationTask(node.ID, "receiving")

	task := s.AddTaskToSequence(seq.ID, "quality_check")
	require.NotNil(t, task)
	assert.Len(t, seq.Tasks, 2)
	assert.Equal(t, Selection{Kind: SelectLocationTask, ID: task.ID}, s.Selection())

	// No new sequence edge for an appended task.
	assert.Len(t, s.SequenceEdges(), 1)
}

func TestDeleteLocationTaskWholeSequence(t *testing.T) {
	s := newTestStore(t)
	node := s.AddLocationNode("receiving_dock", Position{})
	seq := s.AddLocationTask(node.ID, "receiving")
	s.AddTaskToSequence(seq.ID, "quality_check")

	require.True(t, s.DeleteLocationTask(node.ID, seq.ID))
	assert.Empty(t, node.Sequences)
	assert.Empty(t, s.SequenceEdges())
	assert.True(t, s.Selection().IsNone())
}

func TestDeleteLocationTaskIndividual(t *testing.T) {
	s := newTestStore(t)
	node := s.AddLocationNode("receiving_dock", Position{})
	seq := s.AddLocationTask(node.ID, "receiving")
	extra := s.AddTaskToSequence(seq.ID, "quality_check")

	require.True(t, s.DeleteLocationTask(node.ID, extra.ID))
	require.Len(t, node.Sequences, 1)
	assert.Len(t, seq.Tasks, 1)
	// Sequence still has a task, so it and its edge survive.
	assert.Len(t, s.SequenceEdges(), 1)
}

func TestDeleteLastTaskCascadesEmptySequence(t *testing.T) {
	s := newTestStore(t)
	node := s.AddLocationNode("receiving_dock", Position{})
	seq := s.AddLocationTask(node.ID, "receiving")
	only := seq.Tasks[0]

	require.True(t, s.DeleteLocationTask(node.ID, only.ID))
	assert.Empty(t, node.Sequences)
	assert.Empty(t, s.SequenceEdges())
}

func TestUpdateIndividualTask(t *testing.T) {
	s := newTestStore(t)
	node := s.AddLocationNode("receiving_dock", Position{})
	seq := s.AddLocationTask(node.ID, "receiving")
	task := seq.Tasks[0]
	require.Nil(t, task.Configuration)

	conf := Config{"tolerance_percent": float64(5)}
	require.True(t, s.UpdateIndividualTask(task.ID, conf))
	assert.Equal(t, float64(5), task.Configuration["tolerance_percent"])

	// The stored config is a copy, not an alias.
	conf["tolerance_percent"] = float64(99)
	assert.Equal(t, float64(5), task.Configuration["tolerance_percent"])

	assert.False(t, s.UpdateIndividualTask(uuidMust(t), conf))
}

func TestSelectionIsAtomic(t *testing.T) {
	s := newTestStore(t)
	node := s.AddLocationNode("receiving_dock", Position{})

	s.ClearSelection()
	sel := s.Selection()
	assert.Empty(t, sel.Kind)
	assert.True(t, sel.IsNone())

	s.Select(SelectLocation, node.ID)
	sel = s.Selection()
	assert.Equal(t, SelectLocation, sel.Kind)
	assert.Equal(t, node.ID, sel.ID)
}

func TestSnapshotLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	a := s.AddLocationNode("receiving_dock", Position{X: 1, Y: 2})
	b := s.AddLocationNode("shipping_lane", Position{X: 3, Y: 4})
	s.AddMovementEdge(a.ID, b.ID, "picking")
	s.AddLocationTask(a.ID, "receiving")
	s.UpdateLocationNode(a.ID, LocationPatch{Configuration: Config{"dock_number": "DOCK-01"}})
	s.SetName("Inbound Flow")

	snap := s.Snapshot()

	other := newTestStore(t)
	other.Load(snap)

	assert.Equal(t, "Inbound Flow", other.Name())
	assert.Len(t, other.LocationNodes(), 2)
	assert.Len(t, other.MovementEdges(), 1)
	assert.Len(t, other.SequenceEdges(), 1)

	loaded, ok := other.LocationNode(a.ID)
	require.True(t, ok)
	assert.Equal(t, "DOCK-01", loaded.Configuration["dock_number"])
	require.Len(t, loaded.Sequences, 1)

	// Selection and pending state do not survive a load.
	assert.True(t, other.Selection().IsNone())
	assert.Nil(t, other.PendingMovement())
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := newTestStore(t)
	node := s.AddLocationNode("receiving_dock", Position{})
	s.UpdateLocationNode(node.ID, LocationPatch{Configuration: Config{"dock_number": "DOCK-01"}})

	snap := s.Snapshot()
	s.UpdateLocationNode(node.ID, LocationPatch{Configuration: Config{"dock_number": "DOCK-99"}})

	assert.Equal(t, "DOCK-01", snap.LocationNodes[0].Configuration["dock_number"])
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	a := s.AddLocationNode("receiving_dock", Position{})
	s.AddLocationTask(a.ID, "receiving")

	s.Clear()
	assert.Empty(t, s.LocationNodes())
	assert.Empty(t, s.MovementEdges())
	assert.Empty(t, s.SequenceEdges())
	assert.True(t, s.Selection().IsNone())
	assert.Equal(t, Viewport{Zoom: 1}, s.Viewport())
}

func TestCompatibleTaskTypesExcludesAttached(t *testing.T) {
	s := newTestStore(t)
	node := s.AddLocationNode("receiving_dock", Position{})

	ids := func() []string {
		out := []string{}
		for _, tt := range s.CompatibleTaskTypes(node.ID) {
			out = append(out, tt.ID)
		}
		return out
	}

	assert.Equal(t, []string{"receiving", "quality_check"}, ids())

	s.AddLocationTask(node.ID, "receiving")
	assert.Equal(t, []string{"quality_check"}, ids())
}

func TestCloneDetachesFromLiveDocument(t *testing.T) {
	s := newTestStore(t)
	node := s.AddLocationNode("receiving_dock", Position{})
	seq := s.AddLocationTask(node.ID, "receiving")
	other := s.AddLocationNode("staging_area", Position{})
	edge := s.AddMovementEdge(node.ID, other.ID, "putaway")

	nodeCopy := node.Clone()
	seqCopy := seq.Clone()
	edgeCopy := edge.Clone()

	name := "Dock 7"
	s.UpdateLocationNode(node.ID, LocationPatch{
		Name:          &name,
		Configuration: Config{"dock_number": "DOCK-07"},
	})
	s.UpdateTaskSequence(seq.ID, SequencePatch{
		Configuration: Config{"sequence_name": "Renamed"},
	})
	s.AddTaskToSequence(seq.ID, "quality_check")
	s.UpdateMovementEdge(edge.ID, MovementPatch{
		Configuration: Config{"putaway_strategy": "random"},
	})

	assert.Equal(t, "Receiving Dock", nodeCopy.Name)
	assert.Nil(t, nodeCopy.Configuration)
	assert.Nil(t, seqCopy.Configuration)
	assert.Len(t, seqCopy.Tasks, 1)
	assert.Nil(t, edgeCopy.Configuration)
}

// uuidMust returns an id guaranteed not to exist in the store.
func uuidMust(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}
