package graph

import (
	uuid "github.com/openwms/procflow/pkg/common/uuid"
	catalog "github.com/openwms/procflow/pkg/core/catalog"
)

// Vertical layout constants for task sequences stacked beneath their
// parent location.
const (
	sequenceBaseOffset = 120
	sequenceStepOffset = 80
)

// Store holds one editing session's document state. It is not safe for
// concurrent use; the session layer serializes access with a per-session
// lock so every mutation observes a consistent graph.
type Store struct {
	catalog catalog.Service

	name     string
	viewport Viewport
	nodes    []*LocationNode
	edges    []*MovementEdge
	seqEdges []*SequenceEdge

	selection Selection
	pending   *PendingMovement
	propsOpen bool
}

func NewStore(cat catalog.Service) *Store {
	return &Store{
		catalog:  cat,
		viewport: Viewport{Zoom: 1},
	}
}

func (s *Store) Name() string          { return s.name }
func (s *Store) SetName(name string)   { s.name = name }
func (s *Store) Viewport() Viewport    { return s.viewport }
func (s *Store) SetViewport(v Viewport) { s.viewport = v }

func (s *Store) LocationNodes() []*LocationNode { return s.nodes }
func (s *Store) MovementEdges() []*MovementEdge { return s.edges }
func (s *Store) SequenceEdges() []*SequenceEdge { return s.seqEdges }

// LocationNode finds a node by id. Lookups are linear: documents stay
// small enough that index maps would only add invalidation work.
func (s *Store) LocationNode(id uuid.UUID) (*LocationNode, bool) {
	for _, n := range s.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

func (s *Store) MovementEdge(id uuid.UUID) (*MovementEdge, bool) {
	for _, e := range s.edges {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// TaskSequence finds a sequence anywhere in the document, returning its
// parent node as well.
func (s *Store) TaskSequence(id uuid.UUID) (*TaskSequence, *LocationNode, bool) {
	for _, n := range s.nodes {
		for _, seq := range n.Sequences {
			if seq.ID == id {
				return seq, n, true
			}
		}
	}
	return nil, nil, false
}

// LocationTask finds an individual task anywhere in the document.
func (s *Store) LocationTask(id uuid.UUID) (*LocationTask, *TaskSequence, bool) {
	for _, n := range s.nodes {
		for _, seq := range n.Sequences {
			for _, t := range seq.Tasks {
				if t.ID == id {
					return t, seq, true
				}
			}
		}
	}
	return nil, nil, false
}

// AddLocationNode creates a node of the given catalog type at the given
// position, selects it and opens the properties panel. An unresolvable
// type id is a silent no-op.
func (s *Store) AddLocationNode(locationTypeID string, pos Position) *LocationNode {
	lt, ok := s.catalog.LocationType(locationTypeID)
	if !ok {
		return nil
	}
	node := &LocationNode{
		ID:             uuid.New(),
		LocationTypeID: lt.ID,
		Name:           lt.Name,
		Icon:           lt.Icon,
		Color:          lt.Color,
		BgColor:        lt.BgColor,
		BorderColor:    lt.BorderColor,
		Category:       lt.Category,
		Position:       pos,
	}
	s.nodes = append(s.nodes, node)
	s.setSelected(SelectLocation, node.ID)
	return node
}

// UpdateLocationNode shallow-merges a patch into a node. A missing id
// is a no-op.
func (s *Store) UpdateLocationNode(id uuid.UUID, patch LocationPatch) bool {
	node, ok := s.LocationNode(id)
	if !ok {
		return false
	}
	if patch.Name != nil {
		node.Name = *patch.Name
	}
	if patch.Position != nil {
		node.Position = *patch.Position
	}
	if patch.Configuration != nil {
		node.Configuration = patch.Configuration.Clone()
	}
	return true
}

// DeleteLocationNode removes a node and cascades: every movement edge
// touching it, every sequence it owns, and every sequence edge tied to
// those. Selection is cleared if it referenced anything removed.
func (s *Store) DeleteLocationNode(id uuid.UUID) bool {
	node, ok := s.LocationNode(id)
	if !ok {
		return false
	}

	removed := map[uuid.UUID]struct{}{id: {}}
	for _, seq := range node.Sequences {
		removed[seq.ID] = struct{}{}
		for _, t := range seq.Tasks {
			removed[t.ID] = struct{}{}
		}
	}

	kept := s.nodes[:0]
	for _, n := range s.nodes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.nodes = kept

	keptEdges := s.edges[:0]
	for _, e := range s.edges {
		if e.Source == id || e.Target == id {
			removed[e.ID] = struct{}{}
			continue
		}
		keptEdges = append(keptEdges, e)
	}
	s.edges = keptEdges

	keptSeq := s.seqEdges[:0]
	for _, e := range s.seqEdges {
		if _, gone := removed[e.Source]; gone {
			continue
		}
		if _, gone := removed[e.Target]; gone {
			continue
		}
		keptSeq = append(keptSeq, e)
	}
	s.seqEdges = keptSeq

	if _, gone := removed[s.selection.ID]; gone {
		s.ClearSelection()
	}
	return true
}

// AddMovementEdge connects two existing locations with a typed movement.
// It fails silently when the type id or either endpoint is unresolvable,
// or when the type forbids multiples and an edge of the same type
// already links the same pair. Any pending movement UI state is cleared
// on success and the new edge is selected.
func (s *Store) AddMovementEdge(source, target uuid.UUID, taskTypeID string) *MovementEdge {
	mt, ok := s.catalog.MovementTaskType(taskTypeID)
	if !ok {
		return nil
	}
	if _, ok := s.LocationNode(source); !ok {
		return nil
	}
	if _, ok := s.LocationNode(target); !ok {
		return nil
	}
	if !mt.AllowMultiple {
		for _, e := range s.edges {
			if e.Source == source && e.Target == target && e.TaskTypeID == taskTypeID {
				return nil
			}
		}
	}

	edge := &MovementEdge{
		ID:         uuid.New(),
		Source:     source,
		Target:     target,
		TaskTypeID: mt.ID,
		TaskName:   mt.Name,
		Icon:       mt.Icon,
		Color:      mt.Color,
		Category:   mt.Category,
		Routing:    RoutingMeta{CurveStyle: "smooth"},
	}
	s.edges = append(s.edges, edge)
	s.pending = nil
	s.setSelected(SelectMovement, edge.ID)
	return edge
}

func (s *Store) UpdateMovementEdge(id uuid.UUID, patch MovementPatch) bool {
	edge, ok := s.MovementEdge(id)
	if !ok {
		return false
	}
	if patch.Routing != nil {
		edge.Routing = *patch.Routing
	}
	if patch.Configuration != nil {
		edge.Configuration = patch.Configuration.Clone()
	}
	return true
}

func (s *Store) DeleteMovementEdge(id uuid.UUID) bool {
	kept := s.edges[:0]
	found := false
	for _, e := range s.edges {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	s.edges = kept
	if found && s.selection.ID == id {
		s.ClearSelection()
	}
	return found
}

// AddLocationTask creates a new task sequence under a location holding
// one task of the given type, wires the sequence edge, and selects the
// sequence. Unresolvable ids are a silent no-op.
func (s *Store) AddLocationTask(locationID uuid.UUID, taskTypeID string) *TaskSequence {
	node, ok := s.LocationNode(locationID)
	if !ok {
		return nil
	}
	tt, ok := s.catalog.LocationTaskType(taskTypeID)
	if !ok {
		return nil
	}

	seq := &TaskSequence{
		ID:               uuid.New(),
		ParentLocationID: node.ID,
		Position: Position{
			X: node.Position.X,
			Y: node.Position.Y + sequenceBaseOffset + float64(len(node.Sequences))*sequenceStepOffset,
		},
		Tasks: []*LocationTask{newTask(tt)},
	}
	node.Sequences = append(node.Sequences, seq)
	s.seqEdges = append(s.seqEdges, &SequenceEdge{
		ID:     uuid.New(),
		Source: node.ID,
		Target: seq.ID,
	})
	s.setSelected(SelectTaskSequence, seq.ID)
	return seq
}

// AddTaskToSequence appends a task of the given type to an existing
// sequence and selects the new task.
func (s *Store) AddTaskToSequence(sequenceID uuid.UUID, taskTypeID string) *LocationTask {
	seq, _, ok := s.TaskSequence(sequenceID)
	if !ok {
		return nil
	}
	tt, ok := s.catalog.LocationTaskType(taskTypeID)
	if !ok {
		return nil
	}
	task := newTask(tt)
	seq.Tasks = append(seq.Tasks, task)
	s.setSelected(SelectLocationTask, task.ID)
	return task
}

// UpdateTaskSequence shallow-merges a patch into a sequence.
func (s *Store) UpdateTaskSequence(id uuid.UUID, patch SequencePatch) bool {
	seq, _, ok := s.TaskSequence(id)
	if !ok {
		return false
	}
	if patch.Position != nil {
		seq.Position = *patch.Position
	}
	if patch.Configuration != nil {
		seq.Configuration = patch.Configuration.Clone()
	}
	return true
}

// UpdateIndividualTask replaces one task's configuration, searching
// every sequence in the document.
func (s *Store) UpdateIndividualTask(taskID uuid.UUID, conf Config) bool {
	task, _, ok := s.LocationTask(taskID)
	if !ok {
		return false
	}
	task.Configuration = conf.Clone()
	return true
}

// DeleteLocationTask handles both shapes of task deletion. When the id
// names a whole sequence, the sequence and its edge go together. When
// it names an individual task, the task is removed from its sequence,
// and an emptied sequence cascades away as well.
func (s *Store) DeleteLocationTask(locationID, id uuid.UUID) bool {
	node, ok := s.LocationNode(locationID)
	if !ok {
		return false
	}

	for _, seq := range node.Sequences {
		if seq.ID == id {
			s.removeSequence(node, seq.ID)
			return true
		}
	}

	for _, seq := range node.Sequences {
		kept := seq.Tasks[:0]
		found := false
		for _, t := range seq.Tasks {
			if t.ID == id {
				found = true
				continue
			}
			kept = append(kept, t)
		}
		if !found {
			continue
		}
		seq.Tasks = kept
		if s.selection.ID == id {
			s.ClearSelection()
		}
		if len(seq.Tasks) == 0 {
			s.removeSequence(node, seq.ID)
		}
		return true
	}
	return false
}

func (s *Store) removeSequence(node *LocationNode, seqID uuid.UUID) {
	removed := map[uuid.UUID]struct{}{seqID: {}}
	kept := node.Sequences[:0]
	for _, seq := range node.Sequences {
		if seq.ID == seqID {
			for _, t := range seq.Tasks {
				removed[t.ID] = struct{}{}
			}
			continue
		}
		kept = append(kept, seq)
	}
	node.Sequences = kept

	keptEdges := s.seqEdges[:0]
	for _, e := range s.seqEdges {
		if e.Target == seqID {
			continue
		}
		keptEdges = append(keptEdges, e)
	}
	s.seqEdges = keptEdges

	if _, gone := removed[s.selection.ID]; gone {
		s.ClearSelection()
	}
}

// Select sets the current selection atomically and opens the
// properties panel. A zero id clears instead.
func (s *Store) Select(kind SelectionKind, id uuid.UUID) {
	if id == uuid.Nil {
		s.ClearSelection()
		return
	}
	s.setSelected(kind, id)
}

func (s *Store) setSelected(kind SelectionKind, id uuid.UUID) {
	s.selection = Selection{Kind: kind, ID: id}
	s.propsOpen = true
}

func (s *Store) ClearSelection() {
	s.selection = Selection{}
	s.propsOpen = false
}

func (s *Store) Selection() Selection { return s.selection }

func (s *Store) PropertiesOpen() bool { return s.propsOpen }

// Pending movement UI state while the user is drawing an edge.
func (s *Store) BeginMovement(p PendingMovement) { s.pending = &p }
func (s *Store) CancelMovement()                 { s.pending = nil }
func (s *Store) PendingMovement() *PendingMovement {
	return s.pending
}

// CompatibleTaskTypes lists the catalog task types still attachable to
// a location: compatibility is decided by the location's type, and
// types already present anywhere under the node are excluded.
func (s *Store) CompatibleTaskTypes(locationID uuid.UUID) []*catalog.LocationTaskType {
	node, ok := s.LocationNode(locationID)
	if !ok {
		return nil
	}
	attached := make([]string, 0)
	for _, seq := range node.Sequences {
		for _, t := range seq.Tasks {
			attached = append(attached, t.TaskTypeID)
		}
	}
	return s.catalog.CompatibleTaskTypes(node.LocationTypeID, attached)
}

func newTask(tt *catalog.LocationTaskType) *LocationTask {
	return &LocationTask{
		ID:         uuid.New(),
		TaskTypeID: tt.ID,
		TaskName:   tt.Name,
		Icon:       tt.Icon,
		Color:      tt.Color,
		BgColor:    tt.BgColor,
	}
}
