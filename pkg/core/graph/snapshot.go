package graph

// Snapshot deep-copies the document into a serializable FlowData.
// Later store mutations never alias into a taken snapshot.
func (s *Store) Snapshot() *FlowData {
	out := &FlowData{
		Name:          s.name,
		Viewport:      s.viewport,
		LocationNodes: make([]*LocationNode, 0, len(s.nodes)),
		MovementEdges: make([]*MovementEdge, 0, len(s.edges)),
		SequenceEdges: make([]*SequenceEdge, 0, len(s.seqEdges)),
	}
	for _, n := range s.nodes {
		out.LocationNodes = append(out.LocationNodes, cloneNode(n))
	}
	for _, e := range s.edges {
		out.MovementEdges = append(out.MovementEdges, cloneEdge(e))
	}
	for _, e := range s.seqEdges {
		cp := *e
		out.SequenceEdges = append(out.SequenceEdges, &cp)
	}
	return out
}

// Load replaces the whole document with the snapshot's content and
// resets transient state: selection, pending movement, panel.
func (s *Store) Load(data *FlowData) {
	s.Clear()
	if data == nil {
		return
	}
	s.name = data.Name
	if data.Viewport != (Viewport{}) {
		s.viewport = data.Viewport
	}
	for _, n := range data.LocationNodes {
		s.nodes = append(s.nodes, cloneNode(n))
	}
	for _, e := range data.MovementEdges {
		s.edges = append(s.edges, cloneEdge(e))
	}
	for _, e := range data.SequenceEdges {
		cp := *e
		s.seqEdges = append(s.seqEdges, &cp)
	}
}

// Clear empties the document back to a fresh canvas.
func (s *Store) Clear() {
	s.name = ""
	s.viewport = Viewport{Zoom: 1}
	s.nodes = nil
	s.edges = nil
	s.seqEdges = nil
	s.pending = nil
	s.ClearSelection()
}

// Clone returns a deep copy detached from the live document. Handlers
// hand clones, never live pointers, to anything running outside the
// session lock (replies, async event fan-out).
func (n *LocationNode) Clone() *LocationNode { return cloneNode(n) }

func (e *MovementEdge) Clone() *MovementEdge { return cloneEdge(e) }

func (seq *TaskSequence) Clone() *TaskSequence { return cloneSequence(seq) }

func (t *LocationTask) Clone() *LocationTask { return cloneTask(t) }

func cloneNode(n *LocationNode) *LocationNode {
	cp := *n
	cp.Configuration = n.Configuration.Clone()
	cp.Sequences = make([]*TaskSequence, 0, len(n.Sequences))
	for _, seq := range n.Sequences {
		cp.Sequences = append(cp.Sequences, cloneSequence(seq))
	}
	return &cp
}

func cloneSequence(seq *TaskSequence) *TaskSequence {
	cp := *seq
	cp.Configuration = seq.Configuration.Clone()
	cp.Tasks = make([]*LocationTask, 0, len(seq.Tasks))
	for _, t := range seq.Tasks {
		cp.Tasks = append(cp.Tasks, cloneTask(t))
	}
	return &cp
}

func cloneTask(t *LocationTask) *LocationTask {
	cp := *t
	cp.Configuration = t.Configuration.Clone()
	return &cp
}

func cloneEdge(e *MovementEdge) *MovementEdge {
	cp := *e
	cp.Configuration = e.Configuration.Clone()
	if e.Routing.ControlPoint != nil {
		p := *e.Routing.ControlPoint
		cp.Routing.ControlPoint = &p
	}
	return &cp
}
