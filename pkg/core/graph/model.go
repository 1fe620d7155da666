package graph

import (
	uuid "github.com/openwms/procflow/pkg/common/uuid"
)

// Config is an element's configuration value map. nil means the user
// has never completed the configuration form for the element; that
// nil/non-nil distinction is the only "configured" signal.
type Config map[string]any

func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// RoutingMeta is presentation-only edge metadata. Not semantically
// load-bearing; it survives snapshots untouched.
type RoutingMeta struct {
	ControlPoint *Position `json:"controlPoint,omitempty"`
	CurveStyle   string    `json:"curveStyle,omitempty"`
}

// LocationTask is one operational sub-step inside a TaskSequence.
type LocationTask struct {
	ID            uuid.UUID `json:"id"`
	TaskTypeID    string    `json:"taskTypeId"`
	TaskName      string    `json:"taskName"`
	Icon          string    `json:"icon"`
	Color         string    `json:"color"`
	BgColor       string    `json:"bgColor"`
	Configuration Config    `json:"configuration"`
}

// TaskSequence is an ordered group of location tasks stacked beneath
// its parent location on the canvas.
type TaskSequence struct {
	ID               uuid.UUID       `json:"id"`
	ParentLocationID uuid.UUID       `json:"parentLocationId"`
	Position         Position        `json:"position"`
	Tasks            []*LocationTask `json:"tasks"`
	Configuration    Config          `json:"configuration"`
}

// LocationNode is a canvas node representing a physical area.
type LocationNode struct {
	ID             uuid.UUID       `json:"id"`
	LocationTypeID string          `json:"locationTypeId"`
	Name           string          `json:"name"`
	Icon           string          `json:"icon"`
	Color          string          `json:"color"`
	BgColor        string          `json:"bgColor"`
	BorderColor    string          `json:"borderColor"`
	Category       string          `json:"category"`
	Position       Position        `json:"position"`
	Configuration  Config          `json:"configuration"`
	Sequences      []*TaskSequence `json:"sequences"`
}

// MovementEdge connects two locations with a typed movement task.
type MovementEdge struct {
	ID            uuid.UUID   `json:"id"`
	Source        uuid.UUID   `json:"source"`
	Target        uuid.UUID   `json:"target"`
	TaskTypeID    string      `json:"taskTypeId"`
	TaskName      string      `json:"taskName"`
	Icon          string      `json:"icon"`
	Color         string      `json:"color"`
	Category      string      `json:"category"`
	Configuration Config      `json:"configuration"`
	Routing       RoutingMeta `json:"routing"`
}

// SequenceEdge ties a task sequence to its parent location.
type SequenceEdge struct {
	ID     uuid.UUID `json:"id"`
	Source uuid.UUID `json:"source"` // location
	Target uuid.UUID `json:"target"` // sequence
}

// SelectionKind tags what a selection id refers to.
type SelectionKind string

const (
	SelectLocation     SelectionKind = "location"
	SelectMovement     SelectionKind = "movement"
	SelectLocationTask SelectionKind = "locationTask"
	SelectTaskSequence SelectionKind = "taskSequence"
)

// Selection is a proper sum: the zero value means "nothing selected",
// and kind/id are only ever written together.
type Selection struct {
	Kind SelectionKind `json:"kind,omitempty"`
	ID   uuid.UUID     `json:"id,omitempty"`
}

func (s Selection) IsNone() bool {
	return s.Kind == "" && s.ID == uuid.Nil
}

// PendingMovement is transient UI state while the user picks the task
// type for an edge being drawn.
type PendingMovement struct {
	SourceID   uuid.UUID `json:"sourceId"`
	TargetID   uuid.UUID `json:"targetId"`
	TaskTypeID string    `json:"taskTypeId,omitempty"`
}

// FlowData is the serializable snapshot of a whole document.
type FlowData struct {
	Name          string          `json:"name"`
	Viewport      Viewport        `json:"viewport"`
	LocationNodes []*LocationNode `json:"locationNodes"`
	MovementEdges []*MovementEdge `json:"movementEdges"`
	SequenceEdges []*SequenceEdge `json:"sequenceEdges"`
}

// Patch types: pointer fields merge shallowly, nil leaves the current
// value alone. A non-nil Configuration replaces the whole map.

type LocationPatch struct {
	Name          *string
	Position      *Position
	Configuration Config
}

type MovementPatch struct {
	Routing       *RoutingMeta
	Configuration Config
}

type SequencePatch struct {
	Position      *Position
	Configuration Config
}
