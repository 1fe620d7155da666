package session

import (
	"github.com/openwms/procflow/pkg/common/uuid"
	"github.com/openwms/procflow/pkg/core/form"
	"github.com/openwms/procflow/pkg/core/graph"
)

type OpenSessionReq struct {
	FlowUUID uuid.UUID `json:"flow_uuid"`
}

type StateResp struct {
	SessionUUID    uuid.UUID              `json:"session_uuid"`
	FlowUUID       uuid.UUID              `json:"flow_uuid"`
	Data           *graph.FlowData        `json:"data"`
	Selection      graph.Selection        `json:"selection"`
	PropertiesOpen bool                   `json:"properties_open"`
	Pending        *graph.PendingMovement `json:"pending,omitempty"`
}

type AddLocationReq struct {
	LocationTypeID string         `json:"location_type_id" binding:"required"`
	Position       graph.Position `json:"position"`
}

type UpdateLocationReq struct {
	Name     *string         `json:"name"`
	Position *graph.Position `json:"position"`
}

type AddMovementReq struct {
	Source     uuid.UUID `json:"source" binding:"required"`
	Target     uuid.UUID `json:"target" binding:"required"`
	TaskTypeID string    `json:"task_type_id" binding:"required"`
}

type UpdateMovementReq struct {
	Routing *graph.RoutingMeta `json:"routing"`
}

type PendingMovementReq struct {
	Source     uuid.UUID `json:"source" binding:"required"`
	Target     uuid.UUID `json:"target" binding:"required"`
	TaskTypeID string    `json:"task_type_id"`
}

type AddLocationTaskReq struct {
	LocationUUID uuid.UUID `json:"location_uuid" binding:"required"`
	TaskTypeID   string    `json:"task_type_id" binding:"required"`
}

type AddSequenceTaskReq struct {
	TaskTypeID string `json:"task_type_id" binding:"required"`
}

type UpdateSequenceReq struct {
	Position *graph.Position `json:"position"`
}

type DeleteTaskReq struct {
	LocationUUID uuid.UUID `json:"location_uuid" binding:"required"`
	ID           uuid.UUID `json:"id" binding:"required"`
}

type SelectReq struct {
	Kind graph.SelectionKind `json:"kind" binding:"required"`
	ID   uuid.UUID           `json:"id" binding:"required"`
}

type ConfigFormResp struct {
	ElementName string     `json:"element_name"`
	Selection   graph.Selection `json:"selection"`
	Form        *form.Form `json:"form"`
}

type SubmitConfigReq struct {
	Values form.Values `json:"values" binding:"required"`
}

type SaveSessionReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ProjectName string `json:"project_name"`
}
