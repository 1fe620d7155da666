package flow

import (
	"time"

	"gorm.io/datatypes"

	"github.com/openwms/procflow/pkg/common"
	"github.com/openwms/procflow/pkg/common/uuid"
	"github.com/openwms/procflow/pkg/core/form"
	"github.com/openwms/procflow/pkg/core/graph"
)

type CreateFlowReq struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	ProjectName string         `json:"project_name"`
	FlowData    datatypes.JSON `json:"flow_data"`
	IsActive    *bool          `json:"is_active"`
}

type UpdateFlowReq struct {
	UUID        uuid.UUID      `json:"uuid" binding:"required"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ProjectName string         `json:"project_name"`
	FlowData    datatypes.JSON `json:"flow_data"`
	IsActive    *bool          `json:"is_active"`
}

type ListFlowReq struct {
	ProjectName string `form:"project_name"`
	common.PageReq
}

type FlowResp struct {
	UUID        uuid.UUID `json:"uuid"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ProjectName string    `json:"project_name"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type FlowDetailResp struct {
	FlowResp
	FlowData       datatypes.JSON  `json:"flow_data"`
	Configurations []*NodeConfResp `json:"configurations"`
}

// SaveNodeConfReq persists one element's configuration. Kind and
// TypeID locate the schema the values are validated against.
type SaveNodeConfReq struct {
	FlowUUID uuid.UUID           `json:"flow_uuid" binding:"required"`
	NodeID   uuid.UUID           `json:"node_id" binding:"required"`
	Kind     graph.SelectionKind `json:"kind" binding:"required"`
	TypeID   string              `json:"type_id"`
	Values   form.Values         `json:"values" binding:"required"`
}

type NodeConfResp struct {
	NodeID        uuid.UUID           `json:"node_id"`
	Kind          graph.SelectionKind `json:"kind"`
	TypeID        string              `json:"type_id"`
	Configuration form.Values         `json:"configuration"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

type ExportSummary struct {
	Locations int `json:"locations"`
	Movements int `json:"movements"`
	Sequences int `json:"sequences"`
	Tasks     int `json:"tasks"`
}

type ExportResp struct {
	Flow           FlowResp        `json:"flow"`
	FlowData       datatypes.JSON  `json:"flow_data"`
	Configurations []*NodeConfResp `json:"configurations"`
	Summary        ExportSummary   `json:"summary"`
	ExportedAt     time.Time       `json:"exported_at"`
	File           string          `json:"file,omitempty"`
}
