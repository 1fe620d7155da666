package model

import (
	"github.com/openwms/procflow/pkg/common/uuid"
	"gorm.io/datatypes"
)

// ProcessFlow is one saved designer document. FlowData holds the full
// graph snapshot (locations, movements, sequences, viewport) as JSON;
// the relational columns exist only for listing and filtering.
type ProcessFlow struct {
	BaseModel
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	ProjectName string         `gorm:"index" json:"project_name"`
	FlowData    datatypes.JSON `json:"flow_data"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedBy   uuid.UUID      `gorm:"type:uuid;index" json:"created_by"`
}

// NodeConfiguration stores one element's submitted configuration,
// keyed by the element's canvas id. One row per element.
type NodeConfiguration struct {
	BaseModel
	FlowID        int64          `gorm:"index" json:"flow_id"`
	NodeID        uuid.UUID      `gorm:"type:uuid;uniqueIndex" json:"node_id"`
	NodeType      string         `gorm:"not null" json:"node_type"`
	Configuration datatypes.JSON `json:"configuration"`
}
