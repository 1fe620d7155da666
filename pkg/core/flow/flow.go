package flow

import (
	"context"

	"github.com/openwms/procflow/pkg/common"
	"github.com/openwms/procflow/pkg/common/uuid"
)

// Service is the persistence surface of the designer: saved flows and
// per-element configurations, validated against the catalog before
// they hit storage.
type Service interface {
	CreateFlow(ctx context.Context, req *CreateFlowReq) (*FlowResp, error)
	UpdateFlow(ctx context.Context, req *UpdateFlowReq) (*FlowResp, error)
	GetFlow(ctx context.Context, uuid uuid.UUID) (*FlowDetailResp, error)
	ListFlows(ctx context.Context, req *ListFlowReq) (*common.PageResp[[]*FlowResp], error)
	DeleteFlow(ctx context.Context, uuid uuid.UUID) error

	SaveNodeConfiguration(ctx context.Context, req *SaveNodeConfReq) (*NodeConfResp, error)
	GetNodeConfiguration(ctx context.Context, nodeID uuid.UUID) (*NodeConfResp, error)
	DeleteNodeConfiguration(ctx context.Context, nodeID uuid.UUID) error

	ExportFlow(ctx context.Context, uuid uuid.UUID) (*ExportResp, error)
}
