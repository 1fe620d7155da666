package repo

import (
	"context"

	"github.com/openwms/procflow/pkg/common/uuid"
	"github.com/openwms/procflow/pkg/repo/model"
)

type FlowRepo interface {
	IDOrUUIDTranslate

	CreateFlow(ctx context.Context, flow *model.ProcessFlow) error
	UpdateFlow(ctx context.Context, flow *model.ProcessFlow) error
	GetFlowByUUID(ctx context.Context, uuid uuid.UUID) (*model.ProcessFlow, error)
	ListFlows(ctx context.Context, projectName string, offset, limit int) ([]*model.ProcessFlow, int64, error)
	DeleteFlow(ctx context.Context, uuid uuid.UUID) error

	UpsertNodeConfiguration(ctx context.Context, conf *model.NodeConfiguration) error
	GetNodeConfiguration(ctx context.Context, nodeID uuid.UUID) (*model.NodeConfiguration, error)
	ListNodeConfigurations(ctx context.Context, flowID int64) ([]*model.NodeConfiguration, error)
	DeleteNodeConfiguration(ctx context.Context, nodeID uuid.UUID) error
}
