package flow

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openwms/procflow/pkg/common/uuid"
	"github.com/openwms/procflow/pkg/middleware/db"
	"github.com/openwms/procflow/pkg/repo"
	"github.com/openwms/procflow/pkg/repo/model"
)

type flowImpl struct {
	db.Datastore
}

func NewFlowImpl() repo.FlowRepo {
	return &flowImpl{Datastore: db.DB()}
}

func (f *flowImpl) CreateFlow(ctx context.Context, flow *model.ProcessFlow) error {
	return f.DBWithContext(ctx).Create(flow).Error
}

func (f *flowImpl) UpdateFlow(ctx context.Context, flow *model.ProcessFlow) error {
	return f.DBWithContext(ctx).Model(flow).
		Select("name", "description", "project_name", "flow_data", "is_active").
		Updates(flow).Error
}

func (f *flowImpl) GetFlowByUUID(ctx context.Context, id uuid.UUID) (*model.ProcessFlow, error) {
	flow := &model.ProcessFlow{}
	err := f.DBWithContext(ctx).Where("uuid = ?", id).First(flow).Error
	return flow, err
}

func (f *flowImpl) ListFlows(ctx context.Context, projectName string, offset, limit int) ([]*model.ProcessFlow, int64, error) {
	q := f.DBWithContext(ctx).Model(&model.ProcessFlow{})
	if projectName != "" {
		q = q.Where("project_name = ?", projectName)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var flows []*model.ProcessFlow
	err := q.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&flows).Error
	return flows, total, err
}

func (f *flowImpl) DeleteFlow(ctx context.Context, id uuid.UUID) error {
	return f.DBWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		flow := &model.ProcessFlow{}
		if err := tx.Where("uuid = ?", id).First(flow).Error; err != nil {
			return err
		}
		if err := tx.Where("flow_id = ?", flow.ID).Delete(&model.NodeConfiguration{}).Error; err != nil {
			return err
		}
		return tx.Delete(flow).Error
	})
}

// UpsertNodeConfiguration keeps one row per canvas element, replacing
// the stored values on conflict.
func (f *flowImpl) UpsertNodeConfiguration(ctx context.Context, conf *model.NodeConfiguration) error {
	return f.DBWithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "node_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"node_type", "configuration", "updated_at"}),
	}).Create(conf).Error
}

func (f *flowImpl) GetNodeConfiguration(ctx context.Context, nodeID uuid.UUID) (*model.NodeConfiguration, error) {
	conf := &model.NodeConfiguration{}
	err := f.DBWithContext(ctx).Where("node_id = ?", nodeID).First(conf).Error
	return conf, err
}

func (f *flowImpl) ListNodeConfigurations(ctx context.Context, flowID int64) ([]*model.NodeConfiguration, error) {
	var confs []*model.NodeConfiguration
	err := f.DBWithContext(ctx).Where("flow_id = ?", flowID).Find(&confs).Error
	return confs, err
}

func (f *flowImpl) DeleteNodeConfiguration(ctx context.Context, nodeID uuid.UUID) error {
	return f.DBWithContext(ctx).Where("node_id = ?", nodeID).Delete(&model.NodeConfiguration{}).Error
}

func (f *flowImpl) GetIDByUUID(ctx context.Context, id uuid.UUID) (int64, error) {
	flow := &model.ProcessFlow{}
	err := f.DBWithContext(ctx).Select("id").Where("uuid = ?", id).First(flow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	return flow.ID, err
}

func (f *flowImpl) GetUUIDByID(ctx context.Context, id int64) (uuid.UUID, error) {
	flow := &model.ProcessFlow{}
	err := f.DBWithContext(ctx).Select("uuid").Where("id = ?", id).First(flow).Error
	return flow.UUID, err
}
