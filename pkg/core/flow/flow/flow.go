package flow

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/openwms/procflow/pkg/common"
	"github.com/openwms/procflow/pkg/common/code"
	"github.com/openwms/procflow/pkg/common/uuid"
	catalog "github.com/openwms/procflow/pkg/core/catalog"
	"github.com/openwms/procflow/pkg/core/configurator"
	core "github.com/openwms/procflow/pkg/core/flow"
	"github.com/openwms/procflow/pkg/core/form"
	"github.com/openwms/procflow/pkg/core/graph"
	"github.com/openwms/procflow/pkg/core/notify"
	"github.com/openwms/procflow/pkg/middleware/auth"
	"github.com/openwms/procflow/pkg/middleware/logger"
	"github.com/openwms/procflow/pkg/repo"
	"github.com/openwms/procflow/pkg/repo/model"
)

type flowImpl struct {
	repo    repo.FlowRepo
	catalog catalog.Service
	events  notify.MsgCenter
}

func NewFlow(fRepo repo.FlowRepo, cat catalog.Service, events notify.MsgCenter) core.Service {
	return &flowImpl{
		repo:    fRepo,
		catalog: cat,
		events:  events,
	}
}

func (f *flowImpl) CreateFlow(ctx context.Context, req *core.CreateFlowReq) (*core.FlowResp, error) {
	m := &model.ProcessFlow{
		Name:        req.Name,
		Description: req.Description,
		ProjectName: req.ProjectName,
		FlowData:    req.FlowData,
		IsActive:    true,
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if user := auth.GetCurrentUser(ctx); user != nil {
		m.CreatedBy = user.UUID
	}

	if err := f.repo.CreateFlow(ctx, m); err != nil {
		logger.Errorf(ctx, "create flow err: %+v", err)
		return nil, code.CreateDataErr.WithErr(err)
	}

	f.events.Dispatch(ctx, &notify.SendMsg{Channel: notify.FlowSaved, FlowUUID: m.UUID})
	return toFlowResp(m), nil
}

func (f *flowImpl) UpdateFlow(ctx context.Context, req *core.UpdateFlowReq) (*core.FlowResp, error) {
	m, err := f.repo.GetFlowByUUID(ctx, req.UUID)
	if err != nil {
		return nil, flowErr(err)
	}

	if req.Name != "" {
		m.Name = req.Name
	}
	if req.Description != "" {
		m.Description = req.Description
	}
	if req.ProjectName != "" {
		m.ProjectName = req.ProjectName
	}
	if req.FlowData != nil {
		m.FlowData = req.FlowData
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	if err := f.repo.UpdateFlow(ctx, m); err != nil {
		logger.Errorf(ctx, "update flow %s err: %+v", req.UUID, err)
		return nil, code.UpdateDataErr.WithErr(err)
	}

	f.events.Dispatch(ctx, &notify.SendMsg{Channel: notify.FlowSaved, FlowUUID: m.UUID})
	return toFlowResp(m), nil
}

func (f *flowImpl) GetFlow(ctx context.Context, id uuid.UUID) (*core.FlowDetailResp, error) {
	m, err := f.repo.GetFlowByUUID(ctx, id)
	if err != nil {
		return nil, flowErr(err)
	}

	confs, err := f.repo.ListNodeConfigurations(ctx, m.ID)
	if err != nil {
		logger.Errorf(ctx, "list node configurations flow %s err: %+v", id, err)
		return nil, code.QueryRecordErr.WithErr(err)
	}

	resp := &core.FlowDetailResp{
		FlowResp: *toFlowResp(m),
		FlowData: m.FlowData,
	}
	for _, conf := range confs {
		resp.Configurations = append(resp.Configurations, toNodeConfResp(conf))
	}
	return resp, nil
}

func (f *flowImpl) ListFlows(ctx context.Context, req *core.ListFlowReq) (*common.PageResp[[]*core.FlowResp], error) {
	flows, total, err := f.repo.ListFlows(ctx, req.ProjectName, req.Offset(), req.Limit())
	if err != nil {
		logger.Errorf(ctx, "list flows err: %+v", err)
		return nil, code.QueryRecordErr.WithErr(err)
	}

	list := make([]*core.FlowResp, 0, len(flows))
	for _, m := range flows {
		list = append(list, toFlowResp(m))
	}
	return &common.PageResp[[]*core.FlowResp]{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     list,
	}, nil
}

func (f *flowImpl) DeleteFlow(ctx context.Context, id uuid.UUID) error {
	if err := f.repo.DeleteFlow(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.FlowNotFound
		}
		logger.Errorf(ctx, "delete flow %s err: %+v", id, err)
		return code.DeleteDataErr.WithErr(err)
	}

	f.events.Dispatch(ctx, &notify.SendMsg{Channel: notify.FlowDeleted, FlowUUID: id})
	return nil
}

// SaveNodeConfiguration validates the submitted values against the
// element type's schema before persisting. Nothing invalid ever lands
// in storage.
func (f *flowImpl) SaveNodeConfiguration(ctx context.Context, req *core.SaveNodeConfReq) (*core.NodeConfResp, error) {
	fields := configurator.FieldsForType(f.catalog, req.Kind, req.TypeID)
	if len(fields) == 0 && req.Kind != graph.SelectTaskSequence {
		return nil, code.TypeNotFound.WithMsgf("%s/%s", req.Kind, req.TypeID)
	}

	gen := form.NewGenerator(fields)
	sanitized, errs := gen.Submit(req.Values)
	if !errs.Ok() {
		return nil, code.ConfigValidateErr.WithMsg(fieldErrText(errs))
	}

	flowID, err := f.repo.GetIDByUUID(ctx, req.FlowUUID)
	if err != nil {
		return nil, flowErr(err)
	}

	raw, err := json.Marshal(sanitized)
	if err != nil {
		return nil, code.ParamErr.WithErr(err)
	}

	conf := &model.NodeConfiguration{
		FlowID:        flowID,
		NodeID:        req.NodeID,
		NodeType:      string(req.Kind) + ":" + req.TypeID,
		Configuration: raw,
	}
	if err := f.repo.UpsertNodeConfiguration(ctx, conf); err != nil {
		logger.Errorf(ctx, "save node configuration %s err: %+v", req.NodeID, err)
		return nil, code.CreateDataErr.WithErr(err)
	}

	f.events.Dispatch(ctx, &notify.SendMsg{Channel: notify.FlowSaved, FlowUUID: req.FlowUUID})
	return toNodeConfResp(conf), nil
}

func (f *flowImpl) GetNodeConfiguration(ctx context.Context, nodeID uuid.UUID) (*core.NodeConfResp, error) {
	conf, err := f.repo.GetNodeConfiguration(ctx, nodeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.RecordNotFound.WithMsg(nodeID.String())
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return toNodeConfResp(conf), nil
}

func (f *flowImpl) DeleteNodeConfiguration(ctx context.Context, nodeID uuid.UUID) error {
	if err := f.repo.DeleteNodeConfiguration(ctx, nodeID); err != nil {
		logger.Errorf(ctx, "delete node configuration %s err: %+v", nodeID, err)
		return code.DeleteDataErr.WithErr(err)
	}
	return nil
}

func flowErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return code.FlowNotFound
	}
	return code.QueryRecordErr.WithErr(err)
}

func fieldErrText(errs form.FieldErrors) string {
	parts := make([]string, 0, len(errs))
	for id, msg := range errs {
		parts = append(parts, id+": "+msg)
	}
	return strings.Join(parts, "; ")
}

func toFlowResp(m *model.ProcessFlow) *core.FlowResp {
	return &core.FlowResp{
		UUID:        m.UUID,
		Name:        m.Name,
		Description: m.Description,
		ProjectName: m.ProjectName,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toNodeConfResp(conf *model.NodeConfiguration) *core.NodeConfResp {
	kind, typeID, _ := strings.Cut(conf.NodeType, ":")
	values := form.Values{}
	if len(conf.Configuration) > 0 {
		_ = json.Unmarshal(conf.Configuration, &values)
	}
	return &core.NodeConfResp{
		NodeID:        conf.NodeID,
		Kind:          graph.SelectionKind(kind),
		TypeID:        typeID,
		Configuration: values,
		UpdatedAt:     conf.UpdatedAt,
	}
}
