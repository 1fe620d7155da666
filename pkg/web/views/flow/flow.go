package flow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openwms/procflow/pkg/common"
	"github.com/openwms/procflow/pkg/common/code"
	"github.com/openwms/procflow/pkg/common/uuid"
	flow "github.com/openwms/procflow/pkg/core/flow"
	"github.com/openwms/procflow/pkg/middleware/logger"
)

type Handle struct {
	fService flow.Service
}

func NewFlowHandle(fService flow.Service) *Handle {
	return &Handle{fService: fService}
}

func (f *Handle) CreateFlow(ctx *gin.Context) {
	req := &flow.CreateFlowReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse CreateFlow param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := f.fService.CreateFlow(ctx, req)
	common.Reply(ctx, err, resp)
}

func (f *Handle) UpdateFlow(ctx *gin.Context) {
	req := &flow.UpdateFlowReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse UpdateFlow param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := f.fService.UpdateFlow(ctx, req)
	common.Reply(ctx, err, resp)
}

func (f *Handle) GetFlow(ctx *gin.Context) {
	id, err := uuid.FromString(ctx.Param("flow_uuid"))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := f.fService.GetFlow(ctx, id)
	common.Reply(ctx, err, resp)
}

func (f *Handle) ListFlows(ctx *gin.Context) {
	req := &flow.ListFlowReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Errorf(ctx, "parse ListFlows param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := f.fService.ListFlows(ctx, req)
	common.Reply(ctx, err, resp)
}

func (f *Handle) DeleteFlow(ctx *gin.Context) {
	id, err := uuid.FromString(ctx.Param("flow_uuid"))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	common.Reply(ctx, f.fService.DeleteFlow(ctx, id))
}

func (f *Handle) SaveNodeConfiguration(ctx *gin.Context) {
	req := &flow.SaveNodeConfReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse SaveNodeConfiguration param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := f.fService.SaveNodeConfiguration(ctx, req)
	common.Reply(ctx, err, resp)
}

func (f *Handle) GetNodeConfiguration(ctx *gin.Context) {
	nodeID, err := uuid.FromString(ctx.Param("node_uuid"))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := f.fService.GetNodeConfiguration(ctx, nodeID)
	common.Reply(ctx, err, resp)
}

func (f *Handle) DeleteNodeConfiguration(ctx *gin.Context) {
	nodeID, err := uuid.FromString(ctx.Param("node_uuid"))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	common.Reply(ctx, f.fService.DeleteNodeConfiguration(ctx, nodeID))
}

// ExportFlow streams the export artifact as a download.
func (f *Handle) ExportFlow(ctx *gin.Context) {
	id, err := uuid.FromString(ctx.Param("flow_uuid"))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	resp, err := f.fService.ExportFlow(ctx, id)
	if err != nil {
		logger.Errorf(ctx, "ExportFlow err: %+v", err)
		common.ReplyErr(ctx, err)
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		logger.Errorf(ctx, "ExportFlow marshal err: %+v", err)
		common.ReplyErr(ctx, code.ExportErr.WithErr(err))
		return
	}

	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=flow_%s.json", id))
	ctx.Header("Content-Type", "application/json")
	ctx.Header("Content-Length", fmt.Sprintf("%d", len(data)))
	reader := bytes.NewReader(data)
	ctx.DataFromReader(http.StatusOK, int64(len(data)), "application/json", reader, nil)
}
