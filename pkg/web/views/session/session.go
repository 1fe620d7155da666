package session

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/openwms/procflow/pkg/common"
	"github.com/openwms/procflow/pkg/common/code"
	"github.com/openwms/procflow/pkg/common/uuid"
	"github.com/openwms/procflow/pkg/core/configurator"
	flow "github.com/openwms/procflow/pkg/core/flow"
	"github.com/openwms/procflow/pkg/core/graph"
	"github.com/openwms/procflow/pkg/core/notify"
	"github.com/openwms/procflow/pkg/core/session"
	"github.com/openwms/procflow/pkg/middleware/auth"
	"github.com/openwms/procflow/pkg/middleware/logger"
)

type Handle struct {
	manager  *session.Manager
	fService flow.Service
	events   notify.MsgCenter
}

func NewSessionHandle(manager *session.Manager, fService flow.Service, events notify.MsgCenter) *Handle {
	return &Handle{
		manager:  manager,
		fService: fService,
		events:   events,
	}
}

// OpenSession creates a fresh editing session, optionally seeded from
// a saved flow's snapshot.
func (h *Handle) OpenSession(ctx *gin.Context) {
	req := &session.OpenSessionReq{}
	if err := ctx.ShouldBindJSON(req); err != nil && ctx.Request.ContentLength > 0 {
		logger.Errorf(ctx, "parse OpenSession param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}

	var owner uuid.UUID
	if user := auth.GetCurrentUser(ctx); user != nil {
		owner = user.UUID
	}
	s := h.manager.Open(owner)

	if req.FlowUUID != uuid.Nil {
		detail, err := h.fService.GetFlow(ctx, req.FlowUUID)
		if err != nil {
			h.manager.Close(s.ID)
			common.ReplyErr(ctx, err)
			return
		}
		var data graph.FlowData
		if len(detail.FlowData) > 0 {
			if err := json.Unmarshal(detail.FlowData, &data); err != nil {
				h.manager.Close(s.ID)
				common.ReplyErr(ctx, code.ParamErr.WithErr(err))
				return
			}
		}
		_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
			store.Load(&data)
			if store.Name() == "" {
				store.SetName(detail.Name)
			}
			return nil
		})
		s.FlowUUID = req.FlowUUID
	}

	h.replyState(ctx, s)
}

func (h *Handle) GetState(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	h.replyState(ctx, s)
}

func (h *Handle) CloseSession(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	h.manager.Close(s.ID)
	common.ReplyOk(ctx)
}

// SaveSession persists the live document: first save creates a flow,
// later saves update it in place.
func (h *Handle) SaveSession(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	req := &session.SaveSessionReq{}
	if err := ctx.ShouldBindJSON(req); err != nil && ctx.Request.ContentLength > 0 {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}

	var snapshot *graph.FlowData
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		if req.Name != "" {
			store.SetName(req.Name)
		}
		snapshot = store.Snapshot()
		return nil
	})

	raw, err := json.Marshal(snapshot)
	if err != nil {
		common.ReplyErr(ctx, code.UnknownErr.WithErr(err))
		return
	}

	name := snapshot.Name
	if name == "" {
		name = "Untitled Flow"
	}

	if s.FlowUUID == uuid.Nil {
		resp, err := h.fService.CreateFlow(ctx, &flow.CreateFlowReq{
			Name:        name,
			Description: req.Description,
			ProjectName: req.ProjectName,
			FlowData:    raw,
		})
		if err != nil {
			common.ReplyErr(ctx, err)
			return
		}
		s.FlowUUID = resp.UUID
		common.ReplyOk(ctx, resp)
		return
	}

	resp, err := h.fService.UpdateFlow(ctx, &flow.UpdateFlowReq{
		UUID:        s.FlowUUID,
		Name:        name,
		Description: req.Description,
		ProjectName: req.ProjectName,
		FlowData:    raw,
	})
	common.Reply(ctx, err, resp)
}

func (h *Handle) session(ctx *gin.Context) (*session.Session, error) {
	id, err := uuid.FromString(ctx.Param("session_uuid"))
	if err != nil {
		return nil, code.ParamErr.WithMsg(err.Error())
	}
	return h.manager.Get(id)
}

func (h *Handle) replyState(ctx *gin.Context, s *session.Session) {
	resp := &session.StateResp{
		SessionUUID: s.ID,
		FlowUUID:    s.FlowUUID,
	}
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		resp.Data = store.Snapshot()
		resp.Selection = store.Selection()
		resp.PropertiesOpen = store.PropertiesOpen()
		resp.Pending = store.PendingMovement()
		return nil
	})
	common.ReplyOk(ctx, resp)
}

// broadcast publishes a session change for websocket fan-out. Fire and
// forget; editing never waits on delivery.
func (h *Handle) broadcast(ctx *gin.Context, s *session.Session, action string, data any) {
	h.events.Dispatch(ctx.Request.Context(), &notify.SendMsg{
		Channel:     notify.SessionUpdate,
		SessionUUID: s.ID,
		FlowUUID:    s.FlowUUID,
		Data:        gin.H{"action": action, "payload": data},
	})
}
