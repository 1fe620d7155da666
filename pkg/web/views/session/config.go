package session

import (
	"github.com/gin-gonic/gin"

	"github.com/openwms/procflow/pkg/common"
	"github.com/openwms/procflow/pkg/common/code"
	"github.com/openwms/procflow/pkg/core/configurator"
	"github.com/openwms/procflow/pkg/core/form"
	"github.com/openwms/procflow/pkg/core/graph"
	"github.com/openwms/procflow/pkg/core/session"
)

// Configuration modal endpoints. The modal always operates on the
// session's current selection, so these take no element id.

func (h *Handle) GetConfigForm(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}

	var resp *session.ConfigFormResp
	_ = s.With(func(store *graph.Store, conf *configurator.Configurator) error {
		sel := store.Selection()
		resp = &session.ConfigFormResp{
			ElementName: conf.ElementName(sel),
			Selection:   sel,
			Form:        conf.Render(sel),
		}
		return nil
	})
	common.ReplyOk(ctx, resp)
}

// SubmitConfig validates and persists the modal's values onto the
// selected element. Validation failures reply with the per-field
// messages and leave the document untouched.
func (h *Handle) SubmitConfig(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	req := &session.SubmitConfigReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}

	var sel graph.Selection
	var errs form.FieldErrors
	_ = s.With(func(store *graph.Store, conf *configurator.Configurator) error {
		sel = store.Selection()
		errs = conf.Submit(sel, req.Values)
		return nil
	})

	if !errs.Ok() {
		ctx.JSON(code.ConfigValidateErr.HTTPCode, &common.Resp{
			Code: code.ConfigValidateErr.ErrCode,
			Msg:  code.ConfigValidateErr.ErrMsg,
			Data: errs,
		})
		return
	}

	h.broadcast(ctx, s, "config-submitted", sel)
	common.ReplyOk(ctx)
}

func (h *Handle) CancelConfig(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	_ = s.With(func(_ *graph.Store, conf *configurator.Configurator) error {
		conf.Cancel()
		return nil
	})
	common.ReplyOk(ctx)
}
