package session

import (
	"github.com/gin-gonic/gin"

	"github.com/openwms/procflow/pkg/common"
	"github.com/openwms/procflow/pkg/common/code"
	"github.com/openwms/procflow/pkg/common/uuid"
	catalog "github.com/openwms/procflow/pkg/core/catalog"
	"github.com/openwms/procflow/pkg/core/configurator"
	"github.com/openwms/procflow/pkg/core/graph"
	"github.com/openwms/procflow/pkg/core/session"
	"github.com/openwms/procflow/pkg/middleware/logger"
)

// Canvas mutations. Every handler follows the same shape: bind, run
// inside the session lock, broadcast, reply with the touched entity.
// Soft failures (unknown type ids, duplicate-blocked edges) reply ok
// with no payload, mirroring the editor's silent no-op behavior.

func (h *Handle) AddLocation(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	req := &session.AddLocationReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse AddLocation param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}

	// Clone inside the lock: the reply and the async event fan-out must
	// never alias live document state.
	var node *graph.LocationNode
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		if created := store.AddLocationNode(req.LocationTypeID, req.Position); created != nil {
			node = created.Clone()
		}
		return nil
	})
	if node != nil {
		h.broadcast(ctx, s, "location-added", node)
	}
	common.ReplyOk(ctx, node)
}

func (h *Handle) UpdateLocation(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	id, err := uuid.FromString(ctx.Param("uuid"))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	req := &session.UpdateLocationReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}

	var updated bool
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		updated = store.UpdateLocationNode(id, graph.LocationPatch{
			Name:     req.Name,
			Position: req.Position,
		})
		return nil
	})
	if updated {
		h.broadcast(ctx, s, "location-updated", id)
	}
	common.ReplyOk(ctx)
}

func (h *Handle) DeleteLocation(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	id, err := uuid.FromString(ctx.Param("uuid"))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	var deleted bool
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		deleted = store.DeleteLocationNode(id)
		return nil
	})
	if deleted {
		h.broadcast(ctx, s, "location-deleted", id)
	}
	common.ReplyOk(ctx)
}

func (h *Handle) CompatibleTasks(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	id, err := uuid.FromString(ctx.Param("uuid"))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	var types []*catalog.LocationTaskType
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		types = store.CompatibleTaskTypes(id)
		return nil
	})
	common.ReplyOk(ctx, types)
}

func (h *Handle) AddMovement(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	req := &session.AddMovementReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse AddMovement param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}

	var edge *graph.MovementEdge
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		if created := store.AddMovementEdge(req.Source, req.Target, req.TaskTypeID); created != nil {
			edge = created.Clone()
		}
		return nil
	})
	if edge != nil {
		h.broadcast(ctx, s, "movement-added", edge)
	}
	common.ReplyOk(ctx, edge)
}

func (h *Handle) UpdateMovement(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	id, err := uuid.FromString(ctx.Param("uuid"))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	req := &session.UpdateMovementReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}

	var updated bool
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		updated = store.UpdateMovementEdge(id, graph.MovementPatch{Routing: req.Routing})
		return nil
	})
	if updated {
		h.broadcast(ctx, s, "movement-updated", id)
	}
	common.ReplyOk(ctx)
}

func (h *Handle) DeleteMovement(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	id, err := uuid.FromString(ctx.Param("uuid"))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}

	var deleted bool
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		deleted = store.DeleteMovementEdge(id)
		return nil
	})
	if deleted {
		h.broadcast(ctx, s, "movement-deleted", id)
	}
	common.ReplyOk(ctx)
}

func (h *Handle) BeginMovement(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	req := &session.PendingMovementReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		store.BeginMovement(graph.PendingMovement{
			SourceID:   req.Source,
			TargetID:   req.Target,
			TaskTypeID: req.TaskTypeID,
		})
		return nil
	})
	common.ReplyOk(ctx)
}

func (h *Handle) CancelMovement(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		store.CancelMovement()
		return nil
	})
	common.ReplyOk(ctx)
}

func (h *Handle) AddLocationTask(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	req := &session.AddLocationTaskReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse AddLocationTask param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}

	var seq *graph.TaskSequence
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		if created := store.AddLocationTask(req.LocationUUID, req.TaskTypeID); created != nil {
			seq = created.Clone()
		}
		return nil
	})
	if seq != nil {
		h.broadcast(ctx, s, "task-added", seq)
	}
	common.ReplyOk(ctx, seq)
}

func (h *Handle) AddSequenceTask(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	seqID, err := uuid.FromString(ctx.Param("uuid"))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	req := &session.AddSequenceTaskReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}

	var task *graph.LocationTask
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		if created := store.AddTaskToSequence(seqID, req.TaskTypeID); created != nil {
			task = created.Clone()
		}
		return nil
	})
	if task != nil {
		h.broadcast(ctx, s, "sequence-task-added", task)
	}
	common.ReplyOk(ctx, task)
}

func (h *Handle) UpdateSequence(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	seqID, err := uuid.FromString(ctx.Param("uuid"))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	req := &session.UpdateSequenceReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}

	var updated bool
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		updated = store.UpdateTaskSequence(seqID, graph.SequencePatch{Position: req.Position})
		return nil
	})
	if updated {
		h.broadcast(ctx, s, "sequence-updated", seqID)
	}
	common.ReplyOk(ctx)
}

func (h *Handle) DeleteTask(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	req := &session.DeleteTaskReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}

	var deleted bool
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		deleted = store.DeleteLocationTask(req.LocationUUID, req.ID)
		return nil
	})
	if deleted {
		h.broadcast(ctx, s, "task-deleted", req.ID)
	}
	common.ReplyOk(ctx)
}

func (h *Handle) Select(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	req := &session.SelectReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		store.Select(req.Kind, req.ID)
		return nil
	})
	common.ReplyOk(ctx)
}

func (h *Handle) ClearSelection(ctx *gin.Context) {
	s, err := h.session(ctx)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	_ = s.With(func(store *graph.Store, _ *configurator.Configurator) error {
		store.ClearSelection()
		return nil
	})
	common.ReplyOk(ctx)
}
