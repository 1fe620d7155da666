package catalog

import (
	"github.com/gin-gonic/gin"

	"github.com/openwms/procflow/pkg/common"
	"github.com/openwms/procflow/pkg/common/code"
	catalog "github.com/openwms/procflow/pkg/core/catalog"
	"github.com/openwms/procflow/pkg/core/configurator"
	"github.com/openwms/procflow/pkg/core/form"
	"github.com/openwms/procflow/pkg/core/graph"
	"github.com/openwms/procflow/pkg/middleware/logger"
)

type Handle struct {
	cService catalog.Service
}

func NewCatalogHandle(cService catalog.Service) *Handle {
	return &Handle{cService: cService}
}

// Framework returns the whole loaded catalog document.
func (c *Handle) Framework(ctx *gin.Context) {
	common.ReplyOk(ctx, c.cService.Config())
}

func (c *Handle) LocationTypes(ctx *gin.Context) {
	common.ReplyOk(ctx, c.cService.Config().LocationNodeTypes)
}

func (c *Handle) MovementTaskTypes(ctx *gin.Context) {
	common.ReplyOk(ctx, c.cService.Config().MovementTaskTypes)
}

func (c *Handle) LocationTaskTypes(ctx *gin.Context) {
	common.ReplyOk(ctx, c.cService.Config().LocationTaskTypes)
}

type compatibleReq struct {
	LocationTypeID string   `form:"location_type_id" binding:"required"`
	Exclude        []string `form:"exclude"`
}

// CompatibleTaskTypes lists the location task types attachable to a
// location type, minus the already-attached ones the client passes.
func (c *Handle) CompatibleTaskTypes(ctx *gin.Context) {
	req := &compatibleReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Errorf(ctx, "parse CompatibleTaskTypes param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	if _, ok := c.cService.LocationType(req.LocationTypeID); !ok {
		common.ReplyErr(ctx, code.TypeNotFound.WithMsg(req.LocationTypeID))
		return
	}
	common.ReplyOk(ctx, c.cService.CompatibleTaskTypes(req.LocationTypeID, req.Exclude))
}

type formPreviewReq struct {
	Kind   graph.SelectionKind `form:"kind" binding:"required"`
	TypeID string              `form:"type_id"`
}

// FormPreview renders the configuration form an element of the given
// kind and type would show, populated with schema defaults. Lets the
// frontend build palettes without a live session.
func (c *Handle) FormPreview(ctx *gin.Context) {
	req := &formPreviewReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Errorf(ctx, "parse FormPreview param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}

	fields := configurator.FieldsForType(c.cService, req.Kind, req.TypeID)
	if len(fields) == 0 && req.Kind != graph.SelectTaskSequence {
		common.ReplyErr(ctx, code.TypeNotFound.WithMsgf("%s/%s", req.Kind, req.TypeID))
		return
	}
	common.ReplyOk(ctx, form.NewGenerator(fields).Render(nil))
}
