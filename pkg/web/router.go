package web

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/openwms/procflow/internal/config"
	catalogimpl "github.com/openwms/procflow/pkg/core/catalog/catalog"
	flowimpl "github.com/openwms/procflow/pkg/core/flow/flow"
	"github.com/openwms/procflow/pkg/core/notify/events"
	"github.com/openwms/procflow/pkg/core/session"
	"github.com/openwms/procflow/pkg/middleware/auth"
	"github.com/openwms/procflow/pkg/middleware/logger"
	repoimpl "github.com/openwms/procflow/pkg/repo/flow"
	catalogview "github.com/openwms/procflow/pkg/web/views/catalog"
	flowview "github.com/openwms/procflow/pkg/web/views/flow"
	"github.com/openwms/procflow/pkg/web/views/health"
	sessionview "github.com/openwms/procflow/pkg/web/views/session"
	wsview "github.com/openwms/procflow/pkg/web/views/ws"
)

func NewRouter(ctx context.Context, g *gin.Engine) error {
	installMiddleware(g)
	return installURL(ctx, g)
}

func installMiddleware(g *gin.Engine) {
	g.Use(cors.Default())
	g.Use(otelgin.Middleware(config.Global().Server.Service))
	g.Use(logger.LogWithWriter())
}

func installURL(ctx context.Context, g *gin.Engine) error {
	// The catalog is load-bearing: refusing to start beats serving a
	// designer with no palette.
	catalogSvc, err := catalogimpl.Load(ctx, &config.Global().Catalog)
	if err != nil {
		return err
	}

	eventCenter := events.NewEvents(config.Dynamic(ctx).NotifyWorkers)
	flowSvc := flowimpl.NewFlow(repoimpl.NewFlowImpl(), catalogSvc, eventCenter)
	manager := session.NewManager(ctx, catalogSvc, config.Dynamic(ctx).SessionTTL)

	catalogHandle := catalogview.NewCatalogHandle(catalogSvc)
	flowHandle := flowview.NewFlowHandle(flowSvc)
	sessionHandle := sessionview.NewSessionHandle(manager, flowSvc, eventCenter)
	wsHandle := wsview.NewWSHandle(ctx, eventCenter)

	g.GET("/health", health.Health)
	g.GET("/health/live", health.Live)
	g.GET("/health/ready", health.Ready)
	g.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := g.Group("/api/v1", auth.AuthWeb())

	catalogGroup := api.Group("/catalog")
	{
		catalogGroup.GET("/framework", catalogHandle.Framework)
		catalogGroup.GET("/location-types", catalogHandle.LocationTypes)
		catalogGroup.GET("/movement-task-types", catalogHandle.MovementTaskTypes)
		catalogGroup.GET("/location-task-types", catalogHandle.LocationTaskTypes)
		catalogGroup.GET("/compatible-tasks", catalogHandle.CompatibleTaskTypes)
		catalogGroup.GET("/form-preview", catalogHandle.FormPreview)
	}

	flowGroup := api.Group("/flows")
	{
		flowGroup.POST("", flowHandle.CreateFlow)
		flowGroup.GET("", flowHandle.ListFlows)
		flowGroup.PUT("", flowHandle.UpdateFlow)
		flowGroup.GET("/:flow_uuid", flowHandle.GetFlow)
		flowGroup.DELETE("/:flow_uuid", flowHandle.DeleteFlow)
		flowGroup.GET("/:flow_uuid/export", flowHandle.ExportFlow)
		flowGroup.POST("/configurations", flowHandle.SaveNodeConfiguration)
		flowGroup.GET("/configurations/:node_uuid", flowHandle.GetNodeConfiguration)
		flowGroup.DELETE("/configurations/:node_uuid", flowHandle.DeleteNodeConfiguration)
	}

	sessionGroup := api.Group("/sessions")
	{
		sessionGroup.POST("", sessionHandle.OpenSession)
		sessionGroup.GET("/:session_uuid", sessionHandle.GetState)
		sessionGroup.DELETE("/:session_uuid", sessionHandle.CloseSession)
		sessionGroup.POST("/:session_uuid/save", sessionHandle.SaveSession)

		sessionGroup.POST("/:session_uuid/locations", sessionHandle.AddLocation)
		sessionGroup.PATCH("/:session_uuid/locations/:uuid", sessionHandle.UpdateLocation)
		sessionGroup.DELETE("/:session_uuid/locations/:uuid", sessionHandle.DeleteLocation)
		sessionGroup.GET("/:session_uuid/locations/:uuid/compatible-tasks", sessionHandle.CompatibleTasks)

		sessionGroup.POST("/:session_uuid/movements", sessionHandle.AddMovement)
		sessionGroup.PATCH("/:session_uuid/movements/:uuid", sessionHandle.UpdateMovement)
		sessionGroup.DELETE("/:session_uuid/movements/:uuid", sessionHandle.DeleteMovement)
		sessionGroup.POST("/:session_uuid/movements/pending", sessionHandle.BeginMovement)
		sessionGroup.DELETE("/:session_uuid/movements/pending", sessionHandle.CancelMovement)

		sessionGroup.POST("/:session_uuid/tasks", sessionHandle.AddLocationTask)
		sessionGroup.DELETE("/:session_uuid/tasks", sessionHandle.DeleteTask)
		sessionGroup.POST("/:session_uuid/sequences/:uuid/tasks", sessionHandle.AddSequenceTask)
		sessionGroup.PATCH("/:session_uuid/sequences/:uuid", sessionHandle.UpdateSequence)

		sessionGroup.PUT("/:session_uuid/selection", sessionHandle.Select)
		sessionGroup.DELETE("/:session_uuid/selection", sessionHandle.ClearSelection)

		sessionGroup.GET("/:session_uuid/config-form", sessionHandle.GetConfigForm)
		sessionGroup.POST("/:session_uuid/config-form", sessionHandle.SubmitConfig)
		sessionGroup.DELETE("/:session_uuid/config-form", sessionHandle.CancelConfig)
	}

	wsGroup := api.Group("/ws")
	{
		wsGroup.GET("/sessions/:session_uuid", wsHandle.SessionEvents)
	}

	return nil
}
