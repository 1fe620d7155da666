package auth

import (
	"strings"

	gin "github.com/gin-gonic/gin"

	config "github.com/openwms/procflow/internal/config"
	common "github.com/openwms/procflow/pkg/common"
	code "github.com/openwms/procflow/pkg/common/code"
	uuid "github.com/openwms/procflow/pkg/common/uuid"
	logger "github.com/openwms/procflow/pkg/middleware/logger"
)

// AuthWeb guards the designer API. In the dev environment an anonymous
// editor identity is injected so the frontend can run without a login
// flow.
func AuthWeb() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			if config.Global().Server.Env == "dev" {
				attach(ctx, &EditorUser{UUID: uuid.New(), Name: "dev-editor", Role: "editor"})
				ctx.Next()
				return
			}
			common.ReplyErr(ctx, code.UnLogin)
			ctx.Abort()
			return
		}

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			common.ReplyErr(ctx, code.TokenErr.WithMsg("unsupported authorization scheme"))
			ctx.Abort()
			return
		}

		user, err := ParseToken(strings.TrimSpace(tokenStr))
		if err != nil || user == nil {
			logger.Warnf(ctx, "parse editor token err: %+v", err)
			common.ReplyErr(ctx, code.TokenErr)
			ctx.Abort()
			return
		}

		attach(ctx, user)
		ctx.Next()
	}
}

func attach(ctx *gin.Context, u *EditorUser) {
	ctx.Set(USERKEY, u)
	ctx.Request = ctx.Request.WithContext(withUser(ctx.Request.Context(), u))
}
