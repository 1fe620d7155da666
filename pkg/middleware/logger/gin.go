package logger

import (
	"time"

	gin "github.com/gin-gonic/gin"
)

// LogWithWriter is the access-log middleware: one structured line per
// request after the handler chain completes.
func LogWithWriter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path
		query := ctx.Request.URL.RawQuery

		ctx.Next()

		Infof(ctx, "%s %s?%s status=%d cost=%s client=%s errs=%s",
			ctx.Request.Method,
			path,
			query,
			ctx.Writer.Status(),
			time.Since(start),
			ctx.ClientIP(),
			ctx.Errors.ByType(gin.ErrorTypePrivate).String(),
		)
	}
}
