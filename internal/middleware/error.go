package middleware

import (
	"ai4local/pkg/errors"
	"ai4local/pkg/logger"
	"ai4local/pkg/response"

	"github.com/gin-gonic/gin"
)

// ErrorHandler 错误处理中间件 - 主要处理panic
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.GetLogger().WithFields(map[string]interface{}{
					"path":       c.Request.URL.Path,
					"request_id": c.GetString(ContextRequestID),
				}).Errorf("Panic recovered: %v", err)
				response.ServerError(c, errors.MsgInternalServerError)
				c.Abort()
			}
		}()

		c.Next()
	}
}
