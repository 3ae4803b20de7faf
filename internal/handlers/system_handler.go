package handlers

import (
	"context"
	"net/http"
	"time"

	"ai4local/pkg/errors"
	"ai4local/pkg/response"

	"github.com/gin-gonic/gin"
)

// Pinger 可探活的依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc 适配普通函数
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// SystemHandler 系统处理器
type SystemHandler struct {
	checks map[string]Pinger
}

// NewSystemHandler 创建系统处理器，checks 为 名称 -> 探活
func NewSystemHandler(checks map[string]Pinger) *SystemHandler {
	return &SystemHandler{checks: checks}
}

// Health 检查数据库与队列
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "up"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "unhealthy",
			Data:    status,
		})
		return
	}
	response.Success(c, status)
}

// Ping 存活探针
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, response.Response{Code: errors.CodeSuccess, Message: "pong"})
}
