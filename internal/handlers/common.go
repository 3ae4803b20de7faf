package handlers

import (
	"strconv"
	"strings"

	"ai4local/internal/models"
	"ai4local/internal/middleware"
	"ai4local/internal/validation"
	"ai4local/pkg/response"

	"github.com/gin-gonic/gin"
)

// parseID 解析路径中的ID，失败时已写入响应
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// bindAndValidate 解析JSON并按规则表校验，失败时已写入响应
func bindAndValidate(c *gin.Context, input interface{}) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return validate(c, input)
}

// validate 按规则表校验，失败时已写入响应
func validate(c *gin.Context, input interface{}) bool {
	if err := validation.Struct(input); err != nil {
		response.FromError(c, err)
		return false
	}
	return true
}

// currentUser RequireLogin 之后一定存在
func currentUser(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}

// splitQueryList 逗号分隔的查询参数，如 tags=vip,tana
func splitQueryList(c *gin.Context, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
