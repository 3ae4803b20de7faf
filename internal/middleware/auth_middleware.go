package middleware

import (
	"context"
	"strings"

	"ai4local/internal/models"
	"ai4local/pkg/errors"
	"ai4local/pkg/jwt"
	"ai4local/pkg/response"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ContextUser   = "user"
	ContextUserID = "user_id"
)

// TokenVerifier 校验会话令牌
type TokenVerifier interface {
	VerifyToken(token string) (*jwt.JWTClaims, error)
}

// UserValidator 将令牌中的用户ID解析为用户
type UserValidator interface {
	ValidateUser(ctx context.Context, userID uint) (*models.User, error)
}

// AuthMiddleware 登录守卫
type AuthMiddleware struct {
	tokens TokenVerifier
	users  UserValidator
}

func NewAuthMiddleware(tokens TokenVerifier, users UserValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
	}
}

// RequireLogin 任一步失败都返回 401，不进入业务逻辑
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, errors.MsgLoginRequired)
			c.Abort()
			return
		}

		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
			response.Unauthorized(c, errors.MsgInvalidAuthHeader)
			c.Abort()
			return
		}

		claims, err := m.tokens.VerifyToken(strings.TrimSpace(tokenString))
		if err != nil {
			response.Unauthorized(c, errors.MsgInvalidToken)
			c.Abort()
			return
		}

		user, err := m.users.ValidateUser(c.Request.Context(), claims.UserID)
		if err != nil {
			if appErr, ok := errors.As(err); ok && appErr.Kind == errors.KindUnauthorized {
				response.Unauthorized(c, appErr.Message)
			} else {
				response.FromError(c, err)
			}
			c.Abort()
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)

		c.Next()
	}
}

// CurrentUser 取当前登录用户，未经过 RequireLogin 时返回 nil
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
