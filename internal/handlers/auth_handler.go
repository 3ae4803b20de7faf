package handlers

import (
	"time"

	"ai4local/internal/models"
	"ai4local/internal/services"
	"ai4local/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService   *services.AuthService
	tokenDuration time.Duration
}

func NewAuthHandler(authService *services.AuthService, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		tokenDuration: tokenDuration,
	}
}

type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
	User      UserInfo `json:"user"`
}

// UserInfo 对外的用户视图，不含密码哈希
type UserInfo struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserInfo(user *models.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
	}
}

// Register 用户注册
func (h *AuthHandler) Register(c *gin.Context) {
	var input services.RegisterInput
	if !bindAndValidate(c, &input) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, h.loginResponse(result))
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var input services.LoginInput
	if !bindAndValidate(c, &input) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, h.loginResponse(result))
}

// Me 当前用户
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, NewUserInfo(currentUser(c)))
}

func (h *AuthHandler) loginResponse(result *services.AuthResult) LoginResponse {
	return LoginResponse{
		Token:     result.Token,
		ExpiresAt: time.Now().Add(h.tokenDuration).Unix(),
		User:      NewUserInfo(result.User),
	}
}
