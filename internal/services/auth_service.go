package services

import (
	"context"
	"sync"

	"ai4local/internal/models"
	"ai4local/internal/repository"
	"ai4local/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes bcrypt 只使用前 72 字节
const MaxPasswordBytes = 72

// TokenIssuer 签发会话令牌
type TokenIssuer interface {
	GenerateToken(userID uint, email string) (string, error)
}

// AuthResult 注册/登录结果，User 为完整实体，由边界层负责脱敏
type AuthResult struct {
	User  *models.User
	Token string
}

type AuthService struct {
	users  repository.UserRepository
	tokens TokenIssuer

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(users repository.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Register 注册：先查重，再哈希，最后写库
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := NormalizeEmail(input.Email)
	if len(input.Password) > MaxPasswordBytes {
		return nil, errors.InvalidParam("password must be at most 72 bytes")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict(errors.MsgEmailTaken)
	}

	user := &models.User{
		Email:     email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	// 并发注册时由唯一索引兜底，返回 Conflict
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login 邮箱不存在与密码错误返回同一错误
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.burnHash(input.Password)
		return nil, errors.Unauthorized(errors.MsgBadCredentials)
	}
	if !user.CheckPassword(input.Password) {
		return nil, errors.Unauthorized(errors.MsgBadCredentials)
	}

	return s.issue(user)
}

// ValidateUser 供登录守卫使用
func (s *AuthService) ValidateUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.Unauthorized(errors.MsgUserNotFound)
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// burnHash 邮箱不存在时也做一次哈希比较，使耗时与密码错误一致
func (s *AuthService) burnHash(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("ai4local-dummy-password"), models.PasswordCost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}
