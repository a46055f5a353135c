package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"ecom_admin_v1/pkg/identity"
)

// IdentityProvider 托管身份服务
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*identity.User, error)
	SignIn(ctx context.Context, email, password string) (*identity.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*identity.User, error)
}

const minPasswordLen = 6

// AuthService 注册/登录转发到身份服务，后台自身不保存密码
type AuthService struct {
	idp IdentityProvider
	log *zap.Logger
}

func NewAuthService(idp IdentityProvider, log *zap.Logger) *AuthService {
	return &AuthService{idp: idp, log: log}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*identity.User, error) {
	email, err := checkCredentials(email, password)
	if err != nil {
		return nil, err
	}
	user, err := s.idp.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.log.Info("管理员注册", zap.String("email", email), zap.String("user_id", user.ID))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*identity.Session, error) {
	email, err := checkCredentials(email, password)
	if err != nil {
		return nil, err
	}
	session, err := s.idp.SignIn(ctx, email, password)
	if errors.Is(err, identity.ErrUnauthorized) {
		s.log.Warn("登录失败", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	err := s.idp.SignOut(ctx, accessToken)
	if errors.Is(err, identity.ErrUnauthorized) {
		// 会话已失效，视为注销成功
		return nil
	}
	return err
}

// Me 以身份服务为准查询当前用户
func (s *AuthService) Me(ctx context.Context, accessToken string) (*identity.User, error) {
	return s.idp.GetUser(ctx, accessToken)
}

func checkCredentials(email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", invalidArgf("邮箱格式不正确")
	}
	if len(password) < minPasswordLen {
		return "", invalidArgf("密码至少 %d 位", minPasswordLen)
	}
	return email, nil
}
