package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecom_admin_v1/internal/api/dto"
	"ecom_admin_v1/internal/middleware"
	"ecom_admin_v1/internal/service"
	"ecom_admin_v1/pkg/identity"
)

// AuthController 管理员认证，转发到身份服务
type AuthController struct {
	authService *service.AuthService
	verifier    *middleware.TokenVerifier
	log         *zap.Logger
}

func NewAuthController(authService *service.AuthService, verifier *middleware.TokenVerifier, log *zap.Logger) *AuthController {
	return &AuthController{authService: authService, verifier: verifier, log: log}
}

// Register 注册
// @Summary 管理员注册
// @Tags Auth
// @Param request body dto.CredentialsRequest true "邮箱密码"
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.CredentialsRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ctrl.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	created(c, dto.CurrentUser{ID: user.ID, Email: user.Email, Role: user.Role})
}

// Login 登录
// @Summary 管理员登录
// @Tags Auth
// @Param request body dto.CredentialsRequest true "邮箱密码"
// @Success 200 {object} dto.LoginResponse
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.CredentialsRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, dto.LoginResponse{
		AccessToken:  session.AccessToken,
		TokenType:    session.TokenType,
		ExpiresIn:    session.ExpiresIn,
		RefreshToken: session.RefreshToken,
		User: dto.CurrentUser{
			ID:    session.User.ID,
			Email: session.User.Email,
			Role:  session.User.Role,
		},
	})
}

// Logout 注销当前 Token
// @Router /api/auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	token := middleware.GetAccessToken(c)
	if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ctrl.verifier.Forget(token)
	okMsg(c, "已退出登录")
}

// Me 当前登录用户
// @Router /api/auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	user, err := ctrl.authService.Me(c.Request.Context(), middleware.GetAccessToken(c))
	if errors.Is(err, identity.ErrUnauthorized) {
		fail(c, http.StatusUnauthorized, middleware.ErrInvalidToken.Error())
		return
	}
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, dto.CurrentUser{ID: user.ID, Email: user.Email, Role: user.Role})
}
