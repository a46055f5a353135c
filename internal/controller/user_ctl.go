package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecom_admin_v1/internal/api/dto"
	"ecom_admin_v1/internal/repository"
	"ecom_admin_v1/internal/service"
)

// ==================== UserController 用户控制器 ====================

// UserController 商城用户管理
type UserController struct {
	userService *service.UserService
	log         *zap.Logger
}

// NewUserController 创建用户控制器
func NewUserController(userService *service.UserService, log *zap.Logger) *UserController {
	return &UserController{userService: userService, log: log}
}

// List 用户分页列表
// @Summary 用户列表
// @Tags User
// @Param keyword query string false "昵称/手机号/邮箱"
// @Param status query int false "状态"
// @Router /api/users [get]
func (ctrl *UserController) List(c *gin.Context) {
	var q dto.UserListQuery
	if !bindQuery(c, &q) {
		return
	}

	users, total, err := ctrl.userService.List(c.Request.Context(), repository.UserFilter{
		Keyword: q.Keyword,
		Status:  q.Status,
		Page:    repository.Page{Page: q.Page, PageSize: q.PageSize},
	})
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, pageData(users, total, q.PageQuery, defaultPageSize))
}

// Get 用户详情
// @Router /api/users/{id} [get]
func (ctrl *UserController) Get(c *gin.Context) {
	id, valid := parseID(c, "id", "用户ID")
	if !valid {
		return
	}

	user, err := ctrl.userService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, user)
}

// Update 部分更新用户资料
// @Router /api/users/{id} [patch]
func (ctrl *UserController) Update(c *gin.Context) {
	id, valid := parseID(c, "id", "用户ID")
	if !valid {
		return
	}
	var req dto.UserPatchRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := service.UserPatch{
		Nickname:  req.Nickname,
		AvatarURL: req.AvatarURL,
		Gender:    req.Gender,
		Phone:     req.Phone,
		Email:     req.Email,
		Status:    req.Status,
	}
	if req.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			fail(c, http.StatusBadRequest, "生日格式应为 YYYY-MM-DD")
			return
		}
		patch.Birthday = &birthday
	}

	user, err := ctrl.userService.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, user)
}
