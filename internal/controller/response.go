package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecom_admin_v1/internal/api/dto"
	"ecom_admin_v1/internal/editor"
	"ecom_admin_v1/internal/service"
	"ecom_admin_v1/pkg/database"
	"ecom_admin_v1/pkg/identity"
)

// ==================== 统一响应 ====================

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{Success: true, Data: data})
}

func okMsg(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: msg})
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.Response{Success: true, Data: data})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, dto.Response{Success: false, Message: msg})
}

func pageData(list interface{}, total int64, q dto.PageQuery, defSize int) dto.PageData {
	page, size := q.Page, q.PageSize
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = defSize
	}
	if size > 100 {
		size = 100
	}
	return dto.PageData{List: list, Total: total, Page: page, PageSize: size}
}

const defaultPageSize = 20

// notFoundErrors 映射为 404 的业务错误
var notFoundErrors = []error{
	service.ErrUserNotFound,
	service.ErrAddressNotFound,
	service.ErrProductNotFound,
	service.ErrSkuNotFound,
	service.ErrReviewNotFound,
	service.ErrOrderNotFound,
	service.ErrSessionNotFound,
}

// respondError 错误到 HTTP 状态码的唯一映射
// 未识别的错误记录日志后统一返回 500，不暴露内部信息
func respondError(c *gin.Context, log *zap.Logger, err error) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			fail(c, http.StatusNotFound, target.Error())
			return
		}
	}

	var apiErr *identity.APIError
	switch {
	case errors.Is(err, editor.ErrInvalidEdit),
		errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrInvalidSpecValues):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrSessionForbidden):
		fail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrDuplicateVariant),
		errors.Is(err, service.ErrInvalidStatusTransition):
		fail(c, http.StatusConflict, err.Error())
	case database.IsConstraintViolation(err):
		log.Warn("违反数据约束", zap.String("path", c.FullPath()), zap.Error(err))
		fail(c, http.StatusConflict, "数据冲突，请检查唯一字段或关联数据")
	case errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		fail(c, http.StatusBadRequest, apiErr.Message)
	default:
		log.Error("请求处理失败",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		fail(c, http.StatusInternalServerError, "服务器内部错误")
	}
}

// ==================== 参数解析 ====================

// parseID 解析正整数路径参数，失败时已写入 400
func parseID(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "无效的"+label)
		return 0, false
	}
	return id, true
}

// parseIndex 解析下标路径参数，越界由编辑器判断
func parseIndex(c *gin.Context, name string) (int, bool) {
	i, err := strconv.Atoi(c.Param(name))
	if err != nil {
		fail(c, http.StatusBadRequest, "无效的下标")
		return 0, false
	}
	return i, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return false
	}
	return true
}

// bindOptionalJSON 请求体可以省略，空请求体 (含 chunked 传输) 视为零值
func bindOptionalJSON(c *gin.Context, req interface{}) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		fail(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return false
	}
	return true
}
