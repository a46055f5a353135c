package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// 业务错误，控制器据此映射 HTTP 状态码
var (
	ErrUserNotFound    = errors.New("用户不存在")
	ErrAddressNotFound = errors.New("地址不存在")
	ErrProductNotFound = errors.New("商品不存在")
	ErrSkuNotFound     = errors.New("SKU不存在")
	ErrReviewNotFound  = errors.New("评论不存在")
	ErrOrderNotFound   = errors.New("订单不存在")
	ErrSessionNotFound = errors.New("编辑会话不存在或已过期")

	ErrSessionForbidden        = errors.New("无权操作该编辑会话")
	ErrDuplicateVariant        = errors.New("该规格组合的SKU已存在")
	ErrInvalidStatusTransition = errors.New("订单当前状态不允许该操作")
	ErrInvalidCredentials      = errors.New("邮箱或密码错误")

	// ErrInvalidArgument 参数校验失败，具体原因包装在消息中
	ErrInvalidArgument = errors.New("参数错误")
)

// invalidArgf 构造参数错误，消息对调用方可见
func invalidArgf(format string, args ...interface{}) error {
	return &argumentError{msg: fmt.Sprintf(format, args...)}
}

type argumentError struct {
	msg string
}

func (e *argumentError) Error() string        { return e.msg }
func (e *argumentError) Is(target error) bool { return target == ErrInvalidArgument }

// mapNotFound 将 gorm.ErrRecordNotFound 转换为业务哨兵，其他错误附加上下文
func mapNotFound(err error, sentinel error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", op, err)
}
