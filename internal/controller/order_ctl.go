package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecom_admin_v1/internal/api/dto"
	"ecom_admin_v1/internal/model"
	"ecom_admin_v1/internal/repository"
	"ecom_admin_v1/internal/service"
)

type OrderController struct {
	orderService *service.OrderService
	log          *zap.Logger
}

func NewOrderController(orderService *service.OrderService, log *zap.Logger) *OrderController {
	return &OrderController{orderService: orderService, log: log}
}

// List 订单分页列表
// @Summary 订单列表
// @Tags Order
// @Param status query int false "1待支付 2已支付 3已发货 4已完成 5已取消"
// @Param userId query int false "用户ID"
// @Param orderNo query string false "订单号"
// @Router /api/orders [get]
func (ctrl *OrderController) List(c *gin.Context) {
	var q dto.OrderListQuery
	if !bindQuery(c, &q) {
		return
	}

	filter := repository.OrderFilter{
		UserID:  q.UserID,
		OrderNo: q.OrderNo,
		Page:    repository.Page{Page: q.Page, PageSize: q.PageSize},
	}
	if q.Status != nil {
		status := model.OrderStatus(*q.Status)
		filter.Status = &status
	}

	orders, total, err := ctrl.orderService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, pageData(orders, total, q.PageQuery, defaultPageSize))
}

// Get 订单详情，包含订单项
// @Router /api/orders/{id} [get]
func (ctrl *OrderController) Get(c *gin.Context) {
	id, valid := parseID(c, "id", "订单ID")
	if !valid {
		return
	}

	order, err := ctrl.orderService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, order)
}

// ==================== 状态流转 ====================

// Pay 标记已支付
// @Router /api/orders/{id}/pay [post]
func (ctrl *OrderController) Pay(c *gin.Context) {
	id, valid := parseID(c, "id", "订单ID")
	if !valid {
		return
	}
	var req dto.PayOrderRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	ctrl.reply(c, func() (*model.Order, error) {
		return ctrl.orderService.Pay(c.Request.Context(), id, req.PaymentMethod)
	})
}

// Ship 发货
// @Router /api/orders/{id}/ship [post]
func (ctrl *OrderController) Ship(c *gin.Context) {
	id, valid := parseID(c, "id", "订单ID")
	if !valid {
		return
	}
	ctrl.reply(c, func() (*model.Order, error) {
		return ctrl.orderService.Ship(c.Request.Context(), id)
	})
}

// Complete 确认收货
// @Router /api/orders/{id}/complete [post]
func (ctrl *OrderController) Complete(c *gin.Context) {
	id, valid := parseID(c, "id", "订单ID")
	if !valid {
		return
	}
	ctrl.reply(c, func() (*model.Order, error) {
		return ctrl.orderService.Complete(c.Request.Context(), id)
	})
}

// Cancel 取消订单
// @Router /api/orders/{id}/cancel [post]
func (ctrl *OrderController) Cancel(c *gin.Context) {
	id, valid := parseID(c, "id", "订单ID")
	if !valid {
		return
	}
	var req dto.CancelOrderRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	ctrl.reply(c, func() (*model.Order, error) {
		return ctrl.orderService.Cancel(c.Request.Context(), id, req.Reason)
	})
}

func (ctrl *OrderController) reply(c *gin.Context, fn func() (*model.Order, error)) {
	order, err := fn()
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, order)
}
