package dto

// OrderListQuery 订单列表查询参数
type OrderListQuery struct {
	PageQuery
	Status  *int   `form:"status" binding:"omitempty,min=1,max=5"`
	UserID  int64  `form:"userId"`
	OrderNo string `form:"orderNo"`
}

// PayOrderRequest 标记已支付
type PayOrderRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"max=20"`
}

// CancelOrderRequest 取消订单
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}
