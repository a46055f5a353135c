package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== 订单状态 ====================

// OrderStatus 订单状态
type OrderStatus int

const (
	OrderStatusPending   OrderStatus = 1 // 待支付
	OrderStatusPaid      OrderStatus = 2 // 已支付
	OrderStatusShipped   OrderStatus = 3 // 已发货
	OrderStatusCompleted OrderStatus = 4 // 已完成
	OrderStatusCanceled  OrderStatus = 5 // 已取消
)

var orderStatusNames = map[OrderStatus]string{
	OrderStatusPending:   "pending",
	OrderStatusPaid:      "paid",
	OrderStatusShipped:   "shipped",
	OrderStatusCompleted: "completed",
	OrderStatusCanceled:  "canceled",
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Valid 是否为已知状态
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusNames[s]
	return ok
}

// orderTransitions 允许的状态流转
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCanceled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCanceled},
	OrderStatusShipped: {OrderStatusCompleted},
}

// CanTransitionTo 当前状态能否流转到 next
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ==================== Order 订单主表 ====================

// Order 订单
type Order struct {
	BaseModel
	OrderNo        string          `gorm:"size:32;not null;uniqueIndex" json:"orderNo"`
	UserID         int64           `gorm:"not null;index" json:"userId"`
	Status         OrderStatus     `gorm:"not null;index" json:"status"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"totalAmount"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"discountAmount"`
	ShippingFee    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"shippingFee"`
	ActualAmount   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"actualAmount"`
	PaymentMethod  *string         `gorm:"size:20" json:"paymentMethod"`

	// 状态时间
	PaymentTime  *time.Time `json:"paymentTime"`
	ShippingTime *time.Time `json:"shippingTime"`
	ReceiveTime  *time.Time `json:"receiveTime"`
	CancelTime   *time.Time `json:"cancelTime"`
	CancelReason *string    `gorm:"type:text" json:"cancelReason"`
	Remark       *string    `gorm:"type:text" json:"remark"`

	// 收货信息 (下单时快照)
	ReceiverName     string `gorm:"size:50;not null" json:"receiverName"`
	ReceiverPhone    string `gorm:"size:20;not null" json:"receiverPhone"`
	ReceiverProvince string `gorm:"size:50;not null" json:"receiverProvince"`
	ReceiverCity     string `gorm:"size:50;not null" json:"receiverCity"`
	ReceiverDistrict string `gorm:"size:50;not null" json:"receiverDistrict"`
	ReceiverAddress  string `gorm:"type:text;not null" json:"receiverAddress"`

	User  *User       `gorm:"foreignKey:UserID" json:"-"`
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// NewOrderNo 生成订单号：下单日期 + 16 位随机十六进制
func NewOrderNo(now time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return now.Format("20060102") + strings.ToUpper(id[:16])
}

// OrderItem 订单明细 (商品信息为下单时快照)
type OrderItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64           `gorm:"not null;index" json:"orderId"`
	SkuID       int64           `gorm:"not null;index" json:"skuId"`
	ProductName string          `gorm:"size:200;not null" json:"productName"`
	SkuName     *string         `gorm:"size:200" json:"skuName"`
	SkuImage    *string         `gorm:"type:text" json:"skuImage"`
	SpecValues  SpecValues      `json:"specValues"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`

	Sku *ProductSKU `gorm:"foreignKey:SkuID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
