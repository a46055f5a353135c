package model

import "time"

// 评论状态
const (
	ReviewStatusHidden  = 0 // 隐藏
	ReviewStatusVisible = 1 // 显示
)

// ProductReview 商品评论
type ProductReview struct {
	BaseModel
	OrderItemID  int64       `gorm:"not null" json:"orderItemId"`
	UserID       int64       `gorm:"not null;index" json:"userId"`
	ProductID    int64       `gorm:"not null;index" json:"productId"`
	SkuID        int64       `gorm:"not null" json:"skuId"`
	Rating       int         `gorm:"not null;check:chk_product_reviews_rating,rating >= 1 AND rating <= 5" json:"rating"`
	Content      *string     `gorm:"type:text" json:"content"`
	Images       StringArray `json:"images"`
	ReplyContent *string     `gorm:"type:text" json:"replyContent"`
	ReplyTime    *time.Time  `json:"replyTime"`
	Status       int         `gorm:"not null;index" json:"status"`

	User      *User       `gorm:"foreignKey:UserID" json:"-"`
	Product   *Product    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Sku       *ProductSKU `gorm:"foreignKey:SkuID" json:"-"`
	OrderItem *OrderItem  `gorm:"foreignKey:OrderItemID" json:"-"`
}

func (ProductReview) TableName() string {
	return "product_reviews"
}
