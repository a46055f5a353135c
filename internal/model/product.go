package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// 商品状态
const (
	ProductStatusOffShelf = 0 // 下架
	ProductStatusOnShelf  = 1 // 上架
)

// Product 商品
type Product struct {
	BaseModel
	Name         string            `gorm:"size:200;not null" json:"name"`
	Brand        *string           `gorm:"size:100" json:"brand"`
	Description  *string           `gorm:"type:text" json:"description"`
	MainImage    *string           `gorm:"type:text" json:"mainImage"`
	DetailImages StringArray       `json:"detailImages"` // 顺序即展示顺序
	SpecInfo     datatypes.JSONMap `json:"specInfo"`     // 自由格式的规格参数
	BasePrice    decimal.Decimal   `gorm:"type:numeric(10,2);not null" json:"basePrice"`
	Status       int               `gorm:"not null;index" json:"status"`
	SortOrder    int               `gorm:"default:0" json:"sortOrder"`
	SalesCount   int               `gorm:"default:0;index" json:"salesCount"`
	ViewCount    int               `gorm:"default:0" json:"viewCount"`
	SpecConfig   *SpecConfig       `json:"specConfig"`

	Skus []ProductSKU `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"skus,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// ProductSKU 商品 SKU
type ProductSKU struct {
	BaseModel
	ProductID     int64               `gorm:"not null;index;uniqueIndex:idx_product_skus_product_spec,priority:1" json:"productId"`
	SkuCode       string              `gorm:"size:100;not null;uniqueIndex" json:"skuCode"`
	SkuName       *string             `gorm:"size:200" json:"skuName"`
	SpecValues    SpecValues          `json:"specValues"`
	SpecKey       *string             `gorm:"size:500;uniqueIndex:idx_product_skus_product_spec,priority:2" json:"-"` // SpecValues.CanonicalKey()，空组合为 NULL
	ImageURL      *string             `gorm:"column:image_url;type:text" json:"imageUrl"`
	Price         decimal.Decimal     `gorm:"type:numeric(10,2);not null" json:"price"`
	OriginalPrice decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"originalPrice"`
	CostPrice     decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"costPrice"`
	Stock         int                 `gorm:"default:0" json:"stock"`
	Weight        decimal.NullDecimal `gorm:"type:numeric(8,2)" json:"weight"`
	Status        int                 `gorm:"not null;index" json:"status"`
}

func (ProductSKU) TableName() string {
	return "product_skus"
}

// SyncSpecKey 根据 SpecValues 刷新 SpecKey
func (s *ProductSKU) SyncSpecKey() {
	if key := s.SpecValues.CanonicalKey(); key != "" {
		s.SpecKey = &key
		return
	}
	s.SpecKey = nil
}
