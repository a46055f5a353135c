package dto

import (
	"github.com/shopspring/decimal"

	"ecom_admin_v1/internal/model"
	"ecom_admin_v1/internal/service"
)

// ==================== 商品 ====================

// ProductListQuery 商品列表查询参数
type ProductListQuery struct {
	PageQuery
	Search    string `form:"search"`
	Status    *int   `form:"status"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

// ProductRequest 新建 / 整体替换商品
type ProductRequest struct {
	Name         string                 `json:"name" binding:"required,max=200"`
	Brand        *string                `json:"brand" binding:"omitempty,max=100"`
	Description  *string                `json:"description"`
	MainImage    *string                `json:"mainImage"`
	DetailImages []string               `json:"detailImages"`
	SpecInfo     map[string]interface{} `json:"specInfo"`
	BasePrice    *decimal.Decimal       `json:"basePrice" binding:"required"`
	Status       *int                   `json:"status"`
	SortOrder    int                    `json:"sortOrder"`
	SpecConfig   *model.SpecConfig      `json:"specConfig"`
}

func (r *ProductRequest) ToInput() service.ProductInput {
	in := service.ProductInput{
		Name:         r.Name,
		Brand:        r.Brand,
		Description:  r.Description,
		MainImage:    r.MainImage,
		DetailImages: r.DetailImages,
		SpecInfo:     r.SpecInfo,
		Status:       r.Status,
		SortOrder:    r.SortOrder,
		SpecConfig:   r.SpecConfig,
	}
	if r.BasePrice != nil {
		in.BasePrice = *r.BasePrice
	}
	return in
}

// ==================== SKU ====================

// SkuRequest 新建 / 整体替换 SKU
type SkuRequest struct {
	SkuCode       string              `json:"skuCode" binding:"required,max=100"`
	SkuName       *string             `json:"skuName" binding:"omitempty,max=200"`
	SpecValues    model.SpecValues    `json:"specValues"`
	ImageURL      *string             `json:"imageUrl"`
	Price         *decimal.Decimal    `json:"price" binding:"required"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	CostPrice     decimal.NullDecimal `json:"costPrice"`
	Stock         int                 `json:"stock"`
	Weight        decimal.NullDecimal `json:"weight"`
	Status        *int                `json:"status"`
}

func (r *SkuRequest) ToInput() service.SkuInput {
	in := service.SkuInput{
		SkuCode:       r.SkuCode,
		SkuName:       r.SkuName,
		SpecValues:    r.SpecValues,
		ImageURL:      r.ImageURL,
		OriginalPrice: r.OriginalPrice,
		CostPrice:     r.CostPrice,
		Stock:         r.Stock,
		Weight:        r.Weight,
		Status:        r.Status,
	}
	if r.Price != nil {
		in.Price = *r.Price
	}
	return in
}

// ==================== 评论 ====================

// ReviewListQuery 评论列表查询参数
type ReviewListQuery struct {
	PageQuery
	Status *int `form:"status"`
}

// ReviewReplyRequest 商家回复
type ReviewReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// ReviewStatusRequest 显示 / 隐藏评论
type ReviewStatusRequest struct {
	Status *int `json:"status" binding:"required"`
}

// ReviewResp 评论列表行
type ReviewResp struct {
	model.ProductReview
	UserNickname  *string `json:"userNickname"`
	UserAvatarURL *string `json:"userAvatarUrl"`
}

func ToReviewResp(r model.ProductReview) ReviewResp {
	resp := ReviewResp{ProductReview: r}
	if r.User != nil {
		resp.UserNickname = r.User.Nickname
		resp.UserAvatarURL = r.User.AvatarURL
	}
	return resp
}
