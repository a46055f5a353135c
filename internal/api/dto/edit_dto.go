package dto

import (
	"time"

	"ecom_admin_v1/internal/editor"
	"ecom_admin_v1/internal/model"
	"ecom_admin_v1/internal/service"
)

// OpenEditRequest 打开编辑会话，productId 为 0 或缺省表示新建商品
type OpenEditRequest struct {
	ProductID int64 `json:"productId" binding:"min=0"`
}

// SpecFieldRequest 修改规格项的 key 或 name
type SpecFieldRequest struct {
	Field string `json:"field" binding:"required,oneof=key name"`
	Value string `json:"value"`
}

// ValueRequest 追加规格值 / 详情图
type ValueRequest struct {
	Value string `json:"value"`
}

// BatchImagesRequest 按行批量添加详情图
type BatchImagesRequest struct {
	Text string `json:"text"`
}

// MoveRequest 移动到目标位置
type MoveRequest struct {
	To *int `json:"to" binding:"required"`
}

// SaveEditRequest 保存编辑会话，新建商品时需要 product
type SaveEditRequest struct {
	Product *ProductRequest `json:"product"`
}

// EditSessionResp 编辑会话状态
type EditSessionResp struct {
	SessionID    string             `json:"sessionId"`
	ProductID    int64              `json:"productId"`
	State        editor.State       `json:"state"`
	Specs        []model.SpecItem   `json:"specs"`
	ItemStates   []editor.ItemState `json:"itemStates"`
	DetailImages []string           `json:"detailImages"`
	ExpiresAt    time.Time          `json:"expiresAt"`
	Added        *int               `json:"added,omitempty"` // 批量添加的新增数量
}

func ToEditSessionResp(s *service.EditSnapshot) EditSessionResp {
	resp := EditSessionResp{
		SessionID:    s.ID,
		ProductID:    s.ProductID,
		State:        s.State,
		Specs:        s.Specs,
		ItemStates:   s.ItemStates,
		DetailImages: s.Images,
		ExpiresAt:    s.ExpiresAt,
	}
	if resp.ItemStates == nil {
		resp.ItemStates = []editor.ItemState{}
	}
	return resp
}
