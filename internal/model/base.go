package model

import (
	"time"
)

// BaseModel 公共字段
// 后台所有删除均为物理删除 (外键级联)，不使用 gorm.DeletedAt
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// 通用启用状态
const (
	StatusDisabled = 0
	StatusEnabled  = 1
)
