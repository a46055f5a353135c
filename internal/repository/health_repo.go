package repository

import (
	"context"

	"gorm.io/gorm"
)

// HealthRepo 数据库连通性检查
type HealthRepo struct {
	db *gorm.DB
}

func NewHealthRepo(db *gorm.DB) *HealthRepo {
	return &HealthRepo{db: db}
}

// Ping 执行一条最简单的查询
func (r *HealthRepo) Ping(ctx context.Context) error {
	var one int
	return r.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
}
