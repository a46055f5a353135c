package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecom_admin_v1/internal/model"
)

// ==================== 接口定义 ====================

// AddressRepository 收货地址仓储接口
// 所有改变默认地址的写操作都在同一事务内锁定用户行后执行，
// 保证任何时刻同一用户最多一个默认地址
type AddressRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.UserAddress, error)
	GetByID(ctx context.Context, userID, id int64) (*model.UserAddress, error)
	Create(ctx context.Context, addr *model.UserAddress) error
	UpdateFields(ctx context.Context, userID, id int64, fields map[string]interface{}) (*model.UserAddress, error)
	SetDefault(ctx context.Context, userID, id int64) error
	Delete(ctx context.Context, userID, id int64) error

	// 巡检
	FindUsersWithMultipleDefaults(ctx context.Context) ([]int64, error)
	RepairDefault(ctx context.Context, userID int64) (int64, error)
}

// ==================== 仓储实现 ====================

// AddressRepo 收货地址仓储实现
type AddressRepo struct {
	db *gorm.DB
}

// NewAddressRepo 创建收货地址仓储
func NewAddressRepo(db *gorm.DB) *AddressRepo {
	return &AddressRepo{db: db}
}

// ListByUser 默认地址在前，其余按创建时间倒序
func (r *AddressRepo) ListByUser(ctx context.Context, userID int64) ([]model.UserAddress, error) {
	var list []model.UserAddress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *AddressRepo) GetByID(ctx context.Context, userID, id int64) (*model.UserAddress, error) {
	var addr model.UserAddress
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&addr).Error; err != nil {
		return nil, err
	}
	return &addr, nil
}

// Create 新增地址
// 用户的第一个地址或显式设为默认的地址会成为唯一默认地址
func (r *AddressRepo) Create(ctx context.Context, addr *model.UserAddress) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, addr.UserID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.UserAddress{}).Where("user_id = ?", addr.UserID).Count(&count).Error; err != nil {
			return err
		}
		makeDefault := addr.IsDefault || count == 0
		addr.IsDefault = false
		if err := tx.Create(addr).Error; err != nil {
			return err
		}
		if !makeDefault {
			return nil
		}
		if err := setDefault(tx, addr.UserID, addr.ID); err != nil {
			return err
		}
		addr.IsDefault = true
		return nil
	})
}

// UpdateFields 部分更新地址字段
// is_default=true 时与 SetDefault 走同一路径，返回更新后的地址
func (r *AddressRepo) UpdateFields(ctx context.Context, userID, id int64, fields map[string]interface{}) (*model.UserAddress, error) {
	var out model.UserAddress
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, userID); err != nil {
			return err
		}
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&out).Error; err != nil {
			return err
		}

		makeDefault := false
		if v, ok := fields["is_default"].(bool); ok && v {
			makeDefault = true
			delete(fields, "is_default")
		}
		if len(fields) > 0 {
			if err := tx.Model(&out).Updates(fields).Error; err != nil {
				return err
			}
		}
		if makeDefault {
			if err := setDefault(tx, userID, id); err != nil {
				return err
			}
		}
		return tx.First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetDefault 将地址设为用户唯一的默认地址
func (r *AddressRepo) SetDefault(ctx context.Context, userID, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, userID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&model.UserAddress{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return setDefault(tx, userID, id)
	})
}

// Delete 删除地址，删除的是默认地址时把最近更新的剩余地址提升为默认
func (r *AddressRepo) Delete(ctx context.Context, userID, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, userID); err != nil {
			return err
		}
		var addr model.UserAddress
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&addr).Error; err != nil {
			return err
		}
		if err := tx.Delete(&addr).Error; err != nil {
			return err
		}
		if !addr.IsDefault {
			return nil
		}

		var next model.UserAddress
		err := tx.Where("user_id = ?", userID).Order("updated_at DESC, id DESC").First(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return setDefault(tx, userID, next.ID)
	})
}

// FindUsersWithMultipleDefaults 查找存在多个默认地址的用户
func (r *AddressRepo) FindUsersWithMultipleDefaults(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.UserAddress{}).
		Where("is_default = ?", true).
		Group("user_id").
		Having("COUNT(*) > 1").
		Pluck("user_id", &ids).Error
	return ids, err
}

// RepairDefault 保留最近更新的默认地址，其余取消默认，返回保留的地址 ID
func (r *AddressRepo) RepairDefault(ctx context.Context, userID int64) (int64, error) {
	var keep model.UserAddress
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, userID); err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND is_default = ?", userID, true).
			Order("updated_at DESC, id DESC").
			First(&keep).Error; err != nil {
			return err
		}
		return setDefault(tx, userID, keep.ID)
	})
	if err != nil {
		return 0, err
	}
	return keep.ID, nil
}

// lockUser 锁定用户行，串行化同一用户的默认地址写操作
// sqlite 不支持 FOR UPDATE，gorm 方言会忽略该子句
func lockUser(tx *gorm.DB, userID int64) error {
	var user model.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&user, userID).Error
	if err != nil {
		return fmt.Errorf("锁定用户 %d: %w", userID, err)
	}
	return nil
}

// setDefault 单条条件更新：目标地址置为默认，同一用户的其他地址全部取消
func setDefault(tx *gorm.DB, userID, id int64) error {
	return tx.Model(&model.UserAddress{}).
		Where("user_id = ?", userID).
		UpdateColumn("is_default", gorm.Expr("(id = ?)", id)).Error
}
