package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecom_admin_v1/internal/model"
)

// ErrDuplicateSpec 同一商品下已有相同规格组合的 SKU
var ErrDuplicateSpec = errors.New("repository: duplicate spec combination")

// ==================== 接口定义 ====================

// SkuRepository SKU 仓储接口
type SkuRepository interface {
	ListByProduct(ctx context.Context, productID int64) ([]model.ProductSKU, error)
	GetByID(ctx context.Context, productID, id int64) (*model.ProductSKU, error)
	Create(ctx context.Context, sku *model.ProductSKU) error
	Update(ctx context.Context, sku *model.ProductSKU) error
	Delete(ctx context.Context, productID, id int64) error
}

// skuColumns 更新时写入的列
var skuColumns = []string{
	"sku_code", "sku_name", "spec_values", "spec_key", "image_url", "price",
	"original_price", "cost_price", "stock", "weight", "status", "updated_at",
}

// ==================== 仓储实现 ====================

// SkuRepo SKU 仓储实现
type SkuRepo struct {
	db *gorm.DB
}

// NewSkuRepo 创建 SKU 仓储
func NewSkuRepo(db *gorm.DB) *SkuRepo {
	return &SkuRepo{db: db}
}

func (r *SkuRepo) ListByProduct(ctx context.Context, productID int64) ([]model.ProductSKU, error) {
	var list []model.ProductSKU
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *SkuRepo) GetByID(ctx context.Context, productID, id int64) (*model.ProductSKU, error) {
	var sku model.ProductSKU
	if err := r.db.WithContext(ctx).Where("id = ? AND product_id = ?", id, productID).First(&sku).Error; err != nil {
		return nil, err
	}
	return &sku, nil
}

// Create 锁定商品行后检查规格组合唯一再写入
func (r *SkuRepo) Create(ctx context.Context, sku *model.ProductSKU) error {
	sku.SyncSpecKey()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueSpec(tx, sku); err != nil {
			return err
		}
		return tx.Create(sku).Error
	})
}

// Update 整体替换 SKU 可编辑字段
func (r *SkuRepo) Update(ctx context.Context, sku *model.ProductSKU) error {
	sku.SyncSpecKey()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueSpec(tx, sku); err != nil {
			return err
		}
		result := tx.Model(sku).
			Where("product_id = ?", sku.ProductID).
			Select(skuColumns).
			Updates(sku)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *SkuRepo) Delete(ctx context.Context, productID, id int64) error {
	result := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&model.ProductSKU{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ensureUniqueSpec 在事务内锁定所属商品，串行化同一商品的 SKU 写入
// 空组合不参与唯一性检查
func ensureUniqueSpec(tx *gorm.DB, sku *model.ProductSKU) error {
	var product model.Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&product, sku.ProductID).Error; err != nil {
		return err
	}
	if sku.SpecKey == nil {
		return nil
	}

	var count int64
	err := tx.Model(&model.ProductSKU{}).
		Where("product_id = ? AND spec_key = ? AND id <> ?", sku.ProductID, *sku.SpecKey, sku.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateSpec
	}
	return nil
}
