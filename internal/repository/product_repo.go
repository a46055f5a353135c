package repository

import (
	"context"

	"gorm.io/gorm"

	"ecom_admin_v1/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, product *model.Product) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// ==================== 过滤条件 ====================

// ProductFilter 商品过滤条件
type ProductFilter struct {
	Search    string // 名称模糊匹配
	Status    *int
	SortBy    string // createdAt / name / basePrice / salesCount / viewCount
	SortOrder string // asc / desc
	Page
}

// productSortColumns 允许排序的字段
var productSortColumns = map[string]string{
	"createdAt":  "created_at",
	"name":       "name",
	"basePrice":  "base_price",
	"salesCount": "sales_count",
	"viewCount":  "view_count",
}

// orderClause 非法 sortBy 回退为创建时间，非 asc 一律倒序
func (f ProductFilter) orderClause() string {
	col, ok := productSortColumns[f.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if f.SortOrder == "asc" {
		dir = "ASC"
	}
	return col + " " + dir + ", id " + dir
}

// productColumns 整体更新时写入的列
var productColumns = []string{
	"name", "brand", "description", "main_image", "detail_images", "spec_info",
	"base_price", "status", "sort_order", "spec_config", "updated_at",
}

// ==================== 仓储实现 ====================

// ProductRepo 商品仓储实现
type ProductRepo struct {
	db *gorm.DB
}

// NewProductRepo 创建商品仓储
func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Omit("Skus").Create(product).Error
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order(filter.orderClause()).Scopes(paginate(filter.Page)).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Update 整体替换可编辑字段 (单条 UPDATE)
func (r *ProductRepo) Update(ctx context.Context, product *model.Product) error {
	result := r.db.WithContext(ctx).
		Model(product).
		Select(productColumns).
		Updates(product)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProductRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除商品及其 SKU 和评论
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductReview{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductSKU{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
