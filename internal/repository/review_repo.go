package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecom_admin_v1/internal/model"
)

// ReviewRepository 商品评论仓储接口
type ReviewRepository interface {
	Create(ctx context.Context, review *model.ProductReview) error
	ListByProduct(ctx context.Context, filter ReviewFilter) ([]model.ProductReview, int64, error)
	Reply(ctx context.Context, productID, id int64, content string, at time.Time) error
	UpdateStatus(ctx context.Context, productID, id int64, status int) error
	Delete(ctx context.Context, productID, id int64) error
}

// ReviewFilter 评论过滤条件
type ReviewFilter struct {
	ProductID int64
	Status    *int
	Page
}

// ReviewRepo 商品评论仓储实现
type ReviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (r *ReviewRepo) Create(ctx context.Context, review *model.ProductReview) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error
}

// ListByProduct 按创建时间倒序，LEFT JOIN 评论人信息
func (r *ReviewRepo) ListByProduct(ctx context.Context, filter ReviewFilter) ([]model.ProductReview, int64, error) {
	var list []model.ProductReview
	var total int64

	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).
			Model(&model.ProductReview{}).
			Where("product_reviews.product_id = ?", filter.ProductID)
		if filter.Status != nil {
			q = q.Where("product_reviews.status = ?", *filter.Status)
		}
		return q
	}

	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := scoped().
		Joins("User").
		Order("product_reviews.created_at DESC, product_reviews.id DESC").
		Scopes(paginate(filter.Page)).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ReviewRepo) Reply(ctx context.Context, productID, id int64, content string, at time.Time) error {
	return r.updateScoped(ctx, productID, id, map[string]interface{}{
		"reply_content": content,
		"reply_time":    at,
	})
}

func (r *ReviewRepo) UpdateStatus(ctx context.Context, productID, id int64, status int) error {
	return r.updateScoped(ctx, productID, id, map[string]interface{}{"status": status})
}

func (r *ReviewRepo) Delete(ctx context.Context, productID, id int64) error {
	result := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&model.ProductReview{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReviewRepo) updateScoped(ctx context.Context, productID, id int64, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.ProductReview{}).
		Where("id = ? AND product_id = ?", id, productID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
