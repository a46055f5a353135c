package service

import (
	"context"
	"strings"
	"time"

	"ecom_admin_v1/internal/model"
	"ecom_admin_v1/internal/repository"
)

type ReviewService struct {
	products repository.ProductRepository
	reviews  repository.ReviewRepository
	now      func() time.Time
}

func NewReviewService(products repository.ProductRepository, reviews repository.ReviewRepository) *ReviewService {
	return &ReviewService{products: products, reviews: reviews, now: time.Now}
}

// List 商品评论分页，附带评论人昵称和头像
func (s *ReviewService) List(ctx context.Context, filter repository.ReviewFilter) ([]model.ProductReview, int64, error) {
	if _, err := s.products.GetByID(ctx, filter.ProductID); err != nil {
		return nil, 0, mapNotFound(err, ErrProductNotFound, "查询商品")
	}
	list, total, err := s.reviews.ListByProduct(ctx, filter)
	if err != nil {
		return nil, 0, mapNotFound(err, ErrReviewNotFound, "查询评论列表")
	}
	return list, total, nil
}

// Reply 商家回复，重复回复覆盖上一次内容
func (s *ReviewService) Reply(ctx context.Context, productID, id int64, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return invalidArgf("回复内容不能为空")
	}
	return mapNotFound(s.reviews.Reply(ctx, productID, id, content, s.now()), ErrReviewNotFound, "回复评论")
}

func (s *ReviewService) UpdateStatus(ctx context.Context, productID, id int64, status int) error {
	if status != model.ReviewStatusHidden && status != model.ReviewStatusVisible {
		return invalidArgf("状态取值无效")
	}
	return mapNotFound(s.reviews.UpdateStatus(ctx, productID, id, status), ErrReviewNotFound, "更新评论状态")
}

func (s *ReviewService) Delete(ctx context.Context, productID, id int64) error {
	return mapNotFound(s.reviews.Delete(ctx, productID, id), ErrReviewNotFound, "删除评论")
}
