package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecom_admin_v1/internal/api/dto"
	"ecom_admin_v1/internal/repository"
	"ecom_admin_v1/internal/service"
)

// ReviewController 商品评论管理
type ReviewController struct {
	reviewService *service.ReviewService
	log           *zap.Logger
}

func NewReviewController(reviewService *service.ReviewService, log *zap.Logger) *ReviewController {
	return &ReviewController{reviewService: reviewService, log: log}
}

// List 评论分页列表，附带评论人昵称和头像
// @Router /api/products/{id}/reviews [get]
func (ctrl *ReviewController) List(c *gin.Context) {
	productID, valid := parseID(c, "id", "商品ID")
	if !valid {
		return
	}
	var q dto.ReviewListQuery
	if !bindQuery(c, &q) {
		return
	}

	reviews, total, err := ctrl.reviewService.List(c.Request.Context(), repository.ReviewFilter{
		ProductID: productID,
		Status:    q.Status,
		Page:      repository.Page{Page: q.Page, PageSize: q.PageSize},
	})
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	list := make([]dto.ReviewResp, 0, len(reviews))
	for _, r := range reviews {
		list = append(list, dto.ToReviewResp(r))
	}
	ok(c, pageData(list, total, q.PageQuery, defaultPageSize))
}

// Reply 商家回复
// @Router /api/products/{id}/reviews/{reviewId}/reply [post]
func (ctrl *ReviewController) Reply(c *gin.Context) {
	productID, reviewID, valid := ctrl.ids(c)
	if !valid {
		return
	}
	var req dto.ReviewReplyRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ctrl.reviewService.Reply(c.Request.Context(), productID, reviewID, req.Content); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	okMsg(c, "回复成功")
}

// UpdateStatus 显示 / 隐藏评论
// @Router /api/products/{id}/reviews/{reviewId}/status [patch]
func (ctrl *ReviewController) UpdateStatus(c *gin.Context) {
	productID, reviewID, valid := ctrl.ids(c)
	if !valid {
		return
	}
	var req dto.ReviewStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ctrl.reviewService.UpdateStatus(c.Request.Context(), productID, reviewID, *req.Status); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	okMsg(c, "状态已更新")
}

// Delete 删除评论
// @Router /api/products/{id}/reviews/{reviewId} [delete]
func (ctrl *ReviewController) Delete(c *gin.Context) {
	productID, reviewID, valid := ctrl.ids(c)
	if !valid {
		return
	}

	if err := ctrl.reviewService.Delete(c.Request.Context(), productID, reviewID); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	okMsg(c, "评论已删除")
}

func (ctrl *ReviewController) ids(c *gin.Context) (int64, int64, bool) {
	productID, valid := parseID(c, "id", "商品ID")
	if !valid {
		return 0, 0, false
	}
	reviewID, valid := parseID(c, "reviewId", "评论ID")
	if !valid {
		return 0, 0, false
	}
	return productID, reviewID, true
}
