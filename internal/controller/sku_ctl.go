package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecom_admin_v1/internal/api/dto"
	"ecom_admin_v1/internal/service"
)

// SkuController 商品 SKU，路由挂在 /products/:id/skus 下
type SkuController struct {
	skuService *service.SkuService
	log        *zap.Logger
}

func NewSkuController(skuService *service.SkuService, log *zap.Logger) *SkuController {
	return &SkuController{skuService: skuService, log: log}
}

// List 商品下的全部 SKU
// @Router /api/products/{id}/skus [get]
func (ctrl *SkuController) List(c *gin.Context) {
	productID, valid := parseID(c, "id", "商品ID")
	if !valid {
		return
	}

	skus, err := ctrl.skuService.List(c.Request.Context(), productID)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, skus)
}

// Create 新建 SKU
// @Router /api/products/{id}/skus [post]
func (ctrl *SkuController) Create(c *gin.Context) {
	productID, valid := parseID(c, "id", "商品ID")
	if !valid {
		return
	}
	var req dto.SkuRequest
	if !bindJSON(c, &req) {
		return
	}

	sku, err := ctrl.skuService.Create(c.Request.Context(), productID, req.ToInput())
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	created(c, sku)
}

// Update 整体替换 SKU
// @Router /api/products/{id}/skus/{skuId} [put]
func (ctrl *SkuController) Update(c *gin.Context) {
	productID, valid := parseID(c, "id", "商品ID")
	if !valid {
		return
	}
	skuID, valid := parseID(c, "skuId", "SKU ID")
	if !valid {
		return
	}
	var req dto.SkuRequest
	if !bindJSON(c, &req) {
		return
	}

	sku, err := ctrl.skuService.Update(c.Request.Context(), productID, skuID, req.ToInput())
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, sku)
}

// Delete 删除 SKU
// @Router /api/products/{id}/skus/{skuId} [delete]
func (ctrl *SkuController) Delete(c *gin.Context) {
	productID, valid := parseID(c, "id", "商品ID")
	if !valid {
		return
	}
	skuID, valid := parseID(c, "skuId", "SKU ID")
	if !valid {
		return
	}

	if err := ctrl.skuService.Delete(c.Request.Context(), productID, skuID); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	okMsg(c, "SKU已删除")
}
