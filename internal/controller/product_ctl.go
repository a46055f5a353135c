package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecom_admin_v1/internal/api/dto"
	"ecom_admin_v1/internal/repository"
	"ecom_admin_v1/internal/service"
)

type ProductController struct {
	productService *service.ProductService
	log            *zap.Logger
}

func NewProductController(productService *service.ProductService, log *zap.Logger) *ProductController {
	return &ProductController{productService: productService, log: log}
}

// ==================== 查询接口 ====================

// List 获取商品列表
// @Summary 商品分页列表
// @Tags Product
// @Param search query string false "名称搜索"
// @Param status query int false "状态 0下架 1上架"
// @Param sortBy query string false "排序字段"
// @Param sortOrder query string false "asc / desc"
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(20)
// @Router /api/products [get]
func (ctrl *ProductController) List(c *gin.Context) {
	var q dto.ProductListQuery
	if !bindQuery(c, &q) {
		return
	}

	products, total, err := ctrl.productService.List(c.Request.Context(), repository.ProductFilter{
		Search:    q.Search,
		Status:    q.Status,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      repository.Page{Page: q.Page, PageSize: q.PageSize},
	})
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, pageData(products, total, q.PageQuery, defaultPageSize))
}

// Get 获取商品详情
// @Summary 商品详情
// @Tags Product
// @Param id path int true "商品ID"
// @Router /api/products/{id} [get]
func (ctrl *ProductController) Get(c *gin.Context) {
	id, valid := parseID(c, "id", "商品ID")
	if !valid {
		return
	}

	product, err := ctrl.productService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, product)
}

// ==================== 写入接口 ====================

// Create 新建商品
// @Summary 新建商品
// @Tags Product
// @Param request body dto.ProductRequest true "商品信息"
// @Router /api/products [post]
func (ctrl *ProductController) Create(c *gin.Context) {
	var req dto.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := ctrl.productService.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	created(c, product)
}

// Update 整体替换商品
// @Summary 更新商品
// @Tags Product
// @Param id path int true "商品ID"
// @Param request body dto.ProductRequest true "商品信息"
// @Router /api/products/{id} [put]
func (ctrl *ProductController) Update(c *gin.Context) {
	id, valid := parseID(c, "id", "商品ID")
	if !valid {
		return
	}
	var req dto.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := ctrl.productService.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, product)
}

// Delete 删除商品，SKU 与评论一并删除
// @Summary 删除商品
// @Tags Product
// @Param id path int true "商品ID"
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) Delete(c *gin.Context) {
	id, valid := parseID(c, "id", "商品ID")
	if !valid {
		return
	}

	if err := ctrl.productService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	okMsg(c, "商品已删除")
}
