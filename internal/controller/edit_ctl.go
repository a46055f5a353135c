package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecom_admin_v1/internal/api/dto"
	"ecom_admin_v1/internal/editor"
	"ecom_admin_v1/internal/middleware"
	"ecom_admin_v1/internal/service"
)

// ==================== ProductEditController 商品编辑会话 ====================
// 每个编辑器操作对应一个接口，响应均为会话最新状态

type ProductEditController struct {
	editService *service.EditSessionService
	log         *zap.Logger
}

func NewProductEditController(editService *service.EditSessionService, log *zap.Logger) *ProductEditController {
	return &ProductEditController{editService: editService, log: log}
}

// Open 打开编辑会话
// @Summary 打开商品编辑会话
// @Tags ProductEdit
// @Param request body dto.OpenEditRequest false "productId 缺省表示新建"
// @Router /api/product-edits [post]
func (ctrl *ProductEditController) Open(c *gin.Context) {
	var req dto.OpenEditRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	snap, err := ctrl.editService.Open(c.Request.Context(), middleware.GetUserID(c), req.ProductID)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	created(c, dto.ToEditSessionResp(snap))
}

// Get 会话当前状态
// @Router /api/product-edits/{sid} [get]
func (ctrl *ProductEditController) Get(c *gin.Context) {
	snap, err := ctrl.editService.Get(middleware.GetUserID(c), c.Param("sid"))
	ctrl.reply(c, snap, err)
}

// Save 校验并保存
// @Router /api/product-edits/{sid}/save [post]
func (ctrl *ProductEditController) Save(c *gin.Context) {
	var req dto.SaveEditRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	var base *service.ProductInput
	if req.Product != nil {
		in := req.Product.ToInput()
		base = &in
	}

	product, err := ctrl.editService.Save(c.Request.Context(), middleware.GetUserID(c), c.Param("sid"), base)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, product)
}

// Cancel 丢弃会话
// @Router /api/product-edits/{sid} [delete]
func (ctrl *ProductEditController) Cancel(c *gin.Context) {
	if err := ctrl.editService.Cancel(middleware.GetUserID(c), c.Param("sid")); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	okMsg(c, "已取消编辑")
}

// ==================== 规格项 ====================

// AddSpec 追加空规格项
// @Router /api/product-edits/{sid}/specs [post]
func (ctrl *ProductEditController) AddSpec(c *gin.Context) {
	ctrl.apply(c, func(spec *editor.SpecEditor, _ *editor.ImageEditor) error {
		spec.AddItem()
		return nil
	})
}

// UpdateSpec 修改规格项 key / name
// @Router /api/product-edits/{sid}/specs/{index} [patch]
func (ctrl *ProductEditController) UpdateSpec(c *gin.Context) {
	index, valid := parseIndex(c, "index")
	if !valid {
		return
	}
	var req dto.SpecFieldRequest
	if !bindJSON(c, &req) {
		return
	}
	ctrl.apply(c, func(spec *editor.SpecEditor, _ *editor.ImageEditor) error {
		return spec.UpdateItem(index, req.Field, req.Value)
	})
}

// RemoveSpec 删除规格项
// @Router /api/product-edits/{sid}/specs/{index} [delete]
func (ctrl *ProductEditController) RemoveSpec(c *gin.Context) {
	index, valid := parseIndex(c, "index")
	if !valid {
		return
	}
	ctrl.apply(c, func(spec *editor.SpecEditor, _ *editor.ImageEditor) error {
		return spec.RemoveItem(index)
	})
}

// MoveSpec 调整规格项顺序
// @Router /api/product-edits/{sid}/specs/{index}/move [post]
func (ctrl *ProductEditController) MoveSpec(c *gin.Context) {
	index, valid := parseIndex(c, "index")
	if !valid {
		return
	}
	var req dto.MoveRequest
	if !bindJSON(c, &req) {
		return
	}
	ctrl.apply(c, func(spec *editor.SpecEditor, _ *editor.ImageEditor) error {
		return spec.MoveItem(index, *req.To)
	})
}

// AddSpecValue 追加规格值
// @Router /api/product-edits/{sid}/specs/{index}/values [post]
func (ctrl *ProductEditController) AddSpecValue(c *gin.Context) {
	index, valid := parseIndex(c, "index")
	if !valid {
		return
	}
	var req dto.ValueRequest
	if !bindJSON(c, &req) {
		return
	}
	ctrl.apply(c, func(spec *editor.SpecEditor, _ *editor.ImageEditor) error {
		return spec.AddValue(index, req.Value)
	})
}

// RemoveSpecValue 删除规格值
// @Router /api/product-edits/{sid}/specs/{index}/values/{vindex} [delete]
func (ctrl *ProductEditController) RemoveSpecValue(c *gin.Context) {
	index, valid := parseIndex(c, "index")
	if !valid {
		return
	}
	vindex, valid := parseIndex(c, "vindex")
	if !valid {
		return
	}
	ctrl.apply(c, func(spec *editor.SpecEditor, _ *editor.ImageEditor) error {
		return spec.RemoveValue(index, vindex)
	})
}

// ==================== 详情图 ====================

// AddImage 追加一张详情图
// @Router /api/product-edits/{sid}/images [post]
func (ctrl *ProductEditController) AddImage(c *gin.Context) {
	var req dto.ValueRequest
	if !bindJSON(c, &req) {
		return
	}
	ctrl.apply(c, func(_ *editor.SpecEditor, images *editor.ImageEditor) error {
		return images.AddImage(req.Value)
	})
}

// AddImagesBatch 按行批量添加，跳过空行与重复
// @Router /api/product-edits/{sid}/image-batch [post]
func (ctrl *ProductEditController) AddImagesBatch(c *gin.Context) {
	var req dto.BatchImagesRequest
	if !bindJSON(c, &req) {
		return
	}
	var added int
	snap, err := ctrl.editService.Apply(middleware.GetUserID(c), c.Param("sid"),
		func(_ *editor.SpecEditor, images *editor.ImageEditor) error {
			added = images.AddImagesBatch(req.Text)
			return nil
		})
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	resp := dto.ToEditSessionResp(snap)
	resp.Added = &added
	ok(c, resp)
}

// RemoveImage 删除详情图
// @Router /api/product-edits/{sid}/images/{index} [delete]
func (ctrl *ProductEditController) RemoveImage(c *gin.Context) {
	index, valid := parseIndex(c, "index")
	if !valid {
		return
	}
	ctrl.apply(c, func(_ *editor.SpecEditor, images *editor.ImageEditor) error {
		return images.RemoveImage(index)
	})
}

// MoveImage 调整详情图顺序
// @Router /api/product-edits/{sid}/images/{index}/move [post]
func (ctrl *ProductEditController) MoveImage(c *gin.Context) {
	index, valid := parseIndex(c, "index")
	if !valid {
		return
	}
	var req dto.MoveRequest
	if !bindJSON(c, &req) {
		return
	}
	ctrl.apply(c, func(_ *editor.SpecEditor, images *editor.ImageEditor) error {
		return images.MoveImage(index, *req.To)
	})
}

func (ctrl *ProductEditController) apply(c *gin.Context, op service.EditOp) {
	snap, err := ctrl.editService.Apply(middleware.GetUserID(c), c.Param("sid"), op)
	ctrl.reply(c, snap, err)
}

func (ctrl *ProductEditController) reply(c *gin.Context, snap *service.EditSnapshot, err error) {
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, dto.ToEditSessionResp(snap))
}
