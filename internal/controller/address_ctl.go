package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecom_admin_v1/internal/api/dto"
	"ecom_admin_v1/internal/service"
)

// AddressController 用户收货地址，路由挂在 /users/:id/addresses 下
type AddressController struct {
	addressService *service.AddressService
	log            *zap.Logger
}

func NewAddressController(addressService *service.AddressService, log *zap.Logger) *AddressController {
	return &AddressController{addressService: addressService, log: log}
}

// List 默认地址排在最前
// @Router /api/users/{id}/addresses [get]
func (ctrl *AddressController) List(c *gin.Context) {
	userID, valid := parseID(c, "id", "用户ID")
	if !valid {
		return
	}

	addresses, err := ctrl.addressService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, addresses)
}

// @Router /api/users/{id}/addresses [post]
func (ctrl *AddressController) Create(c *gin.Context) {
	userID, valid := parseID(c, "id", "用户ID")
	if !valid {
		return
	}
	var req dto.AddressRequest
	if !bindJSON(c, &req) {
		return
	}

	addr, err := ctrl.addressService.Create(c.Request.Context(), userID, service.AddressInput{
		Name:          req.Name,
		Phone:         req.Phone,
		Province:      req.Province,
		City:          req.City,
		District:      req.District,
		DetailAddress: req.DetailAddress,
		PostalCode:    req.PostalCode,
		IsDefault:     req.IsDefault,
	})
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	created(c, addr)
}

// Update 部分更新，isDefault=true 时同时切换默认地址
// @Router /api/users/{id}/addresses/{addressId} [patch]
func (ctrl *AddressController) Update(c *gin.Context) {
	userID, addressID, valid := ctrl.ids(c)
	if !valid {
		return
	}
	var req dto.AddressPatchRequest
	if !bindJSON(c, &req) {
		return
	}

	addr, err := ctrl.addressService.Update(c.Request.Context(), userID, addressID, service.AddressPatch{
		Name:          req.Name,
		Phone:         req.Phone,
		Province:      req.Province,
		City:          req.City,
		District:      req.District,
		DetailAddress: req.DetailAddress,
		PostalCode:    req.PostalCode,
		IsDefault:     req.IsDefault,
	})
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	ok(c, addr)
}

// SetDefault 设为默认地址
// @Router /api/users/{id}/addresses/{addressId}/default [put]
func (ctrl *AddressController) SetDefault(c *gin.Context) {
	userID, addressID, valid := ctrl.ids(c)
	if !valid {
		return
	}

	if err := ctrl.addressService.SetDefault(c.Request.Context(), userID, addressID); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	okMsg(c, "已设为默认地址")
}

// @Router /api/users/{id}/addresses/{addressId} [delete]
func (ctrl *AddressController) Delete(c *gin.Context) {
	userID, addressID, valid := ctrl.ids(c)
	if !valid {
		return
	}

	if err := ctrl.addressService.Delete(c.Request.Context(), userID, addressID); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	okMsg(c, "地址已删除")
}

func (ctrl *AddressController) ids(c *gin.Context) (int64, int64, bool) {
	userID, valid := parseID(c, "id", "用户ID")
	if !valid {
		return 0, 0, false
	}
	addressID, valid := parseID(c, "addressId", "地址ID")
	if !valid {
		return 0, 0, false
	}
	return userID, addressID, true
}
