package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"ecom_admin_v1/internal/model"
	"ecom_admin_v1/internal/repository"
	"ecom_admin_v1/pkg/database"
)

// ErrInvalidSpecValues SKU 规格取值与商品规格配置不符
var ErrInvalidSpecValues = errors.New("SKU规格取值无效")

// SpecValuesError 具体的不符原因
type SpecValuesError struct {
	Key    string
	Value  string
	Reason string
}

func (e *SpecValuesError) Error() string {
	if e.Key == "" {
		return e.Reason
	}
	return fmt.Sprintf("规格 %s=%s: %s", e.Key, e.Value, e.Reason)
}

func (e *SpecValuesError) Is(target error) bool { return target == ErrInvalidSpecValues }

// SkuInput 新建或整体替换 SKU 的参数
type SkuInput struct {
	SkuCode       string
	SkuName       *string
	SpecValues    model.SpecValues
	ImageURL      *string
	Price         decimal.Decimal
	OriginalPrice decimal.NullDecimal
	CostPrice     decimal.NullDecimal
	Stock         int
	Weight        decimal.NullDecimal
	Status        *int
}

type SkuService struct {
	products repository.ProductRepository
	skus     repository.SkuRepository
}

func NewSkuService(products repository.ProductRepository, skus repository.SkuRepository) *SkuService {
	return &SkuService{products: products, skus: skus}
}

func (s *SkuService) List(ctx context.Context, productID int64) ([]model.ProductSKU, error) {
	if _, err := s.product(ctx, productID); err != nil {
		return nil, err
	}
	list, err := s.skus.ListByProduct(ctx, productID)
	if err != nil {
		return nil, mapNotFound(err, ErrSkuNotFound, "查询SKU列表")
	}
	return list, nil
}

func (s *SkuService) Create(ctx context.Context, productID int64, in SkuInput) (*model.ProductSKU, error) {
	product, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}
	sku, err := buildSku(product, in)
	if err != nil {
		return nil, err
	}
	if err := s.skus.Create(ctx, sku); err != nil {
		return nil, skuWriteError(err, "创建SKU")
	}
	return sku, nil
}

func (s *SkuService) Update(ctx context.Context, productID, id int64, in SkuInput) (*model.ProductSKU, error) {
	product, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}
	sku, err := buildSku(product, in)
	if err != nil {
		return nil, err
	}
	sku.ID = id
	if err := s.skus.Update(ctx, sku); err != nil {
		return nil, skuWriteError(err, "更新SKU")
	}
	out, err := s.skus.GetByID(ctx, productID, id)
	if err != nil {
		return nil, mapNotFound(err, ErrSkuNotFound, "查询SKU")
	}
	return out, nil
}

func (s *SkuService) Delete(ctx context.Context, productID, id int64) error {
	return mapNotFound(s.skus.Delete(ctx, productID, id), ErrSkuNotFound, "删除SKU")
}

func (s *SkuService) product(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrProductNotFound, "查询商品")
	}
	return product, nil
}

func buildSku(product *model.Product, in SkuInput) (*model.ProductSKU, error) {
	code := strings.TrimSpace(in.SkuCode)
	if code == "" {
		return nil, invalidArgf("SKU编码不能为空")
	}
	if in.Price.IsNegative() {
		return nil, invalidArgf("价格不能为负数")
	}
	if in.Stock < 0 {
		return nil, invalidArgf("库存不能为负数")
	}
	status := model.StatusEnabled
	if in.Status != nil {
		if *in.Status != model.StatusDisabled && *in.Status != model.StatusEnabled {
			return nil, invalidArgf("状态取值无效")
		}
		status = *in.Status
	}
	if err := CheckSpecValues(product.SpecConfig, in.SpecValues); err != nil {
		return nil, err
	}

	return &model.ProductSKU{
		ProductID:     product.ID,
		SkuCode:       code,
		SkuName:       in.SkuName,
		SpecValues:    in.SpecValues,
		ImageURL:      in.ImageURL,
		Price:         in.Price.Round(2),
		OriginalPrice: in.OriginalPrice,
		CostPrice:     in.CostPrice,
		Stock:         in.Stock,
		Weight:        in.Weight,
		Status:        status,
	}, nil
}

// CheckSpecValues 校验 SKU 规格取值
// 商品有规格配置时：取值非空，每个 key 属于配置且值在允许范围内；
// 商品没有规格配置时：只允许空取值
func CheckSpecValues(cfg *model.SpecConfig, values model.SpecValues) error {
	if cfg.IsEmpty() {
		if len(values) > 0 {
			return &SpecValuesError{Reason: "商品未配置规格，SKU不能设置规格取值"}
		}
		return nil
	}
	if len(values) == 0 {
		return &SpecValuesError{Reason: "请选择规格取值"}
	}
	for key, value := range values {
		item, ok := cfg.Lookup(key)
		if !ok {
			return &SpecValuesError{Key: key, Value: value, Reason: "规格不存在"}
		}
		if !item.Permits(value) {
			return &SpecValuesError{Key: key, Value: value, Reason: "规格值不在可选范围内"}
		}
	}
	return nil
}

func skuWriteError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateSpec):
		return ErrDuplicateVariant
	case database.IsUniqueViolation(err) && strings.Contains(err.Error(), "spec"):
		// 并发写入时由唯一索引兜底
		return ErrDuplicateVariant
	}
	return mapNotFound(err, ErrSkuNotFound, op)
}
