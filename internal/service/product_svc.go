package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"ecom_admin_v1/internal/editor"
	"ecom_admin_v1/internal/model"
	"ecom_admin_v1/internal/repository"
)

// ProductInput 新建或整体替换商品的参数
type ProductInput struct {
	Name         string
	Brand        *string
	Description  *string
	MainImage    *string
	DetailImages []string
	SpecInfo     map[string]interface{}
	BasePrice    decimal.Decimal
	Status       *int // nil 表示上架
	SortOrder    int
	SpecConfig   *model.SpecConfig
}

type ProductService struct {
	repo repository.ProductRepository
	log  *zap.Logger
}

func NewProductService(repo repository.ProductRepository, log *zap.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, mapNotFound(err, ErrProductNotFound, "查询商品列表")
	}
	return products, total, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrProductNotFound, "查询商品")
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	product, err := buildProduct(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, mapNotFound(err, ErrProductNotFound, "创建商品")
	}
	s.log.Info("商品已创建", zap.Int64("product_id", product.ID), zap.String("name", product.Name))
	return product, nil
}

// Update 整体替换商品，规格配置与详情图以请求为准
func (s *ProductService) Update(ctx context.Context, id int64, in ProductInput) (*model.Product, error) {
	product, err := buildProduct(in)
	if err != nil {
		return nil, err
	}
	product.ID = id
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, mapNotFound(err, ErrProductNotFound, "更新商品")
	}
	return s.Get(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, ErrProductNotFound, "删除商品")
	}
	s.log.Info("商品已删除", zap.Int64("product_id", id))
	return nil
}

// SaveEdits 保存编辑会话的规格配置与详情图，单条 UPDATE 整体替换
func (s *ProductService) SaveEdits(ctx context.Context, id int64, cfg *model.SpecConfig, images []string) (*model.Product, error) {
	cfg, err := checkSpecAndImages(cfg, images)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{
		"spec_config":   cfg,
		"detail_images": model.StringArray(images),
	}
	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, mapNotFound(err, ErrProductNotFound, "保存商品规格")
	}
	return s.Get(ctx, id)
}

func buildProduct(in ProductInput) (*model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidArgf("商品名称不能为空")
	}
	if in.BasePrice.IsNegative() {
		return nil, invalidArgf("价格不能为负数")
	}
	status := model.ProductStatusOnShelf
	if in.Status != nil {
		if *in.Status != model.ProductStatusOffShelf && *in.Status != model.ProductStatusOnShelf {
			return nil, invalidArgf("状态取值无效")
		}
		status = *in.Status
	}
	cfg, err := checkSpecAndImages(in.SpecConfig, in.DetailImages)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        name,
		Brand:       in.Brand,
		Description: in.Description,
		MainImage:   in.MainImage,
		BasePrice:   in.BasePrice.Round(2),
		Status:      status,
		SortOrder:   in.SortOrder,
		SpecConfig:  cfg,
	}
	if in.DetailImages != nil {
		product.DetailImages = model.StringArray(in.DetailImages)
	}
	if in.SpecInfo != nil {
		product.SpecInfo = datatypes.JSONMap(in.SpecInfo)
	}
	return product, nil
}

// checkSpecAndImages 规范化后校验规格配置与详情图，返回待持久化的配置 (空配置为 nil)
func checkSpecAndImages(cfg *model.SpecConfig, images []string) (*model.SpecConfig, error) {
	cfg = editor.NormalizeConfig(cfg)
	if err := editor.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if err := editor.CheckImages(images); err != nil {
		return nil, err
	}
	return cfg, nil
}
