package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecom_admin_v1/internal/model"
	"ecom_admin_v1/internal/repository"
	"ecom_admin_v1/pkg/database"
)

func TestCheckSpecValues(t *testing.T) {
	cfg := colorSizeConfig()
	tests := []struct {
		name    string
		cfg     *model.SpecConfig
		values  model.SpecValues
		wantErr bool
	}{
		{"无配置无取值", nil, nil, false},
		{"无配置有取值", nil, model.SpecValues{"color": "red"}, true},
		{"有配置无取值", cfg, nil, true},
		{"合法组合", cfg, model.SpecValues{"color": "red", "size": "M"}, false},
		{"部分规格", cfg, model.SpecValues{"color": "blue"}, false},
		{"未知规格", cfg, model.SpecValues{"weight": "1kg"}, true},
		{"非法取值", cfg, model.SpecValues{"color": "green"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSpecValues(tt.cfg, tt.values)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSpecValues)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSkuService_DuplicateVariant(t *testing.T) {
	db := setupTestDB(t)
	products := newProductService(db)
	svc := NewSkuService(repository.NewProductRepo(db), repository.NewSkuRepo(db))
	ctx := context.Background()

	p, err := products.Create(ctx, ProductInput{Name: "T恤", BasePrice: decimal.NewFromInt(59), SpecConfig: colorSizeConfig()})
	require.NoError(t, err)

	in := SkuInput{
		SkuCode:    "T-RED-M",
		SpecValues: model.SpecValues{"color": "red", "size": "M"},
		Price:      decimal.RequireFromString("59.00"),
		Stock:      10,
	}
	sku, err := svc.Create(ctx, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnabled, sku.Status)

	in.SkuCode = "T-RED-M-2"
	_, err = svc.Create(ctx, p.ID, in)
	assert.ErrorIs(t, err, ErrDuplicateVariant)

	// sku_code 全局唯一，由数据库约束保证
	in.SkuCode = "T-RED-M"
	in.SpecValues = model.SpecValues{"color": "blue", "size": "M"}
	_, err = svc.Create(ctx, p.ID, in)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	in.SkuCode = "T-BLUE-M"
	blue, err := svc.Create(ctx, p.ID, in)
	require.NoError(t, err)

	in.SpecValues = model.SpecValues{"color": "red", "size": "M"}
	_, err = svc.Update(ctx, p.ID, blue.ID, in)
	assert.ErrorIs(t, err, ErrDuplicateVariant)

	in.SpecValues = model.SpecValues{"color": "blue", "size": "S"}
	in.Stock = 3
	updated, err := svc.Update(ctx, p.ID, blue.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Stock)

	list, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.List(ctx, 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, p.ID, 999), ErrSkuNotFound)
}

func TestSkuService_RejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	products := newProductService(db)
	svc := NewSkuService(repository.NewProductRepo(db), repository.NewSkuRepo(db))
	ctx := context.Background()

	p, err := products.Create(ctx, ProductInput{Name: "杯子", BasePrice: decimal.NewFromInt(10)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, p.ID, SkuInput{SkuCode: " ", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.Create(ctx, p.ID, SkuInput{SkuCode: "C", Price: decimal.NewFromInt(1), Stock: -1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.Create(ctx, p.ID, SkuInput{SkuCode: "C", Price: decimal.NewFromInt(1), SpecValues: model.SpecValues{"color": "red"}})
	assert.ErrorIs(t, err, ErrInvalidSpecValues)
	_, err = svc.Create(ctx, 999, SkuInput{SkuCode: "C"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}
