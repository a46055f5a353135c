package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ecom_admin_v1/internal/model"
	"ecom_admin_v1/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "连接测试数据库失败")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func newProductService(db *gorm.DB) *ProductService {
	return NewProductService(repository.NewProductRepo(db), zap.NewNop())
}

func colorSizeConfig() *model.SpecConfig {
	return &model.SpecConfig{Specs: []model.SpecItem{
		{Key: "color", Name: "颜色", Values: []string{"red", "blue"}, Sort: 1},
		{Key: "size", Name: "尺码", Values: []string{"S", "M"}, Sort: 2},
	}}
}
