package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ecom_admin_v1/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "连接测试数据库失败")

	// :memory: 每个连接是独立的库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...), "数据库迁移失败")
	return db
}

func createUser(t *testing.T, db *gorm.DB, openid string) *model.User {
	t.Helper()
	nick := "nick-" + openid
	u := &model.User{OpenID: openid, Nickname: &nick}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createProduct(t *testing.T, db *gorm.DB, name string, cfg *model.SpecConfig) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:       name,
		BasePrice:  decimal.RequireFromString("99.90"),
		Status:     model.ProductStatusOnShelf,
		SpecConfig: cfg,
	}
	require.NoError(t, NewProductRepo(db).Create(context.Background(), p))
	return p
}
