package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ecom_admin_v1/internal/model"
)

func createOrder(t *testing.T, db *gorm.DB, userID int64, no string) *model.Order {
	t.Helper()
	p := createProduct(t, db, "杯子-"+no, nil)
	sku := newSku(p.ID, "SKU-"+no, nil)
	require.NoError(t, NewSkuRepo(db).Create(context.Background(), sku))

	price := decimal.RequireFromString("19.90")
	order := &model.Order{
		OrderNo:          no,
		UserID:           userID,
		Status:           model.OrderStatusPending,
		TotalAmount:      price.Mul(decimal.NewFromInt(2)),
		ActualAmount:     price.Mul(decimal.NewFromInt(2)),
		ReceiverName:     "张三",
		ReceiverPhone:    "13800000000",
		ReceiverProvince: "浙江省",
		ReceiverCity:     "杭州市",
		ReceiverDistrict: "西湖区",
		ReceiverAddress:  "文三路 1 号",
		Items: []model.OrderItem{{
			SkuID:       sku.ID,
			ProductName: p.Name,
			Price:       price,
			Quantity:    2,
			TotalAmount: price.Mul(decimal.NewFromInt(2)),
		}},
	}
	require.NoError(t, NewOrderRepo(db).Create(context.Background(), order))
	return order
}

func TestOrderRepo_CreateListDetail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepo(db)
	ctx := context.Background()
	u := createUser(t, db, "u1")

	o1 := createOrder(t, db, u.ID, "202501010001")
	createOrder(t, db, u.ID, "202501010002")

	got, err := repo.GetByIDWithItems(ctx, o1.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("39.80")))

	list, total, err := repo.List(ctx, OrderFilter{OrderNo: "0002"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "202501010002", list[0].OrderNo)

	pending := model.OrderStatusPending
	_, total, err = repo.List(ctx, OrderFilter{Status: &pending, UserID: u.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestOrderRepo_TransitionStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepo(db)
	ctx := context.Background()
	u := createUser(t, db, "u1")
	o := createOrder(t, db, u.ID, "202501010001")

	now := time.Now()
	require.NoError(t, repo.TransitionStatus(ctx, o.ID, model.OrderStatusPending, model.OrderStatusPaid,
		map[string]interface{}{"payment_time": now}))

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, got.Status)
	require.NotNil(t, got.PaymentTime)

	// 状态已经不是 pending
	err = repo.TransitionStatus(ctx, o.ID, model.OrderStatusPending, model.OrderStatusCanceled, nil)
	assert.True(t, errors.Is(err, ErrStatusChanged))

	err = repo.TransitionStatus(ctx, 999, model.OrderStatusPending, model.OrderStatusPaid, nil)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
