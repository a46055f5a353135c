package controller

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ecom_admin_v1/internal/model"
	"ecom_admin_v1/internal/repository"
)

func seedOrder(t *testing.T, db *gorm.DB, no string) *model.Order {
	t.Helper()
	user := seedUser(t, db, "wx-"+no)
	order := &model.Order{
		OrderNo:          no,
		UserID:           user.ID,
		Status:           model.OrderStatusPending,
		TotalAmount:      decimal.NewFromInt(20),
		ActualAmount:     decimal.NewFromInt(20),
		ReceiverName:     "张三",
		ReceiverPhone:    "13800000000",
		ReceiverProvince: "浙江省",
		ReceiverCity:     "杭州市",
		ReceiverDistrict: "西湖区",
		ReceiverAddress:  "文三路 1 号",
		Items: []model.OrderItem{{
			SkuID:       1,
			ProductName: "杯子",
			Price:       decimal.NewFromInt(10),
			Quantity:    2,
			TotalAmount: decimal.NewFromInt(20),
		}},
	}
	require.NoError(t, repository.NewOrderRepo(db).Create(context.Background(), order))
	return order
}

func TestOrderController_Transitions(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	o := seedOrder(t, db, "202501010001")
	base := fmt.Sprintf("/api/orders/%d", o.ID)

	code, _ := doJSON(t, r, http.MethodPost, base+"/complete", nil)
	assert.Equal(t, http.StatusConflict, code, "待支付不能直接完成")

	code, resp := doJSON(t, r, http.MethodPost, base+"/pay", map[string]string{"paymentMethod": "wechat"})
	require.Equal(t, http.StatusOK, code, resp.Message)
	var paid model.Order
	decode(t, resp.Data, &paid)
	assert.Equal(t, model.OrderStatusPaid, paid.Status)
	assert.NotNil(t, paid.PaymentTime)

	code, resp = doJSON(t, r, http.MethodPost, base+"/cancel", map[string]string{"reason": "缺货"})
	require.Equal(t, http.StatusOK, code, resp.Message)
	var canceled model.Order
	decode(t, resp.Data, &canceled)
	assert.Equal(t, model.OrderStatusCanceled, canceled.Status)
	require.NotNil(t, canceled.CancelReason)
	assert.Equal(t, "缺货", *canceled.CancelReason)

	code, _ = doJSON(t, r, http.MethodPost, base+"/ship", nil)
	assert.Equal(t, http.StatusConflict, code)

	code, resp = doJSON(t, r, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, code)
	var detail model.Order
	decode(t, resp.Data, &detail)
	assert.Len(t, detail.Items, 1)

	code, _ = doJSON(t, r, http.MethodPost, "/api/orders/999/pay", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestOrderController_List(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	seedOrder(t, db, "202501010001")
	seedOrder(t, db, "202501010002")

	code, resp := doJSON(t, r, http.MethodGet, "/api/orders?status=1&orderNo=0002", nil)
	require.Equal(t, http.StatusOK, code, resp.Message)
	var page struct {
		List  []model.Order `json:"list"`
		Total int64         `json:"total"`
	}
	decode(t, resp.Data, &page)
	assert.Equal(t, int64(1), page.Total)

	code, _ = doJSON(t, r, http.MethodGet, "/api/orders?status=9", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
