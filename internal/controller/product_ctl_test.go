package controller

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecom_admin_v1/internal/api/dto"
	"ecom_admin_v1/internal/model"
	"ecom_admin_v1/internal/repository"
)

func createTestProduct(t *testing.T, r http.Handler, body map[string]interface{}) model.Product {
	t.Helper()
	code, resp := doJSON(t, r, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var p model.Product
	decode(t, resp.Data, &p)
	return p
}

func TestProductController_CRUD(t *testing.T) {
	r := setupRouter(t, setupTestDB(t))

	p := createTestProduct(t, r, map[string]interface{}{
		"name":      " 连衣裙 ",
		"basePrice": "99.9",
		"specInfo":  map[string]interface{}{"材质": "棉"},
	})
	assert.Equal(t, "连衣裙", p.Name)
	assert.Equal(t, "99.9", p.BasePrice.String())
	assert.Equal(t, model.ProductStatusOnShelf, p.Status)

	code, resp := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/products/%d", p.ID), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)

	code, resp = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/products/%d", p.ID), map[string]interface{}{
		"name": "半身裙", "basePrice": 59, "status": 0,
	})
	require.Equal(t, http.StatusOK, code, resp.Message)
	var updated model.Product
	decode(t, resp.Data, &updated)
	assert.Equal(t, "半身裙", updated.Name)
	assert.Equal(t, model.ProductStatusOffShelf, updated.Status)

	code, resp = doJSON(t, r, http.MethodGet, "/api/products?status=0&pageSize=5", nil)
	require.Equal(t, http.StatusOK, code)
	var page struct {
		List     []model.Product `json:"list"`
		Total    int64           `json:"total"`
		Page     int             `json:"page"`
		PageSize int             `json:"pageSize"`
	}
	decode(t, resp.Data, &page)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 5, page.PageSize)

	code, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/products/%d", p.ID), nil)
	assert.Equal(t, http.StatusOK, code)
	code, resp = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/products/%d", p.ID), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, resp.Success)
}

func TestProductController_BadRequests(t *testing.T) {
	r := setupRouter(t, setupTestDB(t))

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		code   int
	}{
		{"非数字ID", http.MethodGet, "/api/products/abc", nil, http.StatusBadRequest},
		{"非正数ID", http.MethodGet, "/api/products/0", nil, http.StatusBadRequest},
		{"缺少名称", http.MethodPost, "/api/products", map[string]interface{}{"basePrice": 1}, http.StatusBadRequest},
		{"缺少价格", http.MethodPost, "/api/products", map[string]interface{}{"name": "x"}, http.StatusBadRequest},
		{"非法排序方向", http.MethodGet, "/api/products?sortOrder=up", nil, http.StatusBadRequest},
		{"规格不完整", http.MethodPost, "/api/products", map[string]interface{}{
			"name": "x", "basePrice": 1,
			"specConfig": map[string]interface{}{"specs": []map[string]interface{}{{"key": "color", "name": "颜色", "values": []string{}}}},
		}, http.StatusBadRequest},
		{"重复详情图", http.MethodPost, "/api/products", map[string]interface{}{
			"name": "x", "basePrice": 1, "detailImages": []string{"https://a/1.jpg", "https://a/1.jpg"},
		}, http.StatusBadRequest},
		{"不存在", http.MethodDelete, "/api/products/999", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := doJSON(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, code, resp.Message)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestSkuController(t *testing.T) {
	r := setupRouter(t, setupTestDB(t))
	p := createTestProduct(t, r, map[string]interface{}{
		"name": "T恤", "basePrice": 30,
		"specConfig": map[string]interface{}{"specs": []map[string]interface{}{
			{"key": "color", "name": "颜色", "values": []string{"red", "blue"}},
		}},
	})
	skuPath := fmt.Sprintf("/api/products/%d/skus", p.ID)

	code, resp := doJSON(t, r, http.MethodPost, skuPath, map[string]interface{}{
		"skuCode": "T-RED", "price": "30.00", "specValues": map[string]string{"color": "red"},
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var sku model.ProductSKU
	decode(t, resp.Data, &sku)

	tests := []struct {
		name string
		body map[string]interface{}
		code int
	}{
		{"规格组合重复", map[string]interface{}{"skuCode": "T-RED-2", "price": 30, "specValues": map[string]string{"color": "red"}}, http.StatusConflict},
		{"编码重复", map[string]interface{}{"skuCode": "T-RED", "price": 30, "specValues": map[string]string{"color": "blue"}}, http.StatusConflict},
		{"取值不在配置内", map[string]interface{}{"skuCode": "T-GREEN", "price": 30, "specValues": map[string]string{"color": "green"}}, http.StatusBadRequest},
		{"缺少价格", map[string]interface{}{"skuCode": "T-BLUE"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := doJSON(t, r, http.MethodPost, skuPath, tt.body)
			assert.Equal(t, tt.code, code, resp.Message)
		})
	}

	code, resp = doJSON(t, r, http.MethodPut, fmt.Sprintf("%s/%d", skuPath, sku.ID), map[string]interface{}{
		"skuCode": "T-BLUE", "price": 32, "stock": 5, "specValues": map[string]string{"color": "blue"},
	})
	require.Equal(t, http.StatusOK, code, resp.Message)

	code, resp = doJSON(t, r, http.MethodGet, skuPath, nil)
	require.Equal(t, http.StatusOK, code)
	var list []model.ProductSKU
	decode(t, resp.Data, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "T-BLUE", list[0].SkuCode)

	code, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/products/%d/skus/%d", p.ID+1, sku.ID), nil)
	assert.Equal(t, http.StatusNotFound, code, "SKU 不属于该商品")
	code, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("%s/%d", skuPath, sku.ID), nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestReviewController(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	p := createTestProduct(t, r, map[string]interface{}{"name": "杯子", "basePrice": 10})

	nickname := "小王"
	user := &model.User{OpenID: "wx-1", Nickname: &nickname, Status: model.StatusEnabled}
	require.NoError(t, db.Create(user).Error)
	review := &model.ProductReview{OrderItemID: 1, UserID: user.ID, ProductID: p.ID, SkuID: 1, Rating: 5, Status: model.ReviewStatusVisible}
	require.NoError(t, repository.NewReviewRepo(db).Create(context.Background(), review))

	base := fmt.Sprintf("/api/products/%d/reviews", p.ID)
	code, resp := doJSON(t, r, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, code, resp.Message)
	var page struct {
		List  []dto.ReviewResp `json:"list"`
		Total int64            `json:"total"`
	}
	decode(t, resp.Data, &page)
	require.Len(t, page.List, 1)
	require.NotNil(t, page.List[0].UserNickname)
	assert.Equal(t, "小王", *page.List[0].UserNickname)

	code, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("%s/%d/reply", base, review.ID), map[string]string{"content": "感谢支持"})
	assert.Equal(t, http.StatusOK, code)
	code, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("%s/%d/reply", base, review.ID), map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON(t, r, http.MethodPatch, fmt.Sprintf("%s/%d/status", base, review.ID), map[string]int{"status": 3})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = doJSON(t, r, http.MethodPatch, fmt.Sprintf("%s/%d/status", base, review.ID), map[string]int{"status": 0})
	assert.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, r, http.MethodGet, "/api/products/999/reviews", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
