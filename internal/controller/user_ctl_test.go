package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ecom_admin_v1/internal/model"
)

func seedUser(t *testing.T, db *gorm.DB, openid string) *model.User {
	t.Helper()
	u := &model.User{OpenID: openid, Status: model.StatusEnabled}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestUserController_Update(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	u := seedUser(t, db, "wx-1")
	path := fmt.Sprintf("/api/users/%d", u.ID)

	code, resp := doJSON(t, r, http.MethodPatch, path, map[string]interface{}{
		"nickname": "阿明", "gender": 1, "birthday": "1990-05-01",
	})
	require.Equal(t, http.StatusOK, code, resp.Message)
	var got model.User
	decode(t, resp.Data, &got)
	require.NotNil(t, got.Nickname)
	assert.Equal(t, "阿明", *got.Nickname)
	assert.Equal(t, 1, got.Gender)
	require.NotNil(t, got.Birthday)
	assert.Equal(t, "1990-05-01", got.Birthday.Format("2006-01-02"))

	tests := []struct {
		name string
		path string
		body map[string]interface{}
		code int
	}{
		{"空更新", path, map[string]interface{}{}, http.StatusBadRequest},
		{"性别越界", path, map[string]interface{}{"gender": 5}, http.StatusBadRequest},
		{"生日格式错误", path, map[string]interface{}{"birthday": "1990/05/01"}, http.StatusBadRequest},
		{"邮箱格式错误", path, map[string]interface{}{"email": "nope"}, http.StatusBadRequest},
		{"用户不存在", "/api/users/999", map[string]interface{}{"nickname": "x"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := doJSON(t, r, http.MethodPatch, tt.path, tt.body)
			assert.Equal(t, tt.code, code, resp.Message)
		})
	}
}

func TestAddressController_DefaultFlag(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	u := seedUser(t, db, "wx-2")
	base := fmt.Sprintf("/api/users/%d/addresses", u.ID)

	addr := func(name string, isDefault bool) model.UserAddress {
		code, resp := doJSON(t, r, http.MethodPost, base, map[string]interface{}{
			"name": name, "phone": "13800000000", "province": "浙江省", "city": "杭州市",
			"district": "西湖区", "detailAddress": "文三路 1 号", "isDefault": isDefault,
		})
		require.Equal(t, http.StatusCreated, code, resp.Message)
		var a model.UserAddress
		decode(t, resp.Data, &a)
		return a
	}

	first := addr("张三", false)
	assert.True(t, first.IsDefault, "首个地址自动成为默认")
	second := addr("李四", false)
	assert.False(t, second.IsDefault)

	code, _ := doJSON(t, r, http.MethodPut, fmt.Sprintf("%s/%d/default", base, second.ID), nil)
	require.Equal(t, http.StatusOK, code)

	list := func() []model.UserAddress {
		code, resp := doJSON(t, r, http.MethodGet, base, nil)
		require.Equal(t, http.StatusOK, code)
		var out []model.UserAddress
		decode(t, resp.Data, &out)
		return out
	}
	got := list()
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.True(t, got[0].IsDefault)
	assert.False(t, got[1].IsDefault)

	// 删除默认地址后剩余地址成为默认
	code, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("%s/%d", base, second.ID), nil)
	require.Equal(t, http.StatusOK, code)
	got = list()
	require.Len(t, got, 1)
	assert.True(t, got[0].IsDefault)

	code, _ = doJSON(t, r, http.MethodPost, base, map[string]interface{}{"name": "缺字段"})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/users/%d/addresses/%d/default", u.ID+1, first.ID), nil)
	assert.Equal(t, http.StatusNotFound, code, "地址不属于该用户")
}
