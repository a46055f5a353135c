package model

// All 需要自动迁移的模型，按外键依赖顺序排列
func All() []interface{} {
	return []interface{}{
		&User{}, &UserAddress{},
		&Product{}, &ProductSKU{},
		&Order{}, &OrderItem{},
		&ProductReview{},
	}
}
