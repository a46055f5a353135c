package model

import "time"

// User C 端用户 (小程序登录产生，后台只读/编辑资料)
type User struct {
	BaseModel
	OpenID    string     `gorm:"column:openid;size:100;uniqueIndex;not null" json:"openid"`
	UnionID   *string    `gorm:"column:unionid;size:100" json:"unionid"`
	Nickname  *string    `gorm:"size:100" json:"nickname"`
	AvatarURL *string    `gorm:"column:avatar_url;type:text" json:"avatarUrl"`
	Gender    int        `gorm:"default:0" json:"gender"` // 0 未知 1 男 2 女
	Phone     *string    `gorm:"size:20" json:"phone"`
	Email     *string    `gorm:"size:100" json:"email"`
	Birthday  *time.Time `gorm:"type:date" json:"birthday"`
	Status    int        `gorm:"default:1;index" json:"status"`

	Addresses []UserAddress `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserAddress 用户收货地址
// 同一用户至多一个 IsDefault = true，由 AddressRepository.SetDefault 保证
type UserAddress struct {
	BaseModel
	UserID        int64   `gorm:"not null;index;index:idx_user_addresses_default,priority:1" json:"userId"`
	Name          string  `gorm:"size:50;not null" json:"name"`
	Phone         string  `gorm:"size:20;not null" json:"phone"`
	Province      string  `gorm:"size:50;not null" json:"province"`
	City          string  `gorm:"size:50;not null" json:"city"`
	District      string  `gorm:"size:50;not null" json:"district"`
	DetailAddress string  `gorm:"type:text;not null" json:"detailAddress"`
	PostalCode    *string `gorm:"size:10" json:"postalCode"`
	IsDefault     bool    `gorm:"default:false;index:idx_user_addresses_default,priority:2" json:"isDefault"`
}

func (UserAddress) TableName() string {
	return "user_addresses"
}
