package dto

// ==================== 用户 ====================

// UserListQuery 用户列表查询参数
type UserListQuery struct {
	PageQuery
	Keyword string `form:"keyword"`
	Status  *int   `form:"status"`
}

// UserPatchRequest 部分更新用户资料
type UserPatchRequest struct {
	Nickname  *string `json:"nickname" binding:"omitempty,max=100"`
	AvatarURL *string `json:"avatarUrl"`
	Gender    *int    `json:"gender" binding:"omitempty,oneof=0 1 2"`
	Phone     *string `json:"phone" binding:"omitempty,max=20"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Birthday  *string `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
	Status    *int    `json:"status" binding:"omitempty,oneof=0 1"`
}

// ==================== 收货地址 ====================

// AddressRequest 新增地址
type AddressRequest struct {
	Name          string  `json:"name" binding:"required,max=50"`
	Phone         string  `json:"phone" binding:"required,max=20"`
	Province      string  `json:"province" binding:"required,max=50"`
	City          string  `json:"city" binding:"required,max=50"`
	District      string  `json:"district" binding:"required,max=50"`
	DetailAddress string  `json:"detailAddress" binding:"required"`
	PostalCode    *string `json:"postalCode" binding:"omitempty,max=10"`
	IsDefault     bool    `json:"isDefault"`
}

// AddressPatchRequest 部分更新地址
type AddressPatchRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=50"`
	Phone         *string `json:"phone" binding:"omitempty,max=20"`
	Province      *string `json:"province" binding:"omitempty,max=50"`
	City          *string `json:"city" binding:"omitempty,max=50"`
	District      *string `json:"district" binding:"omitempty,max=50"`
	DetailAddress *string `json:"detailAddress"`
	PostalCode    *string `json:"postalCode" binding:"omitempty,max=10"`
	IsDefault     *bool   `json:"isDefault"`
}

// ==================== 认证 ====================

// CredentialsRequest 注册 / 登录
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string      `json:"accessToken"`
	TokenType    string      `json:"tokenType"`
	ExpiresIn    int         `json:"expiresIn"`
	RefreshToken string      `json:"refreshToken"`
	User         CurrentUser `json:"user"`
}

// CurrentUser 当前登录的管理员
type CurrentUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}
