package dto

// Response 统一响应结构 {success, data?, message?}
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// PageData 分页数据
type PageData struct {
	List     interface{} `json:"list"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

// PageQuery 分页参数
type PageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}
