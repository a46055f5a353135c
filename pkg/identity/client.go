package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== 身份服务客户端 ====================
// 托管身份服务 (GoTrue 风格 REST 接口)，后台只做转发，不实现认证协议本身

// User 身份服务中的用户
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Session 登录会话
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// credentials 注册/登录请求体
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// errorBody 身份服务错误响应 (不同接口字段名不一致)
type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (e *errorBody) text() string {
	for _, s := range []string{e.ErrorDescription, e.Msg, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// APIError 身份服务返回的业务错误
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("identity: %d %s", e.StatusCode, e.Message)
}

// ErrUnauthorized Token 无效或凭证错误
var ErrUnauthorized = errors.New("identity: unauthorized")

// Config 客户端配置
type Config struct {
	BaseURL string
	AnonKey string
	Timeout time.Duration
}

// Client 身份服务客户端
type Client struct {
	http *resty.Client
}

// NewClient 创建客户端
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")+"/auth/v1").
		SetTimeout(timeout).
		SetHeader("apikey", cfg.AnonKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "ecom-admin/1.0")

	return &Client{http: c}
}

// SignUp 注册
func (c *Client) SignUp(ctx context.Context, email, password string) (*User, error) {
	var user User
	var errBody errorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(credentials{Email: email, Password: password}).
		SetResult(&user).
		SetError(&errBody).
		Post("/signup")
	if err != nil {
		return nil, fmt.Errorf("identity: 请求注册接口失败: %w", err)
	}
	if resp.IsError() {
		return nil, toError(resp, &errBody)
	}
	return &user, nil
}

// SignIn 邮箱密码登录
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	var errBody errorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(credentials{Email: email, Password: password}).
		SetResult(&session).
		SetError(&errBody).
		Post("/token")
	if err != nil {
		return nil, fmt.Errorf("identity: 请求登录接口失败: %w", err)
	}
	if resp.IsError() {
		return nil, toError(resp, &errBody)
	}
	return &session, nil
}

// SignOut 注销 accessToken 对应的会话
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	var errBody errorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetError(&errBody).
		Post("/logout")
	if err != nil {
		return fmt.Errorf("identity: 请求注销接口失败: %w", err)
	}
	if resp.IsError() {
		return toError(resp, &errBody)
	}
	return nil
}

// GetUser 获取 accessToken 对应的用户
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	var user User
	var errBody errorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&user).
		SetError(&errBody).
		Get("/user")
	if err != nil {
		return nil, fmt.Errorf("identity: 请求用户接口失败: %w", err)
	}
	if resp.IsError() {
		return nil, toError(resp, &errBody)
	}
	return &user, nil
}

func toError(resp *resty.Response, body *errorBody) error {
	msg := body.text()
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}
	apiErr := &APIError{StatusCode: resp.StatusCode(), Message: msg}
	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden ||
		(resp.StatusCode() == http.StatusBadRequest && body.Error == "invalid_grant") {
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
	}
	return apiErr
}
