package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"ecom_admin_v1/internal/api/dto"
	"ecom_admin_v1/pkg/utils"
)

// ==================== Claims 定义 ====================

// IdentityClaims 身份服务签发的 Access Token 声明
type IdentityClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

var (
	ErrMissingToken = errors.New("未提供认证信息")
	ErrInvalidToken = errors.New("Token 无效或已过期")
)

// ==================== Token 校验 ====================

// TokenVerifier 使用与身份服务共享的 HS256 密钥在本地校验 Token
// 校验通过的声明按 Token 缓存到过期为止
type TokenVerifier struct {
	secret []byte
	cache  *utils.TTLCache[*IdentityClaims]
	now    func() time.Time
}

// maxCacheTTL 缓存上限，Token 被提前注销后最多在该时长内仍可使用
const maxCacheTTL = 5 * time.Minute

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{
		secret: []byte(secret),
		cache:  utils.NewTTLCache[*IdentityClaims](maxCacheTTL),
		now:    time.Now,
	}
}

// Verify 校验 Token 签名与有效期
func (v *TokenVerifier) Verify(tokenString string) (*IdentityClaims, error) {
	if claims, ok := v.cache.Get(tokenString); ok {
		if claims.ExpiresAt != nil && v.now().Before(claims.ExpiresAt.Time) {
			return claims, nil
		}
		v.cache.Delete(tokenString)
	}

	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	ttl := claims.ExpiresAt.Time.Sub(v.now())
	if ttl > maxCacheTTL {
		ttl = maxCacheTTL
	}
	v.cache.SetWithTTL(tokenString, claims, ttl)
	return claims, nil
}

// Forget 注销时移除缓存
func (v *TokenVerifier) Forget(tokenString string) {
	v.cache.Delete(tokenString)
}

// PurgeExpired 清理过期缓存
func (v *TokenVerifier) PurgeExpired() int {
	return v.cache.Purge()
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyUserID      = "user_id"
	ContextKeyEmail       = "email"
	ContextKeyAccessToken = "access_token"
)

// Auth 认证中间件，校验失败返回 401
func Auth(v *TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := BearerToken(c)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}
		claims, err := v.Verify(token)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		c.Set(ContextKeyUserID, claims.Subject)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyAccessToken, token)
		c.Request = c.Request.WithContext(WithActor(c.Request.Context(), claims.Subject))
		c.Next()
	}
}

// BearerToken 从 Authorization 头中取出 Token
func BearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("认证格式错误，应为 Bearer {token}")
	}
	return strings.TrimSpace(parts[1]), nil
}

// GetUserID 当前登录用户 ID (身份服务的 sub)
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

// GetAccessToken 当前请求携带的 Token
func GetAccessToken(c *gin.Context) string {
	return c.GetString(ContextKeyAccessToken)
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Response{Success: false, Message: msg})
}

// ==================== 请求上下文 ====================

type actorContextKey struct{}

// WithActor 将操作人写入 context，供日志使用
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorContextKey{}, userID)
}

// ActorFrom 从 context 获取操作人，未登录返回空串
func ActorFrom(ctx context.Context) string {
	id, _ := ctx.Value(actorContextKey{}).(string)
	return id
}
