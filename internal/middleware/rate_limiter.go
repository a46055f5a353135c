package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"ecom_admin_v1/internal/api/dto"
)

// ==================== CooldownLimiter 冷却限流器 ====================

// CooldownLimiter 按 key 限制两次放行之间的最小间隔
// 用于注册、登录等转发到身份服务的接口，防止暴力尝试
type CooldownLimiter struct {
	locks sync.Map // key -> *lockEntry
	now   func() time.Time
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

func NewCooldownLimiter() *CooldownLimiter {
	return &CooldownLimiter{now: time.Now}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行，允许时记录本次时间
func (r *CooldownLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := r.now()
	elapsed := now.Sub(entry.lastTime)
	if elapsed < interval {
		return CheckResult{Allowed: false, RetryAfter: interval - elapsed}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 重置指定 key 的限流
func (r *CooldownLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// PurgeIdle 清理超过 idle 未使用的条目，返回清理数量
func (r *CooldownLimiter) PurgeIdle(idle time.Duration) int {
	now := r.now()
	removed := 0
	r.locks.Range(func(key, val any) bool {
		entry := val.(*lockEntry)
		entry.mu.Lock()
		stale := now.Sub(entry.lastTime) > idle
		entry.mu.Unlock()
		if stale {
			r.locks.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// ==================== 中间件 ====================

// CooldownByIP 按 scope + 客户端 IP 限流
func CooldownByIP(limiter *CooldownLimiter, scope string, interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", scope, c.ClientIP())
		result := limiter.Check(key, interval)
		if !result.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfterSeconds(result.RetryAfter)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Response{
				Success: false,
				Message: formatRetryMessage(result.RetryAfter),
			})
			return
		}
		c.Next()
	}
}

func retryAfterSeconds(d time.Duration) int {
	s := int((d + time.Second - 1) / time.Second)
	if s < 1 {
		s = 1
	}
	return s
}

// formatRetryMessage 格式化重试提示
func formatRetryMessage(d time.Duration) string {
	if d >= time.Minute {
		return fmt.Sprintf("操作过于频繁，请 %d 分钟后重试", int(d.Minutes())+1)
	}
	return fmt.Sprintf("操作过于频繁，请 %d 秒后重试", retryAfterSeconds(d))
}
