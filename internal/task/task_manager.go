package task

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ==================== TaskManager 定时任务管理器 ====================

// TaskManager 统一管理后台定时任务
// 所有任务共用一个 cron 调度器，表达式支持秒级字段
type TaskManager struct {
	cron *cron.Cron
	log  *zap.Logger

	addressAudit *AddressAuditTask
	cachePurge   *CachePurgeTask
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	AddressRepairer AddressRepairer
	Purgers         map[string]Purger
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	// 默认地址巡检
	AddressAuditEnabled bool
	AddressAuditSpec    string

	// 内存缓存清理
	CachePurgeSpec string
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		AddressAuditEnabled: true,
		AddressAuditSpec:    "0 0 3 * * *",
		CachePurgeSpec:      "0 */5 * * * *",
	}
}

// NewTaskManager 创建任务管理器，cron 表达式非法时返回错误
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig, log *zap.Logger) (*TaskManager, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	cl := newCronLogger(log)
	tm := &TaskManager{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log: log.Named("task"),
	}

	if cfg.AddressAuditEnabled && deps.AddressRepairer != nil {
		tm.addressAudit = NewAddressAuditTask(deps.AddressRepairer, log)
		if _, err := tm.cron.AddFunc(cfg.AddressAuditSpec, tm.addressAudit.job); err != nil {
			return nil, fmt.Errorf("注册默认地址巡检任务失败: %w", err)
		}
	}

	if len(deps.Purgers) > 0 {
		tm.cachePurge = NewCachePurgeTask(log)
		for name, p := range deps.Purgers {
			tm.cachePurge.Register(name, p)
		}
		spec := cfg.CachePurgeSpec
		if spec == "" {
			spec = DefaultConfig().CachePurgeSpec
		}
		if _, err := tm.cron.AddFunc(spec, tm.cachePurge.job); err != nil {
			return nil, fmt.Errorf("注册缓存清理任务失败: %w", err)
		}
	}

	return tm, nil
}

// ==================== 生命周期管理 ====================

// Start 启动调度
func (tm *TaskManager) Start() {
	tm.cron.Start()
	tm.log.Info("定时任务已启动", zap.Int("jobs", len(tm.cron.Entries())))
}

// Stop 停止调度并等待正在执行的任务结束，ctx 到期则不再等待
func (tm *TaskManager) Stop(ctx context.Context) {
	done := tm.cron.Stop().Done()
	select {
	case <-done:
		tm.log.Info("定时任务已全部停止")
	case <-ctx.Done():
		tm.log.Warn("等待定时任务结束超时")
	}
}

// ==================== 手动触发接口 ====================

// TriggerAddressAudit 立即执行一次默认地址巡检
func (tm *TaskManager) TriggerAddressAudit(ctx context.Context) (int, error) {
	if tm.addressAudit == nil {
		return 0, ErrTaskDisabled
	}
	return tm.addressAudit.Run(ctx)
}

// TriggerCachePurge 立即执行一次缓存清理
func (tm *TaskManager) TriggerCachePurge() (map[string]int, error) {
	if tm.cachePurge == nil {
		return nil, ErrTaskDisabled
	}
	return tm.cachePurge.Run(), nil
}

// ==================== 状态查询 ====================

// Status 获取任务状态
func (tm *TaskManager) Status() map[string]bool {
	return map[string]bool{
		"address_audit": tm.addressAudit != nil,
		"cache_purge":   tm.cachePurge != nil,
	}
}

// ==================== 错误定义 ====================

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskDisabled TaskError = "task is disabled"
)
