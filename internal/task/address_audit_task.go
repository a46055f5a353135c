package task

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AddressRepairer 修复默认地址标记
type AddressRepairer interface {
	RepairDefaults(ctx context.Context) (int, error)
}

// AddressAuditTask 默认地址巡检
// 历史数据或绕过后台的写入可能让一个用户出现多个默认地址，定期修复为只保留一个
type AddressAuditTask struct {
	repairer AddressRepairer
	timeout  time.Duration
	log      *zap.Logger

	mu      sync.Mutex // 同一时刻只允许一次巡检
	running bool
}

func NewAddressAuditTask(repairer AddressRepairer, log *zap.Logger) *AddressAuditTask {
	return &AddressAuditTask{
		repairer: repairer,
		timeout:  5 * time.Minute,
		log:      log.Named("address_audit"),
	}
}

// Run 执行一次巡检，上一次尚未结束时直接跳过
func (t *AddressAuditTask) Run(ctx context.Context) (int, error) {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		t.log.Info("上一次巡检尚未结束，跳过")
		return 0, nil
	}
	t.running = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	start := time.Now()
	repaired, err := t.repairer.RepairDefaults(ctx)
	if err != nil {
		t.log.Error("默认地址巡检失败", zap.Error(err))
		return repaired, err
	}
	t.log.Info("默认地址巡检完成",
		zap.Int("repaired_users", repaired),
		zap.Duration("cost", time.Since(start)),
	)
	return repaired, nil
}

func (t *AddressAuditTask) job() {
	_, _ = t.Run(context.Background())
}
