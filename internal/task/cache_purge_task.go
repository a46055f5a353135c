package task

import (
	"go.uber.org/zap"
)

// Purger 清理过期的内存数据，返回清理数量
type Purger func() int

// CachePurgeTask 定期清理编辑会话、Token 缓存等内存数据
// 这些缓存读取时会懒删除，定期清理只回收长期无人访问的条目
type CachePurgeTask struct {
	purgers map[string]Purger
	log     *zap.Logger
}

func NewCachePurgeTask(log *zap.Logger) *CachePurgeTask {
	return &CachePurgeTask{purgers: map[string]Purger{}, log: log.Named("cache_purge")}
}

// Register 注册一个清理函数
func (t *CachePurgeTask) Register(name string, p Purger) *CachePurgeTask {
	t.purgers[name] = p
	return t
}

// Run 依次执行所有清理函数，返回各自清理数量
func (t *CachePurgeTask) Run() map[string]int {
	result := make(map[string]int, len(t.purgers))
	for name, p := range t.purgers {
		n := p()
		result[name] = n
		if n > 0 {
			t.log.Debug("清理过期缓存", zap.String("cache", name), zap.Int("removed", n))
		}
	}
	return result
}

func (t *CachePurgeTask) job() {
	t.Run()
}
