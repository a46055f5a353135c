package service

import (
	"context"
	"time"
)

// Pinger 数据库连通性检查
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	db      Pinger
	timeout time.Duration
}

func NewHealthService(db Pinger) *HealthService {
	return &HealthService{db: db, timeout: 3 * time.Second}
}

// CheckDB 在超时内执行一次查询，返回耗时
func (s *HealthService) CheckDB(ctx context.Context) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := s.db.Ping(ctx)
	return time.Since(start), err
}
