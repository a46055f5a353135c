package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"ecom_admin_v1/internal/model"
	"ecom_admin_v1/internal/repository"
)

type OrderService struct {
	repo repository.OrderRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewOrderService(repo repository.OrderRepository, log *zap.Logger) *OrderService {
	return &OrderService{repo: repo, log: log, now: time.Now}
}

func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int64, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, invalidArgf("订单状态取值无效")
	}
	filter.OrderNo = strings.TrimSpace(filter.OrderNo)
	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, mapNotFound(err, ErrOrderNotFound, "查询订单列表")
	}
	return orders, total, nil
}

// Get 订单详情，包含明细
func (s *OrderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.repo.GetByIDWithItems(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound, "查询订单")
	}
	return order, nil
}

// Pay 标记已支付
func (s *OrderService) Pay(ctx context.Context, id int64, method string) (*model.Order, error) {
	fields := map[string]interface{}{"payment_time": s.now()}
	if method = strings.TrimSpace(method); method != "" {
		fields["payment_method"] = method
	}
	return s.transition(ctx, id, model.OrderStatusPaid, fields)
}

// Ship 标记已发货
func (s *OrderService) Ship(ctx context.Context, id int64) (*model.Order, error) {
	return s.transition(ctx, id, model.OrderStatusShipped, map[string]interface{}{"shipping_time": s.now()})
}

// Complete 确认收货
func (s *OrderService) Complete(ctx context.Context, id int64) (*model.Order, error) {
	return s.transition(ctx, id, model.OrderStatusCompleted, map[string]interface{}{"receive_time": s.now()})
}

// Cancel 取消订单，仅待支付和已支付可取消
func (s *OrderService) Cancel(ctx context.Context, id int64, reason string) (*model.Order, error) {
	fields := map[string]interface{}{"cancel_time": s.now()}
	if reason = strings.TrimSpace(reason); reason != "" {
		fields["cancel_reason"] = reason
	}
	return s.transition(ctx, id, model.OrderStatusCanceled, fields)
}

func (s *OrderService) transition(ctx context.Context, id int64, to model.OrderStatus, fields map[string]interface{}) (*model.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound, "查询订单")
	}
	from := order.Status
	if !from.CanTransitionTo(to) {
		return nil, ErrInvalidStatusTransition
	}

	err = s.repo.TransitionStatus(ctx, id, from, to, fields)
	switch {
	case errors.Is(err, repository.ErrStatusChanged):
		return nil, ErrInvalidStatusTransition
	case err != nil:
		return nil, mapNotFound(err, ErrOrderNotFound, "更新订单状态")
	}

	s.log.Info("订单状态变更",
		zap.Int64("order_id", id),
		zap.String("order_no", order.OrderNo),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
	)
	return s.Get(ctx, id)
}
