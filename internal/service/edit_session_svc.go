package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ecom_admin_v1/internal/editor"
	"ecom_admin_v1/internal/model"
	"ecom_admin_v1/pkg/utils"
)

// ==================== 商品编辑会话 ====================
// 打开编辑 -> 逐步修改规格与详情图 -> 保存或取消
// 会话只存在于内存，过期或取消后丢弃，不产生任何持久化

// EditSession 一个用户的一次商品编辑
type EditSession struct {
	ID        string
	OwnerID   string
	ProductID int64 // 0 表示新建商品

	mu     sync.Mutex
	closed bool // 已保存或已取消，持有 mu 时读写
	spec   *editor.SpecEditor
	images *editor.ImageEditor
}

// EditSnapshot 会话当前状态
type EditSnapshot struct {
	ID         string
	ProductID  int64
	State      editor.State
	Specs      []model.SpecItem
	ItemStates []editor.ItemState
	Images     []string
	ExpiresAt  time.Time
}

// EditOp 对会话编辑器的一次修改
type EditOp func(spec *editor.SpecEditor, images *editor.ImageEditor) error

// ProductSaver 保存编辑结果
type ProductSaver interface {
	Get(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, in ProductInput) (*model.Product, error)
	SaveEdits(ctx context.Context, id int64, cfg *model.SpecConfig, images []string) (*model.Product, error)
}

type EditSessionService struct {
	products ProductSaver
	sessions *utils.TTLCache[*EditSession]
	ttl      time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewEditSessionService(products ProductSaver, ttl time.Duration, log *zap.Logger) *EditSessionService {
	return &EditSessionService{
		products: products,
		sessions: utils.NewTTLCache[*EditSession](ttl),
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// Open 打开编辑会话，productID 为 0 时从空配置开始
func (s *EditSessionService) Open(ctx context.Context, ownerID string, productID int64) (*EditSnapshot, error) {
	var cfg *model.SpecConfig
	var images []string
	if productID > 0 {
		product, err := s.products.Get(ctx, productID)
		if err != nil {
			return nil, err
		}
		cfg = product.SpecConfig
		images = product.DetailImages
	}

	sess := &EditSession{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		ProductID: productID,
		spec:      editor.NewSpecEditor(cfg),
		images:    editor.NewImageEditor(images),
	}
	s.sessions.Set(sess.ID, sess)
	s.log.Debug("打开编辑会话", zap.String("session_id", sess.ID), zap.Int64("product_id", productID))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshot(sess), nil
}

// Get 查询会话状态并续期
func (s *EditSessionService) Get(ownerID, id string) (*EditSnapshot, error) {
	return s.Apply(ownerID, id, nil)
}

// Apply 串行执行一次修改，失败时编辑器状态不变，返回修改后的状态
func (s *EditSessionService) Apply(ownerID, id string, op EditOp) (*EditSnapshot, error) {
	sess, err := s.lookup(ownerID, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return nil, ErrSessionNotFound
	}

	s.sessions.Touch(id)
	if op != nil {
		if err := op(sess.spec, sess.images); err != nil {
			return nil, err
		}
	}
	return s.snapshot(sess), nil
}

// Save 校验后持久化并结束会话
// 新建商品时 base 提供商品基础信息，规格与详情图以会话为准
func (s *EditSessionService) Save(ctx context.Context, ownerID, id string, base *ProductInput) (*model.Product, error) {
	sess, err := s.lookup(ownerID, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	// 重复提交的保存在前一次完成后拿到锁
	if sess.closed {
		return nil, ErrSessionNotFound
	}

	if err := sess.spec.Validate(); err != nil {
		return nil, err
	}
	cfg := sess.spec.Config()
	images := sess.images.Images()

	var product *model.Product
	if sess.ProductID > 0 {
		product, err = s.products.SaveEdits(ctx, sess.ProductID, cfg, images)
	} else {
		if base == nil {
			return nil, invalidArgf("新建商品需要提供商品信息")
		}
		in := *base
		in.SpecConfig = cfg
		in.DetailImages = images
		product, err = s.products.Create(ctx, in)
	}
	if err != nil {
		return nil, err
	}

	sess.closed = true
	s.sessions.Delete(id)
	s.log.Info("编辑会话已保存", zap.String("session_id", id), zap.Int64("product_id", product.ID))
	return product, nil
}

// Cancel 丢弃会话
func (s *EditSessionService) Cancel(ownerID, id string) error {
	sess, err := s.lookup(ownerID, id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return ErrSessionNotFound
	}
	sess.closed = true
	s.sessions.Delete(id)
	return nil
}

// PurgeExpired 清理过期会话，返回清理数量
func (s *EditSessionService) PurgeExpired() int {
	return s.sessions.Purge()
}

func (s *EditSessionService) lookup(ownerID, id string) (*EditSession, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}
	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.OwnerID != ownerID {
		return nil, ErrSessionForbidden
	}
	return sess, nil
}

// snapshot 调用方持有 sess.mu
func (s *EditSessionService) snapshot(sess *EditSession) *EditSnapshot {
	snap := &EditSnapshot{
		ID:        sess.ID,
		ProductID: sess.ProductID,
		State:     sess.spec.State(),
		Specs:     []model.SpecItem{},
		Images:    sess.images.Images(),
		ExpiresAt: s.now().Add(s.ttl),
	}
	if cfg := sess.spec.Config(); cfg != nil {
		snap.Specs = cfg.Specs
	}
	for i := 0; i < sess.spec.Len(); i++ {
		st, _ := sess.spec.ItemState(i)
		snap.ItemStates = append(snap.ItemStates, st)
	}
	return snap
}

// IsEditError 编辑器拒绝的操作
func IsEditError(err error) bool {
	return errors.Is(err, editor.ErrInvalidEdit)
}
