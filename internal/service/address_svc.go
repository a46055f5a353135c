package service

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"ecom_admin_v1/internal/model"
	"ecom_admin_v1/internal/repository"
)

// AddressInput 新增地址参数
type AddressInput struct {
	Name          string
	Phone         string
	Province      string
	City          string
	District      string
	DetailAddress string
	PostalCode    *string
	IsDefault     bool
}

// AddressPatch 地址部分更新，nil 字段不修改
type AddressPatch struct {
	Name          *string
	Phone         *string
	Province      *string
	City          *string
	District      *string
	DetailAddress *string
	PostalCode    *string
	IsDefault     *bool
}

type AddressService struct {
	users     repository.UserRepository
	addresses repository.AddressRepository
	log       *zap.Logger
}

// addressLabels 地址必填列的展示名称
var addressLabels = map[string]string{
	"name":           "收货人",
	"phone":          "手机号",
	"province":       "省份",
	"city":           "城市",
	"district":       "区县",
	"detail_address": "详细地址",
}

func NewAddressService(users repository.UserRepository, addresses repository.AddressRepository, log *zap.Logger) *AddressService {
	return &AddressService{users: users, addresses: addresses, log: log}
}

// List 用户的全部地址，默认地址在前
func (s *AddressService) List(ctx context.Context, userID int64) ([]model.UserAddress, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	list, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrAddressNotFound, "查询地址列表")
	}
	return list, nil
}

func (s *AddressService) Create(ctx context.Context, userID int64, in AddressInput) (*model.UserAddress, error) {
	addr := &model.UserAddress{
		UserID:        userID,
		Name:          strings.TrimSpace(in.Name),
		Phone:         strings.TrimSpace(in.Phone),
		Province:      strings.TrimSpace(in.Province),
		City:          strings.TrimSpace(in.City),
		District:      strings.TrimSpace(in.District),
		DetailAddress: strings.TrimSpace(in.DetailAddress),
		PostalCode:    in.PostalCode,
		IsDefault:     in.IsDefault,
	}
	if err := requireFields(map[string]string{
		addressLabels["name"]:           addr.Name,
		addressLabels["phone"]:          addr.Phone,
		addressLabels["province"]:       addr.Province,
		addressLabels["city"]:           addr.City,
		addressLabels["district"]:       addr.District,
		addressLabels["detail_address"]: addr.DetailAddress,
	}); err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.addresses.Create(ctx, addr); err != nil {
		return nil, mapNotFound(err, ErrUserNotFound, "新增地址")
	}
	return addr, nil
}

// Update 部分更新，IsDefault=true 时原子切换默认地址
func (s *AddressService) Update(ctx context.Context, userID, id int64, patch AddressPatch) (*model.UserAddress, error) {
	fields := map[string]interface{}{}
	for _, f := range []struct {
		col string
		v   *string
	}{
		{"name", patch.Name},
		{"phone", patch.Phone},
		{"province", patch.Province},
		{"city", patch.City},
		{"district", patch.District},
		{"detail_address", patch.DetailAddress},
	} {
		if f.v == nil {
			continue
		}
		trimmed := strings.TrimSpace(*f.v)
		if trimmed == "" {
			return nil, invalidArgf("%s不能为空", addressLabels[f.col])
		}
		fields[f.col] = trimmed
	}
	if patch.PostalCode != nil {
		fields["postal_code"] = *patch.PostalCode
	}
	if patch.IsDefault != nil {
		fields["is_default"] = *patch.IsDefault
	}
	if len(fields) == 0 {
		return nil, invalidArgf("没有需要更新的字段")
	}

	addr, err := s.addresses.UpdateFields(ctx, userID, id, fields)
	if err != nil {
		return nil, mapNotFound(err, ErrAddressNotFound, "更新地址")
	}
	return addr, nil
}

func (s *AddressService) SetDefault(ctx context.Context, userID, id int64) error {
	if err := s.addresses.SetDefault(ctx, userID, id); err != nil {
		return mapNotFound(err, ErrAddressNotFound, "设置默认地址")
	}
	s.log.Info("默认地址已切换", zap.Int64("user_id", userID), zap.Int64("address_id", id))
	return nil
}

func (s *AddressService) Delete(ctx context.Context, userID, id int64) error {
	return mapNotFound(s.addresses.Delete(ctx, userID, id), ErrAddressNotFound, "删除地址")
}

// RepairDefaults 修复存在多个默认地址的用户，返回修复的用户数
func (s *AddressService) RepairDefaults(ctx context.Context) (int, error) {
	userIDs, err := s.addresses.FindUsersWithMultipleDefaults(ctx)
	if err != nil {
		return 0, mapNotFound(err, ErrAddressNotFound, "巡检默认地址")
	}
	repaired := 0
	for _, userID := range userIDs {
		kept, err := s.addresses.RepairDefault(ctx, userID)
		if err != nil {
			s.log.Warn("修复默认地址失败", zap.Int64("user_id", userID), zap.Error(err))
			continue
		}
		s.log.Info("已修复多个默认地址", zap.Int64("user_id", userID), zap.Int64("kept_address_id", kept))
		repaired++
	}
	return repaired, nil
}

func (s *AddressService) ensureUser(ctx context.Context, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return mapNotFound(err, ErrUserNotFound, "查询用户")
	}
	return nil
}

// requireFields 校验必填字符串，报告全部缺失项
func requireFields(fields map[string]string) error {
	labels := make([]string, 0, len(fields))
	for label, v := range fields {
		if v == "" {
			labels = append(labels, label)
		}
	}
	if len(labels) == 0 {
		return nil
	}
	sort.Strings(labels)
	return invalidArgf("缺少必填字段: %s", strings.Join(labels, ", "))
}
