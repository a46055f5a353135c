package service

import (
	"context"
	"strings"
	"time"

	"ecom_admin_v1/internal/model"
	"ecom_admin_v1/internal/repository"
)

// UserPatch 用户资料部分更新，nil 字段不修改
type UserPatch struct {
	Nickname  *string
	AvatarURL *string
	Gender    *int
	Phone     *string
	Email     *string
	Birthday  *time.Time
	Status    *int
}

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context, filter repository.UserFilter) ([]model.User, int64, error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, mapNotFound(err, ErrUserNotFound, "查询用户列表")
	}
	return users, total, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound, "查询用户")
	}
	return user, nil
}

// Update 部分更新用户资料，返回更新后的用户
func (s *UserService) Update(ctx context.Context, id int64, patch UserPatch) (*model.User, error) {
	fields := map[string]interface{}{}
	if patch.Nickname != nil {
		fields["nickname"] = strings.TrimSpace(*patch.Nickname)
	}
	if patch.AvatarURL != nil {
		fields["avatar_url"] = *patch.AvatarURL
	}
	if patch.Gender != nil {
		if *patch.Gender < 0 || *patch.Gender > 2 {
			return nil, invalidArgf("性别取值无效")
		}
		fields["gender"] = *patch.Gender
	}
	if patch.Phone != nil {
		fields["phone"] = *patch.Phone
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Birthday != nil {
		fields["birthday"] = *patch.Birthday
	}
	if patch.Status != nil {
		if *patch.Status != model.StatusDisabled && *patch.Status != model.StatusEnabled {
			return nil, invalidArgf("状态取值无效")
		}
		fields["status"] = *patch.Status
	}
	if len(fields) == 0 {
		return nil, invalidArgf("没有需要更新的字段")
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, mapNotFound(err, ErrUserNotFound, "更新用户")
	}
	return s.Get(ctx, id)
}
