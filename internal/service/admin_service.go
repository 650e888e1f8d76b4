package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cr4652060-hue/kb-system/internal/dto"
	"github.com/cr4652060-hue/kb-system/internal/model"
	"github.com/cr4652060-hue/kb-system/internal/repository"
)

type AdminService interface {
	ListUsers(ctx context.Context) ([]dto.UserView, error)
	CreateUser(ctx context.Context, req dto.CreateUserReq) (string, error)
	// BootstrapDeptAccounts 为每个还没有账号的部门生成一个 DEPT 账号，可重复执行
	BootstrapDeptAccounts(ctx context.Context) (*dto.BootstrapResult, error)
	ResetPassword(ctx context.Context, req dto.ResetPwdReq) (string, error)
}

type adminService struct {
	repo repository.UserRepository
}

func NewAdminService(repo repository.UserRepository) AdminService {
	return &adminService{repo: repo}
}

func (s *adminService) ListUsers(ctx context.Context) ([]dto.UserView, error) {
	users, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}
	views := make([]dto.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, dto.UserView{
			ID:         u.ID,
			Username:   u.Username,
			Role:       u.Role,
			Department: u.Department,
		})
	}
	return views, nil
}

func (s *adminService) CreateUser(ctx context.Context, req dto.CreateUserReq) (string, error) {
	username := strings.TrimSpace(req.Username)
	if s.repo.IsUsernameExist(username) {
		return "", fmt.Errorf("用户名已存在：%s", username)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return "", fmt.Errorf("密码加密失败")
	}
	u := &model.UserAccount{
		Username:     username,
		PasswordHash: hash,
		Role:         strings.ToUpper(strings.TrimSpace(req.Role)),
		Department:   strings.TrimSpace(req.Department),
	}
	if err := s.repo.Create(u); err != nil {
		return "", err
	}
	return fmt.Sprintf("创建成功：%s", username), nil
}

// BootstrapDeptAccounts 规则：
// - 用户名：部门清单里的固定映射
// - 密码：<首字母大写的用户名>@KB<年份>，例如 Xindai@KB2025
func (s *adminService) BootstrapDeptAccounts(ctx context.Context) (*dto.BootstrapResult, error) {
	year := time.Now().Year()
	result := &dto.BootstrapResult{
		OK:      true,
		Year:    year,
		Created: []dto.BootstrapEntry{},
		Skipped: []dto.BootstrapEntry{},
	}

	for _, e := range DeptUsernames() {
		if s.repo.IsUsernameExist(e.Username) {
			result.Skipped = append(result.Skipped, dto.BootstrapEntry{
				Department: e.Dept,
				Username:   e.Username,
				Reason:     "已存在",
			})
			continue
		}

		password := fmt.Sprintf("%s@KB%d", capitalize(e.Username), year)
		hash, err := HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("密码加密失败")
		}

		u := &model.UserAccount{
			Username:     e.Username,
			PasswordHash: hash,
			Role:         "DEPT",
			Department:   e.Dept,
		}
		if err := s.repo.Create(u); err != nil {
			return nil, err
		}

		result.Created = append(result.Created, dto.BootstrapEntry{
			Department: e.Dept,
			Username:   e.Username,
			Password:   password,
			Category:   e.Category,
		})
	}

	result.CreatedCount = len(result.Created)
	result.SkippedCount = len(result.Skipped)
	return result, nil
}

func (s *adminService) ResetPassword(ctx context.Context, req dto.ResetPwdReq) (string, error) {
	username := strings.TrimSpace(req.Username)
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		return "", fmt.Errorf("用户不存在：%s", username)
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return "", fmt.Errorf("密码加密失败")
	}
	user.PasswordHash = hash
	if err := s.repo.Save(user); err != nil {
		return "", err
	}
	return fmt.Sprintf("已重置密码：%s", username), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
