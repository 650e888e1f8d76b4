package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/cr4652060-hue/kb-system/internal/dto"
	"github.com/cr4652060-hue/kb-system/internal/model"
	"github.com/cr4652060-hue/kb-system/internal/repository"
)

type AuthService interface {
	// Login 校验密码并签发会话 token
	Login(ctx context.Context, req dto.LoginReq) (string, error)
	Logout(ctx context.Context, token string) error
	// Me 根据会话 token 返回当前身份
	Me(ctx context.Context, token string) (*dto.MeResp, error)
	// SeedAdmin 初始管理员兜底账号
	SeedAdmin() error
}

type authService struct {
	repo     repository.UserRepository
	sessions SessionStore
}

func NewAuthService(repo repository.UserRepository, sessions SessionStore) AuthService {
	return &authService{repo: repo, sessions: sessions}
}

func (s *authService) Login(ctx context.Context, req dto.LoginReq) (string, error) {
	user, err := s.repo.GetByUsername(req.Username)
	if err != nil {
		return "", errors.New("用户不存在")
	}

	if !CheckPasswordHash(req.Password, user.PasswordHash) {
		return "", errors.New("密码错误")
	}

	token, err := s.sessions.Create(ctx, user.Username)
	if err != nil {
		return "", errors.New("会话创建失败")
	}
	return token, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

func (s *authService) Me(ctx context.Context, token string) (*dto.MeResp, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	username, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return &dto.MeResp{
		Username:   user.Username,
		Role:       user.Role,
		Department: user.Department,
	}, nil
}

// SeedAdmin 不存在 admin 账号时创建一个，已存在则不动
func (s *authService) SeedAdmin() error {
	const username = "admin"
	const rawPwd = "Admin@123456" // 首次登录后请尽快修改

	if s.repo.IsUsernameExist(username) {
		return nil
	}

	hash, err := HashPassword(rawPwd)
	if err != nil {
		return err
	}
	u := &model.UserAccount{
		Username:     username,
		PasswordHash: hash,
		Role:         "ADMIN",
		Department:   "科技部",
	}
	if err := s.repo.Create(u); err != nil {
		return err
	}
	logrus.Info("✅ 已创建管理员 admin / Admin@123456")
	return nil
}
