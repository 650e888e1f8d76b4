package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/cr4652060-hue/kb-system/internal/dto"
)

// 内存版 SessionStore
type fakeSessionStore struct {
	sessions map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]string{}}
}

func (s *fakeSessionStore) Create(ctx context.Context, username string) (string, error) {
	token := uuid.New().String()
	s.sessions[token] = username
	return token, nil
}

func (s *fakeSessionStore) Get(ctx context.Context, token string) (string, error) {
	username, ok := s.sessions[token]
	if !ok {
		return "", ErrSessionNotFound
	}
	return username, nil
}

func (s *fakeSessionStore) Delete(ctx context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func TestLoginAndMe(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := NewAuthService(repo, sessions)
	require.NoError(t, svc.SeedAdmin())

	_, err := svc.Login(context.Background(), dto.LoginReq{Username: "admin", Password: "错误密码"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "密码错误")

	_, err = svc.Login(context.Background(), dto.LoginReq{Username: "nobody", Password: "x"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "用户不存在")

	token, err := svc.Login(context.Background(), dto.LoginReq{Username: "admin", Password: "Admin@123456"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	me, err := svc.Me(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "admin", me.Username)
	require.Equal(t, "ADMIN", me.Role)
	require.Equal(t, "科技部", me.Department)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := NewAuthService(repo, sessions)
	require.NoError(t, svc.SeedAdmin())

	token, err := svc.Login(context.Background(), dto.LoginReq{Username: "admin", Password: "Admin@123456"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))
	_, err = svc.Me(context.Background(), token)
	require.ErrorIs(t, err, ErrSessionNotFound)

	// 空 token 幂等
	require.NoError(t, svc.Logout(context.Background(), ""))
	_, err = svc.Me(context.Background(), "")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSeedAdminIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, newFakeSessionStore())

	require.NoError(t, svc.SeedAdmin())
	u, err := repo.GetByUsername("admin")
	require.NoError(t, err)
	firstHash := u.PasswordHash

	require.NoError(t, svc.SeedAdmin())
	u, err = repo.GetByUsername("admin")
	require.NoError(t, err)
	require.Equal(t, firstHash, u.PasswordHash)
	require.Len(t, repo.users, 1)
}
