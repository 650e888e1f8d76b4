package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cr4652060-hue/kb-system/internal/dto"
)

func TestBootstrapDeptAccountsIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAdminService(repo)

	first, err := svc.BootstrapDeptAccounts(context.Background())
	require.NoError(t, err)
	require.True(t, first.OK)
	require.Equal(t, time.Now().Year(), first.Year)
	require.Equal(t, len(DeptUsernames()), first.CreatedCount)
	require.Zero(t, first.SkippedCount)

	// 明文密码只在创建时返回一次，格式 <首字母大写用户名>@KB<年份>
	for _, e := range first.Created {
		require.Equal(t, fmt.Sprintf("%s@KB%d", capitalize(e.Username), first.Year), e.Password)
		u, err := repo.GetByUsername(e.Username)
		require.NoError(t, err)
		require.Equal(t, "DEPT", u.Role)
		require.Equal(t, e.Department, u.Department)
		require.True(t, CheckPasswordHash(e.Password, u.PasswordHash))
	}

	// 重复执行：全部跳过，不覆盖已有账号
	second, err := svc.BootstrapDeptAccounts(context.Background())
	require.NoError(t, err)
	require.Zero(t, second.CreatedCount)
	require.Equal(t, len(DeptUsernames()), second.SkippedCount)
	for _, e := range second.Skipped {
		require.Equal(t, "已存在", e.Reason)
		require.Empty(t, e.Password)
	}
}

func TestCreateUserRejectsDuplicate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAdminService(repo)

	msg, err := svc.CreateUser(context.Background(), dto.CreateUserReq{
		Username: "xindai", Password: "Xindai@123", Role: "dept", Department: "信贷管理部",
	})
	require.NoError(t, err)
	require.Contains(t, msg, "xindai")

	// 角色入库统一大写
	u, err := repo.GetByUsername("xindai")
	require.NoError(t, err)
	require.Equal(t, "DEPT", u.Role)

	_, err = svc.CreateUser(context.Background(), dto.CreateUserReq{
		Username: "xindai", Password: "Other@123", Role: "DEPT",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "已存在")
}

func TestResetPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAdminService(repo)

	_, err := svc.CreateUser(context.Background(), dto.CreateUserReq{
		Username: "keji", Password: "Keji@123456", Role: "DEPT", Department: "科技部",
	})
	require.NoError(t, err)

	msg, err := svc.ResetPassword(context.Background(), dto.ResetPwdReq{Username: "keji", NewPassword: "New@123456"})
	require.NoError(t, err)
	require.Contains(t, msg, "keji")

	u, err := repo.GetByUsername("keji")
	require.NoError(t, err)
	require.True(t, CheckPasswordHash("New@123456", u.PasswordHash))
	require.False(t, CheckPasswordHash("Keji@123456", u.PasswordHash))

	_, err = svc.ResetPassword(context.Background(), dto.ResetPwdReq{Username: "nobody", NewPassword: "x"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "用户不存在")
}

func TestListUsersHidesPasswordHash(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAdminService(repo)

	_, err := svc.CreateUser(context.Background(), dto.CreateUserReq{
		Username: "admin", Password: "Admin@123456", Role: "ADMIN", Department: "科技部",
	})
	require.NoError(t, err)

	views, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "admin", views[0].Username)
	require.Equal(t, "ADMIN", views[0].Role)
}
