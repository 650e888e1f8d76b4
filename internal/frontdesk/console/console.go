// Package console 是管理台控制器：列账号、一键生成部门账号、重置密码。
// 唯一的访问规则：角色不是 ADMIN 就显示警告并拒绝所有后续动作。
package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/cr4652060-hue/kb-system/internal/frontdesk/api"
	"github.com/cr4652060-hue/kb-system/internal/role"
)

const notAdminWarning = "⚠ 你不是管理员，无法使用此页面。"

type Console struct {
	client *api.Client
	role   role.Role
}

// New 用已解析的身份构造管理台；身份本身的获取不设门槛
func New(client *api.Client, identity api.IdentityResult) *Console {
	r := role.Unknown
	if identity.Authenticated() {
		r = role.Normalize(identity.Identity.Role)
	}
	return &Console{client: client, role: r}
}

// Allowed 当前角色能否执行管理动作
func (c *Console) Allowed() bool {
	return c.role == role.Admin
}

// Warning 非管理员时的固定警告文案
func (c *Console) Warning() string {
	return notAdminWarning
}

// LoadAccounts 加载账号列表
func (c *Console) LoadAccounts(ctx context.Context) ([]api.Account, string, error) {
	if !c.Allowed() {
		return nil, notAdminWarning, nil
	}
	accounts, err := c.client.ListAccounts(ctx)
	if err != nil {
		return nil, "初始化失败：" + err.Error(), err
	}
	return accounts, fmt.Sprintf("✅ 已加载 %d 个账号", len(accounts)), nil
}

// Bootstrap 一键生成部门账号（幂等，已存在的跳过）
func (c *Console) Bootstrap(ctx context.Context) string {
	if !c.Allowed() {
		return notAdminWarning
	}
	result, err := c.client.BootstrapDeptAccounts(ctx)
	if err != nil {
		return "生成失败：" + err.Error()
	}
	return fmt.Sprintf("✅ 完成：新增 %d，跳过 %d（已存在）", result.CreatedCount, result.SkippedCount)
}

// ResetPassword 重置密码；用户名或新密码为空时不发请求
func (c *Console) ResetPassword(ctx context.Context, username, newPassword string) string {
	if !c.Allowed() {
		return notAdminWarning
	}
	username = strings.TrimSpace(username)
	newPassword = strings.TrimSpace(newPassword)
	if username == "" || newPassword == "" {
		return "请输入用户名和新密码。"
	}

	msg, err := c.client.ResetPassword(ctx, username, newPassword)
	if err != nil {
		return "重置失败：" + err.Error()
	}
	if msg == "" {
		msg = "完成"
	}
	return msg
}
