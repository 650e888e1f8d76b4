package gate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cr4652060-hue/kb-system/internal/frontdesk/api"
)

func authed(roleText string) api.IdentityResult {
	return api.IdentityResult{
		State:    api.StateAuthenticated,
		Identity: &api.Identity{Username: "zhang", Role: roleText, Department: "科技部"},
	}
}

func TestDecideUnauthenticated(t *testing.T) {
	view := Decide(api.IdentityResult{State: api.StateUnauthenticated})

	require.True(t, view.ShowLogin)
	require.False(t, view.ShowLogout)
	require.False(t, view.ShowAdminLink)
	require.False(t, view.ShowTemplateDownload)
	require.False(t, view.ShowImportPanel)
	require.False(t, view.ShowAddRecord)
}

// 传输失败和未登录走同一个降级视图
func TestDecideTransportErrorDegrades(t *testing.T) {
	view := Decide(api.IdentityResult{
		State:  api.StateTransportError,
		Detail: errors.New("connection refused"),
	})
	require.Equal(t, Decide(api.IdentityResult{State: api.StateUnauthenticated}), view)
}

// 员工档的各种写法（任意大小写）都看不到模板下载与管理入口
func TestDecideEmployeeTierHidesPrivileged(t *testing.T) {
	for _, roleText := range []string{"EMP", "emp", "USER", "user", "STAFF", "staff", "EMPLOYEE", "Employee"} {
		view := Decide(authed(roleText))
		require.False(t, view.ShowTemplateDownload, "role=%q", roleText)
		require.False(t, view.ShowImportPanel, "role=%q", roleText)
		require.False(t, view.ShowAddRecord, "role=%q", roleText)
		require.False(t, view.ShowAdminLink, "role=%q", roleText)
		require.True(t, view.ShowLogout, "role=%q", roleText)
		require.False(t, view.ShowLogin, "role=%q", roleText)
	}
}

// 非员工档（包括未知角色）都能下载模板
func TestDecideNonEmployeeSeesTemplate(t *testing.T) {
	for _, roleText := range []string{"ADMIN", "DEPT", "AUDITOR", "随便什么"} {
		view := Decide(authed(roleText))
		require.True(t, view.ShowTemplateDownload, "role=%q", roleText)
	}
}

// 导入面板与新增按钮：当且仅当 ADMIN / DEPT
func TestDecideManageControls(t *testing.T) {
	cases := []struct {
		roleText string
		want     bool
	}{
		{"ADMIN", true},
		{"admin", true},
		{"DEPT", true},
		{"dept", true},
		{"USER", false},
		{"AUDITOR", false},
		{"", false},
	}
	for _, c := range cases {
		view := Decide(authed(c.roleText))
		require.Equal(t, c.want, view.ShowImportPanel, "role=%q", c.roleText)
		require.Equal(t, c.want, view.ShowAddRecord, "role=%q", c.roleText)
		require.Equal(t, c.want, view.ShowAdminLink, "role=%q", c.roleText)
	}
}

func TestDecideCarriesIdentityText(t *testing.T) {
	view := Decide(authed("DEPT"))
	require.Equal(t, "zhang", view.Username)
	require.Equal(t, "DEPT", view.RoleText)
	require.Equal(t, "科技部", view.Department)
}
