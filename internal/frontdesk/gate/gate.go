// Package gate 是角色门禁：每次页面加载解析一次身份，
// 由纯函数算出各个控件的可见性，身份解析失败一律降级成未登录视图。
package gate

import (
	"github.com/cr4652060-hue/kb-system/internal/frontdesk/api"
	"github.com/cr4652060-hue/kb-system/internal/role"
)

// ViewState 一次页面加载里所有受角色限制控件的可见性
type ViewState struct {
	// 登录链接 / 退出按钮互斥
	ShowLogin  bool
	ShowLogout bool

	// 模板下载：能登录的都可以，普通员工除外
	ShowTemplateDownload bool

	// Excel 导入面板与"新增知识"：仅 ADMIN / DEPT
	ShowImportPanel bool
	ShowAddRecord   bool

	// 管理页入口：仅 ADMIN / DEPT
	ShowAdminLink bool

	// 顶栏展示用
	Username   string
	RoleText   string
	Department string
}

// Decide 由身份解析结果算出视图状态。
// 未登录与传输失败走同一个降级分支，永不向调用方抛错。
func Decide(res api.IdentityResult) ViewState {
	if !res.Authenticated() {
		return ViewState{ShowLogin: true}
	}

	me := res.Identity
	r := role.Normalize(me.Role)

	return ViewState{
		ShowLogout:           true,
		ShowTemplateDownload: !r.IsEmployee(),
		ShowImportPanel:      r.CanManageKnowledge(),
		ShowAddRecord:        r.CanManageKnowledge(),
		ShowAdminLink:        r.CanManageKnowledge(),
		Username:             me.Username,
		RoleText:             me.Role,
		Department:           me.Department,
	}
}
