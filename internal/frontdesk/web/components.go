package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// 页面组件。表格片段由 render 包拼好并转义好，整块 Raw 注入；
// 其余动态文本一律过 templ.EscapeString。

const indexStyle = `body{font-family:sans-serif;margin:24px}
.tb{border-collapse:collapse;width:100%}
.tb th,.tb td{border:1px solid #ccc;padding:6px;font-size:13px;vertical-align:top}
.tb mark{background:#ffe58f}
.empty{color:#888;text-align:center}
.bar{margin-bottom:12px}
.status{color:#555;margin:8px 0}`

const adminStyle = `body{font-family:sans-serif;margin:24px}
.tb{border-collapse:collapse;width:100%}
.tb th,.tb td{border:1px solid #ccc;padding:6px;font-size:13px}
.empty{color:#888;text-align:center}
.status{color:#555;margin:8px 0}
fieldset{margin:12px 0}`

func write(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}

// layout 公共骨架，正文通过 templ.WithChildren 注入
func layout(title, style string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w,
			`<!DOCTYPE html><html lang="zh-CN"><head><meta charset="utf-8"><title>`,
			templ.EscapeString(title),
			`</title><style>`, style, `</style></head><body>`); err != nil {
			return err
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		return write(w, `</body></html>`)
	})
}

func indexComponent(p indexPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if err := write(w, `<div class="bar"><b>业务知识库</b>`); err != nil {
				return err
			}
			if p.View.ShowLogout {
				if err := write(w,
					`<span>`, templ.EscapeString(p.View.Username),
					`（`, templ.EscapeString(p.View.RoleText),
					` / `, templ.EscapeString(p.View.Department), `）</span>`,
					`<form method="post" action="/logout" style="display:inline"><button type="submit">退出</button></form>`); err != nil {
					return err
				}
			}
			if p.View.ShowLogin {
				if err := write(w, `<a href="/login.html">登录</a>`); err != nil {
					return err
				}
			}
			if p.View.ShowAdminLink {
				if err := write(w, `<a href="/admin">账号管理</a>`); err != nil {
					return err
				}
			}
			if p.View.ShowTemplateDownload {
				if err := write(w, `<a href="`, templ.EscapeString(p.TemplateURL), `">下载导入模板</a>`); err != nil {
					return err
				}
			}
			if err := write(w, `</div>`,
				`<form method="get" action="/"><input name="q" value="`,
				templ.EscapeString(p.Query),
				`" placeholder="输入关键词，如：门禁 / 贷款"><button type="submit">搜索</button></form>`); err != nil {
				return err
			}
			if p.View.ShowImportPanel {
				if err := write(w,
					`<form method="post" action="/import" enctype="multipart/form-data" class="bar">`,
					`<input type="file" name="file" accept=".xlsx">`,
					`<button type="submit">导入 Excel</button></form>`); err != nil {
					return err
				}
			}
			if err := write(w,
				`<div class="status" id="status">`, templ.EscapeString(p.Status), `</div>`,
				`<div id="table">`); err != nil {
				return err
			}
			if err := templ.Raw(p.Table).Render(ctx, w); err != nil {
				return err
			}
			return write(w, `</div>`)
		})
		return layout("业务知识库", indexStyle).Render(templ.WithChildren(ctx, content), w)
	})
}

func adminComponent(p adminPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if err := write(w,
				`<p><a href="/">← 返回检索页</a></p><h2>账号管理</h2>`,
				`<p>当前用户：<b>`, templ.EscapeString(p.Username), `</b>（`,
				templ.EscapeString(p.RoleText), `）</p>`,
				`<div class="status" id="status">`, templ.EscapeString(p.Status), `</div>`); err != nil {
				return err
			}
			if p.Allowed {
				if err := write(w,
					`<fieldset><legend>一键生成部门维护账号</legend>`,
					`<form method="post" action="/admin/bootstrap"><button type="submit">生成（已存在的自动跳过）</button></form></fieldset>`,
					`<fieldset><legend>重置密码</legend><form method="post" action="/admin/reset-password">`,
					`<input name="username" placeholder="用户名">`,
					`<input name="newPassword" type="password" placeholder="新密码">`,
					`<button type="submit">重置</button></form></fieldset>`); err != nil {
					return err
				}
			}
			if err := write(w, `<div id="table">`); err != nil {
				return err
			}
			if err := templ.Raw(p.Table).Render(ctx, w); err != nil {
				return err
			}
			return write(w, `</div>`)
		})
		return layout("账号管理 - 业务知识库", adminStyle).Render(templ.WithChildren(ctx, content), w)
	})
}

func loginComponent(errMsg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if err := write(w, `<h2>业务知识库登录</h2>`); err != nil {
				return err
			}
			if errMsg != "" {
				if err := write(w, `<p style="color:#c00">`, templ.EscapeString(errMsg), `</p>`); err != nil {
					return err
				}
			}
			return write(w,
				`<form method="post" action="/login">`,
				`<label>用户名 <input name="username" autocomplete="username"></label>`,
				`<label>密码 <input name="password" type="password" autocomplete="current-password"></label>`,
				`<button type="submit">登录</button></form>`)
		})
		return layout("登录 - 业务知识库", "").Render(templ.WithChildren(ctx, content), w)
	})
}
