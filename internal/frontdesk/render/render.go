// Package render 负责把后端返回的投影渲染成 HTML 片段。
// 所有单元格先做转义，再对可检索列做关键词高亮。
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cr4652060-hue/kb-system/internal/frontdesk/api"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape 防注入转义：& < > " '
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// Highlight 转义后把关键词出现处包上 <mark>。
// 关键词按字面量匹配（QuoteMeta），用户输入里的正则元字符不会改变匹配语义。
func Highlight(s, q string) string {
	if q == "" {
		return Escape(s)
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(q))
	if err != nil {
		// QuoteMeta 之后不应该编译失败，兜底只转义
		return Escape(s)
	}

	var b strings.Builder
	last := 0
	for _, m := range re.FindAllStringIndex(s, -1) {
		b.WriteString(Escape(s[last:m[0]]))
		b.WriteString("<mark>")
		b.WriteString(Escape(s[m[0]:m[1]]))
		b.WriteString("</mark>")
		last = m[1]
	}
	b.WriteString(Escape(s[last:]))
	return b.String()
}

// 表头列，顺序与单元格渲染一一对应
var recordHeaders = []string{
	"分类", "部门", "业务名称", "办理流程", "最新要求下达时间",
	"最新要求", "案例", "扣罚标准", "制度依据", "关键词",
	"维护人", "更新时间", "状态",
}

// RecordTable 渲染知识表格。可检索列高亮，空结果渲染单行占位。
func RecordTable(records []api.Record, q string) string {
	var b strings.Builder
	b.WriteString(`<table class="tb"><thead><tr>`)
	for _, h := range recordHeaders {
		b.WriteString("<th>")
		b.WriteString(h)
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")

	if len(records) == 0 {
		fmt.Fprintf(&b, `<tr><td colspan="%d" class="empty">未找到匹配结果。</td></tr>`, len(recordHeaders))
	}

	for _, r := range records {
		cells := []string{
			Escape(r.Category),
			Escape(r.Department),
			Highlight(r.BizName, q),
			Highlight(r.Process, q),
			Escape(r.LatestReqDate),
			Highlight(r.LatestReq, q),
			Highlight(r.CaseText, q),
			Highlight(r.Penalty, q),
			Highlight(r.Basis, q),
			Highlight(r.Keywords, q),
			Escape(r.Owner),
			Escape(r.UpdateTime),
			Escape(r.Status),
		}
		b.WriteString("<tr>")
		for _, cell := range cells {
			b.WriteString("<td>")
			b.WriteString(cell)
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}

	b.WriteString("</tbody></table>")
	return b.String()
}

// AccountTable 渲染管理页的账号表格
func AccountTable(accounts []api.Account) string {
	var b strings.Builder
	b.WriteString(`<table class="tb"><thead><tr>` +
		`<th style="width:80px">ID</th>` +
		`<th style="width:140px">用户名</th>` +
		`<th style="width:100px">角色</th>` +
		`<th>部门</th>` +
		`</tr></thead><tbody>`)

	if len(accounts) == 0 {
		b.WriteString(`<tr><td colspan="4" class="empty">暂无账号。</td></tr>`)
	}

	for _, u := range accounts {
		fmt.Fprintf(&b, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			u.ID, Escape(u.Username), Escape(u.Role), Escape(u.Department))
	}

	b.WriteString("</tbody></table>")
	return b.String()
}
