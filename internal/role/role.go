// Package role 把后端自由文本的角色字符串收敛成封闭的枚举，
// 所有下游判断都基于枚举做穷举匹配，不再散落字符串比较。
package role

import "strings"

type Role int

const (
	Unknown Role = iota
	Admin
	Dept
	Employee
)

func (r Role) String() string {
	switch r {
	case Admin:
		return "ADMIN"
	case Dept:
		return "DEPT"
	case Employee:
		return "EMPLOYEE"
	default:
		return "UNKNOWN"
	}
}

// Normalize 大写后做精确匹配；员工档接受历史上出现过的几种同义写法
func Normalize(raw string) Role {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ADMIN":
		return Admin
	case "DEPT":
		return Dept
	case "EMP", "USER", "STAFF", "EMPLOYEE":
		return Employee
	default:
		return Unknown
	}
}

// IsEmployee 普通员工档（不可下载模板、不可导入）
func (r Role) IsEmployee() bool {
	return r == Employee
}

// CanManageKnowledge 仅 ADMIN / DEPT 可以导入 Excel、新增记录
func (r Role) CanManageKnowledge() bool {
	return r == Admin || r == Dept
}
