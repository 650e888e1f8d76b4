package dto

// UserView 账号列表视图（不含密码哈希）
type UserView struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

type CreateUserReq struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role" binding:"required"`
	Department string `json:"department"`
}

type ResetPwdReq struct {
	Username    string `json:"username" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// BootstrapEntry 一键生成部门账号时的单条明细
type BootstrapEntry struct {
	Department string `json:"department"`
	Username   string `json:"username"`
	Password   string `json:"password,omitempty"`
	Category   string `json:"category,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// BootstrapResult POST /api/admin/bootstrap-dept-accounts 的响应
type BootstrapResult struct {
	OK           bool             `json:"ok"`
	Year         int              `json:"year"`
	CreatedCount int              `json:"createdCount"`
	SkippedCount int              `json:"skippedCount"`
	Created      []BootstrapEntry `json:"created"`
	Skipped      []BootstrapEntry `json:"skipped"`
}
