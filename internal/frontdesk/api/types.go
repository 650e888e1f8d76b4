package api

// 前台只消费后端的瞬时投影，渲染完即丢弃，不在本层做任何校验或派生。

// Identity 会话端点报告的当前用户
type Identity struct {
	Username   string `json:"username"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// Record 可检索表格的一行
type Record struct {
	Category      string `json:"category"`
	Department    string `json:"department"`
	BizName       string `json:"bizName"`
	Process       string `json:"process"`
	LatestReqDate string `json:"latestReqDate"`
	LatestReq     string `json:"latestReq"`
	CaseText      string `json:"caseText"`
	Penalty       string `json:"penalty"`
	Basis         string `json:"basis"`
	Keywords      string `json:"keywords"`
	Owner         string `json:"owner"`
	UpdateTime    string `json:"updateTime"`
	Status        string `json:"status"`
}

// Account 管理页的账号视图
type Account struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// ImportResult 导入端点的应答
type ImportResult struct {
	Added    int      `json:"added"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings"`
}

// BootstrapResult 一键生成部门账号的应答
type BootstrapResult struct {
	CreatedCount int `json:"createdCount"`
	SkippedCount int `json:"skippedCount"`
}

// IdentityState 身份解析的三种结局。
// 未登录与传输失败在界面上同样按"未登录"降级，但保留区分用于日志与测试。
type IdentityState int

const (
	StateUnauthenticated IdentityState = iota
	StateAuthenticated
	StateTransportError
)

// IdentityResult 身份解析结果，解析过程永不向外抛错
type IdentityResult struct {
	State    IdentityState
	Identity *Identity // 仅 StateAuthenticated 时非 nil
	Detail   error     // 仅 StateTransportError 时非 nil
}

// Authenticated 是否成功拿到身份
func (r IdentityResult) Authenticated() bool {
	return r.State == StateAuthenticated && r.Identity != nil
}
