package dto

// SearchReq /api/search 的查询参数
type SearchReq struct {
	Q          string `form:"q"`
	Category   string `form:"category"`
	Department string `form:"department"`
	Limit      int    `form:"limit,default=200"`
}

// AddRecordReq 新增单条知识（弹窗用）
type AddRecordReq struct {
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
	UpdateTime    string `json:"updateTime"`
	Status        string `json:"status"`
}

// ImportResult Excel 导入结果
// added/updated 是前台主要展示的两个数字，skipped/warnings 供排查
type ImportResult struct {
	Added    int      `json:"added"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings"`
}
