package model

import "gorm.io/datatypes"

// KnowledgeRecord 一条业务知识记录
// 字段全部是展示用字符串，校验与默认值由 Service 层兜底
type KnowledgeRecord struct {
	BaseModel

	// 分类（综合管理类/信贷与风险类…）
	Category string `gorm:"size:30;index:idx_kb_category" json:"category"`

	// 部门
	Department string `gorm:"size:60;index:idx_kb_dept" json:"department"`

	// 业务名称
	BizName string `gorm:"size:200" json:"bizName"`

	// 办理流程
	Process string `gorm:"type:text" json:"process"`

	// 最新要求下达时间（yyyy-MM-dd，可为空）
	LatestReqDate string `gorm:"size:20;index:idx_kb_latest_date" json:"latestReqDate"`

	// 最新要求
	LatestReq string `gorm:"type:text" json:"latestReq"`

	// 案例
	CaseText string `gorm:"type:text" json:"caseText"`

	// 扣罚标准
	Penalty string `gorm:"type:text" json:"penalty"`

	// 制度依据
	Basis string `gorm:"type:text" json:"basis"`

	// 关键词
	Keywords string `gorm:"type:text" json:"keywords"`

	// 维护人
	Owner string `gorm:"size:60" json:"owner"`

	// 更新时间（展示字符串）
	UpdateTime string `gorm:"size:20" json:"updateTime"`

	// 状态（有效/失效）
	Status string `gorm:"size:20" json:"status"`

	// 导入溯源
	SourceFile string `gorm:"size:255" json:"-"`
	SheetName  string `gorm:"size:100" json:"-"`
	RowNo      int    `json:"-"`
}

// ImportLog 每次 Excel 导入的流水记录
type ImportLog struct {
	BaseModel
	Operator   string         `gorm:"size:50" json:"operator"`
	SourceFile string         `gorm:"size:255" json:"source_file"`
	Added      int            `json:"added"`
	Updated    int            `json:"updated"`
	Skipped    int            `json:"skipped"`
	Warnings   datatypes.JSON `json:"warnings"`
}
