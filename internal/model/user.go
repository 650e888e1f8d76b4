package model

// UserAccount 系统账号
// 角色: ADMIN(系统管理员) / DEPT(部门维护员) / USER(普通员工)
type UserAccount struct {
	BaseModel
	Username     string `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"size:20;default:'USER'" json:"role"`
	Department   string `gorm:"size:60" json:"department"`
}
