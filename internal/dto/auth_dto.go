package dto

type LoginReq struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// MeResp /api/me 的响应体，角色为后端原样字符串，由前台归一化
type MeResp struct {
	Username   string `json:"username"`
	Role       string `json:"role"`
	Department string `json:"department"`
}
