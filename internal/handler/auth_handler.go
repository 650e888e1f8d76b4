package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cr4652060-hue/kb-system/internal/dto"
	"github.com/cr4652060-hue/kb-system/internal/middleware"
	"github.com/cr4652060-hue/kb-system/internal/service"
)

type AuthHandler struct {
	svc        service.AuthService
	cookieName string
	ttlSeconds int
}

func NewAuthHandler(svc service.AuthService, cookieName string, ttlSeconds int) *AuthHandler {
	return &AuthHandler{svc: svc, cookieName: cookieName, ttlSeconds: ttlSeconds}
}

// Login 表单登录
// POST /login (form: username, password)
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	// HttpOnly 会话 Cookie
	c.SetCookie(h.cookieName, token, h.ttlSeconds, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"msg": "登录成功"})
}

// Logout 退出登录，删除服务端会话并清 Cookie
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookieName)
	_ = h.svc.Logout(c.Request.Context(), token)
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"msg": "已退出"})
}

// Me 当前身份
// GET /api/me （由 SessionAuth 保证已登录）
func (h *AuthHandler) Me(c *gin.Context) {
	// 禁止缓存，避免换号后拿到旧身份
	c.Header("Cache-Control", "no-store, no-cache, max-age=0, must-revalidate")
	c.Header("Pragma", "no-cache")

	c.JSON(http.StatusOK, dto.MeResp{
		Username:   c.GetString(middleware.CtxUsername),
		Role:       c.GetString(middleware.CtxRole),
		Department: c.GetString(middleware.CtxDepartment),
	})
}

// LoginPage 极简登录页。未登录访问受保护接口会被 302 带到这里，
// 因此它也是"HTML 伪装成功响应"的来源，前台按未登录处理。
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(loginPageHTML))
}

const loginPageHTML = `<!DOCTYPE html>
<html lang="zh-CN">
<head><meta charset="utf-8"><title>登录 - 业务知识库</title></head>
<body>
  <h2>业务知识库登录</h2>
  <form method="post" action="/login">
    <label>用户名 <input name="username" autocomplete="username"></label>
    <label>密码 <input name="password" type="password" autocomplete="current-password"></label>
    <button type="submit">登录</button>
  </form>
</body>
</html>`
