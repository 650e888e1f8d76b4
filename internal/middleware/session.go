package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cr4652060-hue/kb-system/internal/role"
	"github.com/cr4652060-hue/kb-system/internal/service"
)

// Gin Context 里存放当前身份的键
const (
	CtxUsername   = "username"
	CtxRole       = "role"
	CtxDepartment = "department"
)

// SessionAuth 从 Cookie 解析会话并把身份写入 Context。
// 未登录时分两路：显式要 JSON 的调用方拿 401；浏览器请求与原系统的
// 表单登录保持一致，跳转 login.html（把 HTML 当 200 吞掉的客户端
// 也能识别成"未登录"）。
func SessionAuth(cookieName string, auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookieName)
		me, err := auth.Me(c.Request.Context(), token)
		if err != nil {
			if wantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未登录或会话已过期"})
				return
			}
			c.Redirect(http.StatusFound, "/login.html")
			c.Abort()
			return
		}

		c.Set(CtxUsername, me.Username)
		c.Set(CtxRole, me.Role)
		c.Set(CtxDepartment, me.Department)
		c.Next()
	}
}

// wantsJSON Accept 里带 application/json 的调用方不吃登录页跳转
func wantsJSON(c *gin.Context) bool {
	return strings.Contains(strings.ToLower(c.GetHeader("Accept")), "application/json")
}

// RequireManager 仅放行 ADMIN / DEPT，需叠在 SessionAuth 之后
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !role.Normalize(c.GetString(CtxRole)).CanManageKnowledge() {
			c.JSON(http.StatusForbidden, gin.H{"error": "权限不足"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin 仅放行 ADMIN
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role.Normalize(c.GetString(CtxRole)) != role.Admin {
			c.JSON(http.StatusForbidden, gin.H{"error": "权限不足"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireNonEmployee 模板下载的规则：能登录且不是普通员工档
func RequireNonEmployee() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role.Normalize(c.GetString(CtxRole)).IsEmployee() {
			c.JSON(http.StatusForbidden, gin.H{"error": "权限不足"})
			c.Abort()
			return
		}
		c.Next()
	}
}
