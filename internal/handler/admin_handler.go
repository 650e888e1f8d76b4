package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cr4652060-hue/kb-system/internal/dto"
	"github.com/cr4652060-hue/kb-system/internal/service"
)

type AdminHandler struct {
	svc service.AdminService
}

func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ListUsers 列出所有账号（不含密码）
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser 创建单个账号
// POST /api/admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	msg, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "msg": msg})
}

// Bootstrap 一键创建全部部门维护账号，可重复执行，已存在的跳过
// POST /api/admin/bootstrap-dept-accounts
func (h *AdminHandler) Bootstrap(c *gin.Context) {
	result, err := h.svc.BootstrapDeptAccounts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ResetPassword 重置指定账号密码
// POST /api/admin/users/reset-password
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPwdReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	msg, err := h.svc.ResetPassword(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "msg": msg})
}
