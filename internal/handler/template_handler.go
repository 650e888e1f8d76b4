package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cr4652060-hue/kb-system/internal/service"
)

type TemplateHandler struct {
	svc service.TemplateService
}

func NewTemplateHandler(svc service.TemplateService) *TemplateHandler {
	return &TemplateHandler{svc: svc}
}

// Download 下载导入模板
// GET /api/template/download
func (h *TemplateHandler) Download(c *gin.Context) {
	data, err := h.svc.Workbook(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "模板生成失败: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.TemplateFileName))
	c.Data(http.StatusOK, service.TemplateContentType, data)
}
