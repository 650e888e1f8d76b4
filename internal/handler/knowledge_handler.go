package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cr4652060-hue/kb-system/internal/dto"
	"github.com/cr4652060-hue/kb-system/internal/middleware"
	"github.com/cr4652060-hue/kb-system/internal/service"
)

type KnowledgeHandler struct {
	search   service.SearchService
	importer service.ImportService
}

func NewKnowledgeHandler(search service.SearchService, importer service.ImportService) *KnowledgeHandler {
	return &KnowledgeHandler{search: search, importer: importer}
}

// Search 关键词检索（前台主用）
// GET /api/search?q=门&category=保障类&department=科技部&limit=200
func (h *KnowledgeHandler) Search(c *gin.Context) {
	var req dto.SearchReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recs, err := h.search.Search(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recs)
}

// List 最近记录（默认浏览视图）
// GET /api/knowledge?limit=50
func (h *KnowledgeHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit 格式错误"})
		return
	}

	recs, err := h.search.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recs)
}

// Add 新增单条知识（弹窗用）
// POST /api/knowledge
func (h *KnowledgeHandler) Add(c *gin.Context) {
	var req dto.AddRecordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	rec, err := h.search.Add(c.Request.Context(), c.GetString(middleware.CtxUsername), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Import Excel 导入
// POST /api/knowledge/import (form-data: file)
func (h *KnowledgeHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请上传文件"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "文件读取失败"})
		return
	}
	defer src.Close()

	result, err := h.importer.ImportExcel(
		c.Request.Context(),
		c.GetString(middleware.CtxUsername),
		c.GetString(middleware.CtxDepartment),
		fileHeader.Filename,
		src,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
