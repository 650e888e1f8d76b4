package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/cr4652060-hue/kb-system/internal/dto"
	"github.com/cr4652060-hue/kb-system/internal/model"
	"github.com/cr4652060-hue/kb-system/internal/repository"
)

// 模板表头（展示顺序即列顺序）
var TemplateHeaders = []string{
	"分类", "部门", "业务名称", "办理流程", "最新要求下达时间",
	"最新要求", "案例", "扣罚标准", "制度依据", "关键词",
	"维护人", "更新时间", "状态",
}

// 表头行最多往下扫描的行数（模板第一行可能是填写说明）
const headerScanRows = 30

// ObjectArchiver 归档上传的工作簿，MinIO 实现；测试里可替换
type ObjectArchiver interface {
	Archive(ctx context.Context, objectName string, data []byte, contentType string) error
}

type minioArchiver struct {
	client *minio.Client
	bucket string
}

func NewMinioArchiver(client *minio.Client, bucket string) ObjectArchiver {
	return &minioArchiver{client: client, bucket: bucket}
}

func (a *minioArchiver) Archive(ctx context.Context, objectName string, data []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

type ImportService interface {
	// ImportExcel 解析工作簿并按 (部门, 业务名称) 做 upsert
	ImportExcel(ctx context.Context, operator, operatorDept, filename string, r io.Reader) (*dto.ImportResult, error)
}

type importService struct {
	repo     repository.KnowledgeRepository
	archiver ObjectArchiver
}

func NewImportService(repo repository.KnowledgeRepository, archiver ObjectArchiver) ImportService {
	return &importService{repo: repo, archiver: archiver}
}

func (s *importService) ImportExcel(ctx context.Context, operator, operatorDept, filename string, r io.Reader) (*dto.ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件失败: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.New("导入失败：文件不是有效的 xlsx 工作簿")
	}
	defer wb.Close()

	result := &dto.ImportResult{Warnings: []string{}}

	for _, sheetName := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheetName)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Sheet【%s】读取失败，已跳过。", sheetName))
			continue
		}

		headerIdx := findHeaderRow(rows)
		if headerIdx < 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Sheet【%s】未找到表头行（需要包含“业务名称”），已跳过。", sheetName))
			continue
		}

		// 表头 -> 列号（支持：业务名称（必填）/ 关键词* / 最新要求下达时间(可空) 等写法）
		col := map[string]int{}
		for c, cell := range rows[headerIdx] {
			name := normalizeHeader(cell)
			if name != "" {
				col[name] = c
			}
		}
		if _, ok := col["业务名称"]; !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Sheet【%s】缺少表头“业务名称”，已跳过。", sheetName))
			continue
		}

		for rIdx := headerIdx + 1; rIdx < len(rows); rIdx++ {
			row := rows[rIdx]
			if isRowBlank(row) {
				continue
			}

			bizName := cellValue(row, col, "业务名称")
			if bizName == "" {
				result.Skipped++
				continue
			}

			dept := cellValue(row, col, "部门")
			if dept == "" {
				dept = operatorDept
			}
			category := cellValue(row, col, "分类")
			if category == "" {
				category = CategoryOf(dept)
			}

			rec := model.KnowledgeRecord{
				Category:      category,
				Department:    dept,
				BizName:       bizName,
				Process:       cellValue(row, col, "办理流程"),
				LatestReqDate: normalizeDate(cellValue(row, col, "最新要求下达时间")),
				LatestReq:     cellValue(row, col, "最新要求"),
				CaseText:      cellValue(row, col, "案例"),
				Penalty:       cellValue(row, col, "扣罚标准"),
				Basis:         cellValue(row, col, "制度依据"),
				Keywords:      cellValue(row, col, "关键词"),
				Owner:         cellValue(row, col, "维护人"),
				UpdateTime:    cellValue(row, col, "更新时间"),
				Status:        blankToDefault(cellValue(row, col, "状态"), "有效"),
				SourceFile:    filename,
				SheetName:     sheetName,
				RowNo:         rIdx + 1, // Excel 直观行号（从1开始）
			}
			if rec.Owner == "" {
				rec.Owner = operator
			}

			if err := s.upsert(&rec, result); err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Sheet【%s】第 %d 行保存失败：%v", sheetName, rIdx+1, err))
			}
		}
	}

	// 归档原始文件，失败只告警不影响导入结果
	if s.archiver != nil {
		objectName := fmt.Sprintf("imports/%s.xlsx", uuid.New().String())
		if err := s.archiver.Archive(ctx, objectName, raw,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"); err != nil {
			logrus.WithError(err).Warn("导入文件归档失败")
		}
	}

	s.writeImportLog(operator, filename, result)
	return result, nil
}

// upsert 已存在 (部门, 业务名称) 则覆盖字段，否则新建
func (s *importService) upsert(rec *model.KnowledgeRecord, result *dto.ImportResult) error {
	existing, err := s.repo.GetByDeptAndBizName(rec.Department, rec.BizName)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := s.repo.Create(rec); err != nil {
			return err
		}
		result.Added++
		return nil
	}

	rec.ID = existing.ID
	rec.CreatedAt = existing.CreatedAt
	if err := s.repo.Save(rec); err != nil {
		return err
	}
	result.Updated++
	return nil
}

func (s *importService) writeImportLog(operator, filename string, result *dto.ImportResult) {
	warnings, _ := json.Marshal(result.Warnings)
	logRow := &model.ImportLog{
		Operator:   operator,
		SourceFile: filename,
		Added:      result.Added,
		Updated:    result.Updated,
		Skipped:    result.Skipped,
		Warnings:   warnings,
	}
	if err := s.repo.CreateImportLog(logRow); err != nil {
		logrus.WithError(err).Warn("导入流水写入失败")
	}
}

// findHeaderRow 在前 headerScanRows 行里找包含"业务名称"的行
func findHeaderRow(rows [][]string) int {
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for r := 0; r < limit; r++ {
		for _, cell := range rows[r] {
			if normalizeHeader(cell) == "业务名称" {
				return r
			}
		}
	}
	return -1
}

var (
	cnParenRe = regexp.MustCompile("（.*?）")
	enParenRe = regexp.MustCompile(`\(.*?\)`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// normalizeHeader 表头归一化：
// - 去掉中英文括号内容：业务名称（必填） -> 业务名称
// - 去掉星号：关键词* -> 关键词
// - 去掉空格/换行
func normalizeHeader(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = cnParenRe.ReplaceAllString(s, "")
	s = enParenRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "*", "")
	s = spaceRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func cellValue(row []string, col map[string]int, header string) string {
	idx, ok := col[header]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankToDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// normalizeDate 常见写法 2025-12-16 / 2025/12/16 / 2025.12.16 统一成 yyyy-MM-dd，解析不了返回空串
func normalizeDate(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}
	t = strings.ReplaceAll(t, ".", "-")
	t = strings.ReplaceAll(t, "/", "-")

	for _, layout := range []string{"2006-1-2", "2006-01-02"} {
		if d, err := time.Parse(layout, t); err == nil {
			return d.Format("2006-01-02")
		}
	}
	return ""
}

// isRowBlank 整行都空就跳过（避免尾部空行算 skipped）
func isRowBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
