package service

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	TemplateFileName    = "kb_system_template.xlsx"
	templateObjectName  = "templates/" + TemplateFileName
	TemplateContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type TemplateService interface {
	// Workbook 返回导入模板的 xlsx 内容
	Workbook(ctx context.Context) ([]byte, error)
}

type templateService struct {
	client *minio.Client
	bucket string
}

func NewTemplateService(client *minio.Client, bucket string) TemplateService {
	return &templateService{client: client, bucket: bucket}
}

// Workbook 优先取 MinIO 里的缓存副本，没有就现生成并回写
func (s *templateService) Workbook(ctx context.Context) ([]byte, error) {
	if s.client != nil {
		obj, err := s.client.GetObject(ctx, s.bucket, templateObjectName, minio.GetObjectOptions{})
		if err == nil {
			if data, err := io.ReadAll(obj); err == nil && len(data) > 0 {
				return data, nil
			}
		}
	}

	data, err := BuildTemplateWorkbook()
	if err != nil {
		return nil, err
	}

	if s.client != nil {
		if _, err := s.client.PutObject(ctx, s.bucket, templateObjectName,
			bytes.NewReader(data), int64(len(data)),
			minio.PutObjectOptions{ContentType: TemplateContentType}); err != nil {
			logrus.WithError(err).Warn("模板缓存写入 MinIO 失败")
		}
	}
	return data, nil
}

// BuildTemplateWorkbook 生成导入模板：第一行填写说明，第二行 13 个表头，
// 分类列挂下拉（可选项即分类清单）
func BuildTemplateWorkbook() ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	const sheet = "Sheet1"
	if err := wb.SetCellValue(sheet, "A1",
		"填写说明：业务名称、关键词为必填；日期格式 yyyy-MM-dd；状态留空默认为“有效”。"); err != nil {
		return nil, err
	}
	for i, h := range TemplateHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		if err := wb.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	dv := excelize.NewDataValidation(true)
	dv.Sqref = "A3:A1000"
	if err := dv.SetDropList(Categories); err != nil {
		return nil, err
	}
	if err := wb.AddDataValidation(sheet, dv); err != nil {
		return nil, err
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
