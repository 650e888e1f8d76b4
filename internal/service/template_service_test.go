package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildTemplateWorkbook(t *testing.T) {
	data, err := BuildTemplateWorkbook()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Sheet1")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)

	// 第一行是填写说明，第二行是 13 个表头
	require.Contains(t, rows[0][0], "填写说明")
	require.Equal(t, TemplateHeaders, rows[1])

	// 模板自身必须能被导入流程识别出表头行
	require.Equal(t, 1, findHeaderRow(rows))

	// 分类列带下拉，可选项就是分类清单
	dvs, err := wb.GetDataValidations("Sheet1")
	require.NoError(t, err)
	require.Len(t, dvs, 1)
	require.Equal(t, "A3:A1000", dvs[0].Sqref)
	for _, category := range Categories {
		require.Contains(t, dvs[0].Formula1, category)
	}
}
