// Package importer 是 Excel 导入控制器：没选文件就地拦截，
// 成功后带着空关键词重跑检索管线，让表格立即反映新数据。
package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/cr4652060-hue/kb-system/internal/frontdesk/api"
	"github.com/cr4652060-hue/kb-system/internal/frontdesk/search"
)

// Outcome 一次导入动作的结果：状态栏文案 + 可选的表格刷新
type Outcome struct {
	Status    string
	Refreshed *search.Result
}

type Controller struct {
	client   *api.Client
	pipeline *search.Pipeline
}

func NewController(client *api.Client, pipeline *search.Pipeline) *Controller {
	return &Controller{client: client, pipeline: pipeline}
}

// Submit 提交导入。file 为 nil 时不发任何请求，直接返回校验提示；
// 失败时把错误文案原样放进状态栏；成功后刷新"最近记录"视图。
func (c *Controller) Submit(ctx context.Context, filename string, file io.Reader) Outcome {
	if file == nil || filename == "" {
		return Outcome{Status: "请先选择要导入的 Excel 文件。"}
	}

	result, err := c.client.ImportWorkbook(ctx, filename, file)
	if err != nil {
		return Outcome{Status: "导入失败：" + err.Error()}
	}

	out := Outcome{
		Status: fmt.Sprintf("✅ 导入完成：新增 %d，更新 %d。", result.Added, result.Updated),
	}
	if refreshed, err := c.pipeline.Run(ctx, ""); err == nil {
		out.Refreshed = refreshed
	}
	return out
}
