// Package search 是检索管线：空关键词取最近记录，否则走检索端点。
// 并发检索用单调递增的请求令牌做围栏，过期响应直接丢弃，表格只被最新一次请求覆盖。
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/cr4652060-hue/kb-system/internal/frontdesk/api"
)

// 空关键词时"最近记录"的固定上限
const RecentLimit = 200

// ErrStale 本次响应落地前已有更新的请求发出，结果不应该渲染
var ErrStale = errors.New("检索结果已过期")

// Result 一次检索的渲染输入：记录、状态栏文案、用于高亮的关键词
type Result struct {
	Records []api.Record
	Status  string
	Query   string
}

// Pipeline 驱动一个表格视图，内部只有请求令牌这一个状态
type Pipeline struct {
	client *api.Client
	seq    atomic.Uint64
}

func NewPipeline(client *api.Client) *Pipeline {
	return &Pipeline{client: client}
}

// Run 执行一次检索。返回 ErrStale 表示结果过期，调用方保持现有表格不动；
// 其它错误的文案原样进状态栏。
func (p *Pipeline) Run(ctx context.Context, query string) (*Result, error) {
	ticket := p.seq.Add(1)

	q := strings.TrimSpace(query)
	var (
		records []api.Record
		err     error
	)
	if q == "" {
		records, err = p.client.RecentRecords(ctx, RecentLimit)
	} else {
		records, err = p.client.SearchRecords(ctx, q)
	}

	// 围栏检查放在请求完成之后：期间有新请求发出则本次结果作废
	if p.seq.Load() != ticket {
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}

	status := fmt.Sprintf("找到 %d 条匹配记录。", len(records))
	if q == "" {
		status = fmt.Sprintf("显示最近 %d 条记录。", len(records))
	}
	return &Result{Records: records, Status: status, Query: q}, nil
}
