package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cr4652060-hue/kb-system/internal/dto"
	"github.com/cr4652060-hue/kb-system/internal/model"
	"github.com/cr4652060-hue/kb-system/internal/repository"
)

// 单次查询的最大返回条数，前台也按这个上限取"最近记录"
const MaxSearchLimit = 200

type SearchService interface {
	Search(ctx context.Context, req dto.SearchReq) ([]model.KnowledgeRecord, error)
	ListRecent(ctx context.Context, limit int) ([]model.KnowledgeRecord, error)
	Add(ctx context.Context, operator string, req dto.AddRecordReq) (*model.KnowledgeRecord, error)
}

type searchService struct {
	repo repository.KnowledgeRepository
}

func NewSearchService(repo repository.KnowledgeRepository) SearchService {
	return &searchService{repo: repo}
}

// ClampLimit 把 limit 收敛到 [1, MaxSearchLimit]
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxSearchLimit {
		return MaxSearchLimit
	}
	return limit
}

func (s *searchService) Search(ctx context.Context, req dto.SearchReq) ([]model.KnowledgeRecord, error) {
	kw := strings.TrimSpace(req.Q)
	if kw == "" {
		// 空关键词返回空集，浏览全量走 ListRecent
		return []model.KnowledgeRecord{}, nil
	}
	limit := ClampLimit(req.Limit)
	return s.repo.SearchKeyword(kw, strings.TrimSpace(req.Category), strings.TrimSpace(req.Department), limit)
}

func (s *searchService) ListRecent(ctx context.Context, limit int) ([]model.KnowledgeRecord, error) {
	return s.repo.ListRecent(ClampLimit(limit))
}

// Add 新增单条知识，必填校验 + 默认字段兜底
func (s *searchService) Add(ctx context.Context, operator string, req dto.AddRecordReq) (*model.KnowledgeRecord, error) {
	if strings.TrimSpace(req.BizName) == "" {
		return nil, errors.New("业务名称不能为空")
	}
	if strings.TrimSpace(req.Keywords) == "" {
		return nil, errors.New("关键词不能为空")
	}

	rec := &model.KnowledgeRecord{
		Category:      strings.TrimSpace(req.Category),
		Department:    strings.TrimSpace(req.Department),
		BizName:       strings.TrimSpace(req.BizName),
		Process:       req.Process,
		LatestReqDate: strings.TrimSpace(req.LatestReqDate),
		LatestReq:     req.LatestReq,
		CaseText:      req.CaseText,
		Penalty:       req.Penalty,
		Basis:         req.Basis,
		Keywords:      req.Keywords,
		Owner:         operator,
		UpdateTime:    strings.TrimSpace(req.UpdateTime),
		Status:        strings.TrimSpace(req.Status),
	}
	if rec.Category == "" {
		rec.Category = CategoryOf(rec.Department)
	}
	if rec.Status == "" {
		rec.Status = "有效"
	}
	if rec.UpdateTime == "" {
		rec.UpdateTime = time.Now().Format("2006-01-02")
	}

	if err := s.repo.Create(rec); err != nil {
		return nil, err
	}
	return rec, nil
}
