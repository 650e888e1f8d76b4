package repository

import (
	"github.com/cr4652060-hue/kb-system/internal/model"
	"gorm.io/gorm"
)

type KnowledgeRepository interface {
	Create(rec *model.KnowledgeRecord) error
	Save(rec *model.KnowledgeRecord) error
	// GetByDeptAndBizName 导入去重用的业务主键 (部门, 业务名称)
	GetByDeptAndBizName(department, bizName string) (*model.KnowledgeRecord, error)
	// ListRecent 最近 N 条（新建在前）
	ListRecent(limit int) ([]model.KnowledgeRecord, error)
	// SearchKeyword 在各文本列上做 LIKE 匹配，附加可选的等值过滤
	SearchKeyword(q, category, department string, limit int) ([]model.KnowledgeRecord, error)
	CreateImportLog(logRow *model.ImportLog) error
}

type knowledgeRepository struct {
	db *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) KnowledgeRepository {
	return &knowledgeRepository{db: db}
}

func (r *knowledgeRepository) Create(rec *model.KnowledgeRecord) error {
	return r.db.Create(rec).Error
}

func (r *knowledgeRepository) Save(rec *model.KnowledgeRecord) error {
	return r.db.Save(rec).Error
}

func (r *knowledgeRepository) GetByDeptAndBizName(department, bizName string) (*model.KnowledgeRecord, error) {
	var rec model.KnowledgeRecord
	err := r.db.Where("department = ? AND biz_name = ?", department, bizName).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *knowledgeRepository) ListRecent(limit int) ([]model.KnowledgeRecord, error) {
	var recs []model.KnowledgeRecord
	err := r.db.Order("id desc").Limit(limit).Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *knowledgeRepository) SearchKeyword(q, category, department string, limit int) ([]model.KnowledgeRecord, error) {
	like := "%" + q + "%"

	tx := r.db.Model(&model.KnowledgeRecord{})
	if category != "" && category != "全部" {
		tx = tx.Where("category = ?", category)
	}
	if department != "" {
		tx = tx.Where("department = ?", department)
	}

	// 中文检索直接 LIKE，不做 lower()
	tx = tx.Where(
		r.db.Where("biz_name LIKE ?", like).
			Or("process LIKE ?", like).
			Or("latest_req LIKE ?", like).
			Or("case_text LIKE ?", like).
			Or("penalty LIKE ?", like).
			Or("basis LIKE ?", like).
			Or("keywords LIKE ?", like),
	)

	var recs []model.KnowledgeRecord
	// 默认按"最新要求下达时间"倒序（空串自然排后），再按 id 倒序
	err := tx.Order("latest_req_date desc, id desc").Limit(limit).Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *knowledgeRepository) CreateImportLog(logRow *model.ImportLog) error {
	return r.db.Create(logRow).Error
}
