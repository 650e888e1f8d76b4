package service

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/cr4652060-hue/kb-system/internal/model"
)

// 内存版 UserRepository
type fakeUserRepo struct {
	users  map[string]*model.UserAccount
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.UserAccount{}}
}

func (r *fakeUserRepo) Create(user *model.UserAccount) error {
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.users[user.Username] = &cp
	return nil
}

func (r *fakeUserRepo) Save(user *model.UserAccount) error {
	cp := *user
	r.users[user.Username] = &cp
	return nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*model.UserAccount, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) IsUsernameExist(username string) bool {
	_, ok := r.users[username]
	return ok
}

func (r *fakeUserRepo) ListAll() ([]model.UserAccount, error) {
	var out []model.UserAccount
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Role != out[j].Role {
			return out[i].Role < out[j].Role
		}
		return out[i].Username < out[j].Username
	})
	return out, nil
}

// 内存版 KnowledgeRepository
type fakeKnowledgeRepo struct {
	recs   []*model.KnowledgeRecord
	logs   []*model.ImportLog
	nextID uint
}

func newFakeKnowledgeRepo() *fakeKnowledgeRepo {
	return &fakeKnowledgeRepo{}
}

func (r *fakeKnowledgeRepo) Create(rec *model.KnowledgeRecord) error {
	r.nextID++
	rec.ID = r.nextID
	cp := *rec
	r.recs = append(r.recs, &cp)
	return nil
}

func (r *fakeKnowledgeRepo) Save(rec *model.KnowledgeRecord) error {
	for i, existing := range r.recs {
		if existing.ID == rec.ID {
			cp := *rec
			r.recs[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeKnowledgeRepo) GetByDeptAndBizName(department, bizName string) (*model.KnowledgeRecord, error) {
	for _, rec := range r.recs {
		if rec.Department == department && rec.BizName == bizName {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeKnowledgeRepo) ListRecent(limit int) ([]model.KnowledgeRecord, error) {
	var out []model.KnowledgeRecord
	for i := len(r.recs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *r.recs[i])
	}
	return out, nil
}

func (r *fakeKnowledgeRepo) SearchKeyword(q, category, department string, limit int) ([]model.KnowledgeRecord, error) {
	var out []model.KnowledgeRecord
	for _, rec := range r.recs {
		if len(out) >= limit {
			break
		}
		if category != "" && category != "全部" && rec.Category != category {
			continue
		}
		if department != "" && rec.Department != department {
			continue
		}
		if containsKeyword(rec, q) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func containsKeyword(rec *model.KnowledgeRecord, q string) bool {
	if q == "" {
		return false
	}
	for _, field := range []string{
		rec.BizName, rec.Process, rec.LatestReq, rec.CaseText,
		rec.Penalty, rec.Basis, rec.Keywords,
	} {
		if strings.Contains(field, q) {
			return true
		}
	}
	return false
}

func (r *fakeKnowledgeRepo) CreateImportLog(logRow *model.ImportLog) error {
	cp := *logRow
	r.logs = append(r.logs, &cp)
	return nil
}

// 内存归档器，记录所有归档对象
type fakeArchiver struct {
	objects map[string][]byte
}

func newFakeArchiver() *fakeArchiver {
	return &fakeArchiver{objects: map[string][]byte{}}
}

func (a *fakeArchiver) Archive(ctx context.Context, objectName string, data []byte, contentType string) error {
	a.objects[objectName] = data
	return nil
}
