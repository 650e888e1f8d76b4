package repository

import (
	"github.com/cr4652060-hue/kb-system/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.UserAccount) error
	Save(user *model.UserAccount) error
	GetByUsername(username string) (*model.UserAccount, error)
	IsUsernameExist(username string) bool
	ListAll() ([]model.UserAccount, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.UserAccount) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Save(user *model.UserAccount) error {
	return r.db.Save(user).Error
}

func (r *userRepository) GetByUsername(username string) (*model.UserAccount, error) {
	var user model.UserAccount
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) IsUsernameExist(username string) bool {
	var count int64
	r.db.Model(&model.UserAccount{}).Where("username = ?", username).Count(&count)
	return count > 0
}

// ListAll 按角色、用户名排序返回全部账号
func (r *userRepository) ListAll() ([]model.UserAccount, error) {
	var users []model.UserAccount
	if err := r.db.Order("role asc, username asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
