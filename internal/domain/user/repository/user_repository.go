package repository

import (
	"time"

	"garden_feed/internal/domain/user/model"
	"garden_feed/internal/pkg/database"
)

// UserRepository 接口定义
type UserRepository interface {
	Create(user *model.User) error
	GetByID(id uint) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
}

// userRepository 基于 MemDB 的实现
type userRepository struct {
	db *database.MemDB
}

// NewUserRepository 创建新的仓库实例
func NewUserRepository(db *database.MemDB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户，分配 ID 并写入创建时间
// 唯一性（邮箱、用户名）由调用方预先检查，存储层不做约束
func (r *userRepository) Create(user *model.User) error {
	r.db.Update(func() {
		user.ID = r.db.NextUserID()
		user.CreatedAt = time.Now()
		stored := *user
		r.db.Users[user.ID] = &stored
	})
	return nil
}

// GetByID 根据ID获取用户
func (r *userRepository) GetByID(id uint) (*model.User, error) {
	var found *model.User
	r.db.View(func() {
		if u, ok := r.db.Users[id]; ok {
			cp := *u
			found = &cp
		}
	})
	if found == nil {
		return nil, database.ErrNotFound
	}
	return found, nil
}

// GetByUsername 根据用户名获取用户（线性扫描）
func (r *userRepository) GetByUsername(username string) (*model.User, error) {
	var found *model.User
	r.db.View(func() {
		for _, u := range r.db.Users {
			if u.Username == username {
				cp := *u
				found = &cp
				return
			}
		}
	})
	if found == nil {
		return nil, database.ErrNotFound
	}
	return found, nil
}

// GetByEmail 根据邮箱获取用户（线性扫描）
func (r *userRepository) GetByEmail(email string) (*model.User, error) {
	var found *model.User
	r.db.View(func() {
		for _, u := range r.db.Users {
			if u.Email == email {
				cp := *u
				found = &cp
				return
			}
		}
	})
	if found == nil {
		return nil, database.ErrNotFound
	}
	return found, nil
}
