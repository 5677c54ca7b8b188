package service

import (
	"errors"

	"garden_feed/internal/domain/user/model"
	"garden_feed/internal/domain/user/repository"
	"garden_feed/internal/pkg/database"
)

// ErrUserExists 邮箱已被注册
var ErrUserExists = errors.New("user already exists")

// UserService 用户服务接口
type UserService interface {
	Register(username, email, password, location, zone string) (*model.User, error)
	GetUser(id uint) (*model.User, error)
}

// userService 实现
type userService struct {
	repo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register 创建用户
// 邮箱唯一性在这里检查，存储层本身不做约束
func (s *userService) Register(username, email, password, location, zone string) (*model.User, error) {
	if _, err := s.repo.GetByEmail(email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: password,
		Location: location,
		Zone:     zone,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser 获取单个用户
func (s *userService) GetUser(id uint) (*model.User, error) {
	return s.repo.GetByID(id)
}
