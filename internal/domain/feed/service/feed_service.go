package service

import (
	"errors"

	"garden_feed/internal/domain/feed/model"
	"garden_feed/internal/domain/feed/repository"
	userrepo "garden_feed/internal/domain/user/repository"
	"garden_feed/internal/pkg/database"
)

// 引用完整性错误：存储层不做约束，写入前在这里检查
var (
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
)

// FeedService 动态服务接口
type FeedService interface {
	CreatePost(userID uint, content, category string, imageURL *string) (*model.Post, error)
	GetFeed(category string) ([]model.PostWithUser, error)
	GetPost(id uint) (*model.PostWithUser, error)

	AddComment(postID, userID uint, content string) (*model.Comment, error)
	GetPostComments(postID uint) ([]model.CommentWithUser, error)

	ToggleLike(postID, userID uint) (liked bool, likeCount int, err error)
	HasLiked(postID, userID uint) (bool, error)
}

// feedService 实现
type feedService struct {
	repo  repository.FeedRepository
	users userrepo.UserRepository
}

// NewFeedService 创建动态服务
func NewFeedService(repo repository.FeedRepository, users userrepo.UserRepository) FeedService {
	return &feedService{repo: repo, users: users}
}

// userExists 作者必须存在，避免写入孤儿行
func (s *feedService) userExists(userID uint) error {
	if _, err := s.users.GetByID(userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// postExists 目标动态必须存在
func (s *feedService) postExists(postID uint) error {
	if _, err := s.repo.GetPost(postID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// CreatePost 发布动态，作者必须已注册
func (s *feedService) CreatePost(userID uint, content, category string, imageURL *string) (*model.Post, error) {
	if err := s.userExists(userID); err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID:   userID,
		Content:  content,
		Category: category,
		ImageURL: imageURL,
	}
	if err := s.repo.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetFeed 获取动态流，category 为空时返回全部
func (s *feedService) GetFeed(category string) ([]model.PostWithUser, error) {
	if category != "" {
		return s.repo.GetPostsByCategory(category)
	}
	return s.repo.GetPosts()
}

// GetPost 获取单条动态
func (s *feedService) GetPost(id uint) (*model.PostWithUser, error) {
	return s.repo.GetPost(id)
}

// AddComment 发表评论，动态和作者都必须存在
// 评论计数由存储层在 CreateComment 内维护，这里不再重算
func (s *feedService) AddComment(postID, userID uint, content string) (*model.Comment, error) {
	if err := s.postExists(postID); err != nil {
		return nil, err
	}
	if err := s.userExists(userID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := s.repo.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetPostComments 获取评论列表
func (s *feedService) GetPostComments(postID uint) ([]model.CommentWithUser, error) {
	return s.repo.GetCommentsByPost(postID)
}

// ToggleLike 点赞/取消点赞，动态必须存在
func (s *feedService) ToggleLike(postID, userID uint) (bool, int, error) {
	if err := s.postExists(postID); err != nil {
		return false, 0, err
	}
	return s.repo.ToggleLike(postID, userID)
}

// HasLiked 查询点赞状态，记录不存在视为未点赞
func (s *feedService) HasLiked(postID, userID uint) (bool, error) {
	if _, err := s.repo.GetLike(postID, userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
