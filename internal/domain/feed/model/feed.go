package model

import (
	"time"

	usermodel "garden_feed/internal/domain/user/model"
)

// Post 社区动态
// Likes 和 CommentCount 为派生计数，由存储层在每次写入后全量重算
type Post struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"userId"`
	Content      string    `json:"content"`
	Category     string    `json:"category"` // drought, pests, plant-care, success, question
	ImageURL     *string   `json:"imageUrl"`
	Likes        int       `json:"likes"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Comment 评论
type Comment struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"postId"`
	UserID    uint      `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Like 点赞
// 同一 (PostID, UserID) 最多存在一条记录，数字 ID 仅用于展示
type Like struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"postId"`
	UserID    uint      `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikeKey 点赞的复合主键
type LikeKey struct {
	PostID uint
	UserID uint
}

// Key 返回点赞记录的复合主键
func (l *Like) Key() LikeKey {
	return LikeKey{PostID: l.PostID, UserID: l.UserID}
}

// PostWithUser 带作者信息的动态视图
type PostWithUser struct {
	Post
	User usermodel.User `json:"user"`
}

// CommentWithUser 带作者信息的评论视图
type CommentWithUser struct {
	Comment
	User usermodel.User `json:"user"`
}
