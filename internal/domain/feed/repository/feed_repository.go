package repository

import (
	"sort"
	"time"

	"garden_feed/internal/domain/feed/model"
	"garden_feed/internal/pkg/database"
)

// FeedRepository 动态存储接口
// Post.Likes 和 Post.CommentCount 是派生计数：每次点赞/评论写入后
// 由存储层全量重算，而不是原地加减，避免多个调用路径导致计数漂移
type FeedRepository interface {
	CreatePost(post *model.Post) error
	GetPosts() ([]model.PostWithUser, error)
	GetPostsByCategory(category string) ([]model.PostWithUser, error)
	GetPost(id uint) (*model.PostWithUser, error)
	UpdatePostLikes(postID uint, likes int) error
	UpdatePostCommentCount(postID uint, count int) error

	CreateComment(comment *model.Comment) error
	GetCommentsByPost(postID uint) ([]model.CommentWithUser, error)

	GetLike(postID, userID uint) (*model.Like, error)
	CreateLike(like *model.Like) error
	DeleteLike(postID, userID uint) error
	GetLikeCount(postID uint) (int, error)

	// ToggleLike 在单个临界区内完成"查-改"，两个并发请求不会同时观察到
	// 未点赞状态。返回切换后的点赞状态和最新计数
	ToggleLike(postID, userID uint) (liked bool, likeCount int, err error)
}

type feedRepository struct {
	db *database.MemDB
}

// NewFeedRepository 创建新的仓库实例
func NewFeedRepository(db *database.MemDB) FeedRepository {
	return &feedRepository{db: db}
}

// --- Post ---

// CreatePost 创建动态，计数从 0 开始
func (r *feedRepository) CreatePost(post *model.Post) error {
	r.db.Update(func() {
		post.ID = r.db.NextPostID()
		post.Likes = 0
		post.CommentCount = 0
		post.CreatedAt = time.Now()
		stored := *post
		r.db.Posts[post.ID] = &stored
	})
	return nil
}

// GetPosts 返回全部动态（带作者），按创建时间倒序，最新在前
// 结果永远是非 nil 切片，空库序列化为 [] 而不是 null
func (r *feedRepository) GetPosts() ([]model.PostWithUser, error) {
	posts := make([]model.PostWithUser, 0)
	r.db.View(func() {
		for _, p := range r.db.Posts {
			posts = append(posts, r.joinPostLocked(p))
		}
	})
	sortPostsNewestFirst(posts)
	return posts, nil
}

// GetPostsByCategory 按分类精确匹配（区分大小写），排序与 GetPosts 一致
func (r *feedRepository) GetPostsByCategory(category string) ([]model.PostWithUser, error) {
	posts := make([]model.PostWithUser, 0)
	r.db.View(func() {
		for _, p := range r.db.Posts {
			if p.Category == category {
				posts = append(posts, r.joinPostLocked(p))
			}
		}
	})
	sortPostsNewestFirst(posts)
	return posts, nil
}

// GetPost 获取单条动态（带作者）
func (r *feedRepository) GetPost(id uint) (*model.PostWithUser, error) {
	var found *model.PostWithUser
	r.db.View(func() {
		if p, ok := r.db.Posts[id]; ok {
			pw := r.joinPostLocked(p)
			found = &pw
		}
	})
	if found == nil {
		return nil, database.ErrNotFound
	}
	return found, nil
}

// UpdatePostLikes 无条件覆盖点赞计数，动态不存在时静默跳过
func (r *feedRepository) UpdatePostLikes(postID uint, likes int) error {
	r.db.Update(func() {
		if p, ok := r.db.Posts[postID]; ok {
			p.Likes = likes
		}
	})
	return nil
}

// UpdatePostCommentCount 无条件覆盖评论计数，动态不存在时静默跳过
func (r *feedRepository) UpdatePostCommentCount(postID uint, count int) error {
	r.db.Update(func() {
		if p, ok := r.db.Posts[postID]; ok {
			p.CommentCount = count
		}
	})
	return nil
}

// --- Comment ---

// CreateComment 创建评论，并在同一临界区内重算所属动态的评论计数
// 计数维护是本方法的职责，调用方不需要（也不应该）再次重算
func (r *feedRepository) CreateComment(comment *model.Comment) error {
	r.db.Update(func() {
		comment.ID = r.db.NextCommentID()
		comment.CreatedAt = time.Now()
		stored := *comment
		r.db.Comments[comment.ID] = &stored
		r.recountCommentsLocked(comment.PostID)
	})
	return nil
}

// GetCommentsByPost 返回某条动态的评论（带作者），按创建时间正序，最早在前
func (r *feedRepository) GetCommentsByPost(postID uint) ([]model.CommentWithUser, error) {
	comments := make([]model.CommentWithUser, 0)
	r.db.View(func() {
		for _, c := range r.db.Comments {
			if c.PostID != postID {
				continue
			}
			cw := model.CommentWithUser{Comment: *c}
			if u, ok := r.db.Users[c.UserID]; ok {
				cw.User = *u
			}
			comments = append(comments, cw)
		}
	})
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

// --- Like ---

// GetLike 按 (postID, userID) 复合主键查找，未找到返回 ErrNotFound
func (r *feedRepository) GetLike(postID, userID uint) (*model.Like, error) {
	var found *model.Like
	r.db.View(func() {
		if l, ok := r.db.Likes[model.LikeKey{PostID: postID, UserID: userID}]; ok {
			cp := *l
			found = &cp
		}
	})
	if found == nil {
		return nil, database.ErrNotFound
	}
	return found, nil
}

// CreateLike 写入点赞并重算动态的点赞计数
func (r *feedRepository) CreateLike(like *model.Like) error {
	r.db.Update(func() {
		like.ID = r.db.NextLikeID()
		like.CreatedAt = time.Now()
		stored := *like
		r.db.Likes[stored.Key()] = &stored
		r.recountLikesLocked(like.PostID)
	})
	return nil
}

// DeleteLike 按复合主键删除，不存在时静默跳过；随后重算计数
func (r *feedRepository) DeleteLike(postID, userID uint) error {
	r.db.Update(func() {
		delete(r.db.Likes, model.LikeKey{PostID: postID, UserID: userID})
		r.recountLikesLocked(postID)
	})
	return nil
}

// GetLikeCount 扫描统计某条动态的点赞数，不读缓存字段
func (r *feedRepository) GetLikeCount(postID uint) (int, error) {
	count := 0
	r.db.View(func() {
		count = r.countLikesLocked(postID)
	})
	return count, nil
}

// ToggleLike 切换点赞状态
func (r *feedRepository) ToggleLike(postID, userID uint) (bool, int, error) {
	var (
		liked bool
		count int
	)
	r.db.Update(func() {
		key := model.LikeKey{PostID: postID, UserID: userID}
		if _, ok := r.db.Likes[key]; ok {
			delete(r.db.Likes, key)
			liked = false
		} else {
			r.db.Likes[key] = &model.Like{
				ID:        r.db.NextLikeID(),
				PostID:    postID,
				UserID:    userID,
				CreatedAt: time.Now(),
			}
			liked = true
		}
		count = r.recountLikesLocked(postID)
	})
	return liked, count, nil
}

// --- helpers（必须在临界区内调用） ---

func (r *feedRepository) joinPostLocked(p *model.Post) model.PostWithUser {
	pw := model.PostWithUser{Post: *p}
	if u, ok := r.db.Users[p.UserID]; ok {
		pw.User = *u
	}
	return pw
}

func (r *feedRepository) countLikesLocked(postID uint) int {
	count := 0
	for key := range r.db.Likes {
		if key.PostID == postID {
			count++
		}
	}
	return count
}

func (r *feedRepository) recountLikesLocked(postID uint) int {
	count := r.countLikesLocked(postID)
	if p, ok := r.db.Posts[postID]; ok {
		p.Likes = count
	}
	return count
}

func (r *feedRepository) recountCommentsLocked(postID uint) {
	count := 0
	for _, c := range r.db.Comments {
		if c.PostID == postID {
			count++
		}
	}
	if p, ok := r.db.Posts[postID]; ok {
		p.CommentCount = count
	}
}

func sortPostsNewestFirst(posts []model.PostWithUser) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
