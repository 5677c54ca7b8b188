package database

import (
	"errors"
	"sync"

	feedmodel "garden_feed/internal/domain/feed/model"
	usermodel "garden_feed/internal/domain/user/model"
)

// ErrNotFound 记录不存在
// 存储层用它表达"未找到"，调用方通过 errors.Is 判断
var ErrNotFound = errors.New("record not found")

// MemDB 进程内数据库，持有全部实体表
// 进程重启后数据丢失；所有仓库操作必须经过 View/Update 进入临界区
type MemDB struct {
	mu sync.RWMutex

	Users    map[uint]*usermodel.User
	Posts    map[uint]*feedmodel.Post
	Comments map[uint]*feedmodel.Comment
	Likes    map[feedmodel.LikeKey]*feedmodel.Like

	userSeq    uint
	postSeq    uint
	commentSeq uint
	likeSeq    uint
}

// NewMemDB 创建空数据库
func NewMemDB() *MemDB {
	return &MemDB{
		Users:    make(map[uint]*usermodel.User),
		Posts:    make(map[uint]*feedmodel.Post),
		Comments: make(map[uint]*feedmodel.Comment),
		Likes:    make(map[feedmodel.LikeKey]*feedmodel.Like),
	}
}

// View 在读锁内执行 fn
func (db *MemDB) View(fn func()) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	fn()
}

// Update 在写锁内执行 fn
func (db *MemDB) Update(fn func()) {
	db.mu.Lock()
	defer db.mu.Unlock()
	fn()
}

// ID 序列从 1 开始单调递增，进程内不复用
// 以下方法必须在 Update 临界区内调用

func (db *MemDB) NextUserID() uint {
	db.userSeq++
	return db.userSeq
}

func (db *MemDB) NextPostID() uint {
	db.postSeq++
	return db.postSeq
}

func (db *MemDB) NextCommentID() uint {
	db.commentSeq++
	return db.commentSeq
}

func (db *MemDB) NextLikeID() uint {
	db.likeSeq++
	return db.likeSeq
}

// Stats 各实体表的当前行数
type Stats struct {
	Users    int
	Posts    int
	Comments int
	Likes    int
}

// Stats 返回各实体表的行数
func (db *MemDB) Stats() Stats {
	var s Stats
	db.View(func() {
		s = Stats{
			Users:    len(db.Users),
			Posts:    len(db.Posts),
			Comments: len(db.Comments),
			Likes:    len(db.Likes),
		}
	})
	return s
}
