package model

import "time"

// User 社区用户
// 密码按原样保存（演示项目无认证体系），但不返回给前端
type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Location  string    `json:"location"`
	Zone      string    `json:"zone"` // 气候带标签，如 "9b"
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}
