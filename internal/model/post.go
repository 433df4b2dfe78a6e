package model

import "time"

// Post carries no stored like/comment counters; both are derived aggregates
// computed at read time.
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"type:varchar(36);index:idx_posts_user;not null" json:"user_id"`
	Content   string    `gorm:"type:text" json:"content"`
	ImageURL  string    `gorm:"size:512" json:"image_url"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Post) TableName() string { return "posts" }

// Like rows are unique per (post, user). The toggle still deletes by filter
// so rows created before the index existed cannot wedge it.
type Like struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PostID    string    `gorm:"type:varchar(36);index:idx_likes_pair,unique;not null" json:"post_id"`
	UserID    string    `gorm:"type:varchar(36);index:idx_likes_pair,unique;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string { return "likes" }

type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PostID    string    `gorm:"type:varchar(36);index:idx_comments_post;not null" json:"post_id"`
	UserID    string    `gorm:"type:varchar(36);not null" json:"user_id"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Comment) TableName() string { return "comments" }
