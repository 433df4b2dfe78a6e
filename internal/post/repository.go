package post

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/model"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/db"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
)

// PostRow is a post joined with its author identity and the derived
// engagement counts.
type PostRow struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	AuthorRole   string    `json:"author_role"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
}

// CommentRow is a comment joined with its author identity.
type CommentRow struct {
	ID           string    `json:"id"`
	PostID       string    `json:"post_id"`
	UserID       string    `json:"user_id"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
}

type Repository interface {
	CreatePost(ctx context.Context, p *model.Post) error
	GetPost(ctx context.Context, id string) (*model.Post, error)
	ListPosts(ctx context.Context) ([]PostRow, error)

	LikesFor(ctx context.Context, postID, userID string) ([]model.Like, error)
	CreateLike(ctx context.Context, l *model.Like) error
	DeleteLikes(ctx context.Context, postID, userID string) error
	CountLikes(ctx context.Context, postID string) (int64, error)

	CreateComment(ctx context.Context, c *model.Comment) error
	GetComment(ctx context.Context, id string) (*model.Comment, error)
	UpdateComment(ctx context.Context, id, content string) error
	DeleteComment(ctx context.Context, id string) error
	ListComments(ctx context.Context, postID string) ([]CommentRow, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) CreatePost(ctx context.Context, p *model.Post) error {
	return r.store.DB.WithContext(ctx).Create(p).Error
}

func (r *repo) GetPost(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	if err := r.store.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repo) ListPosts(ctx context.Context) ([]PostRow, error) {
	var rows []PostRow
	err := r.store.DB.WithContext(ctx).
		Table("posts").
		Select(`posts.id, posts.user_id, posts.content, posts.image_url, posts.created_at,
			p.full_name AS author_name, p.profile_pic AS author_avatar, p.role AS author_role,
			(SELECT COUNT(*) FROM likes l WHERE l.post_id = posts.id) AS like_count,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = posts.id) AS comment_count`).
		Joins("LEFT JOIN profiles p ON p.id = posts.user_id").
		Order("posts.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repo) LikesFor(ctx context.Context, postID, userID string) ([]model.Like, error) {
	var out []model.Like
	err := r.store.DB.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Find(&out).Error
	return out, err
}

func (r *repo) CreateLike(ctx context.Context, l *model.Like) error {
	return r.store.DB.WithContext(ctx).Create(l).Error
}

// DeleteLikes removes every like the user holds on the post, not a single
// row by id, so pre-index duplicates clear in one toggle.
func (r *repo) DeleteLikes(ctx context.Context, postID, userID string) error {
	return r.store.DB.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.Like{}).Error
}

func (r *repo) CountLikes(ctx context.Context, postID string) (int64, error) {
	var n int64
	err := r.store.DB.WithContext(ctx).
		Model(&model.Like{}).
		Where("post_id = ?", postID).
		Count(&n).Error
	return n, err
}

func (r *repo) CreateComment(ctx context.Context, c *model.Comment) error {
	return r.store.DB.WithContext(ctx).Create(c).Error
}

func (r *repo) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	if err := r.store.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repo) UpdateComment(ctx context.Context, id, content string) error {
	return r.store.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", id).
		Update("content", content).Error
}

func (r *repo) DeleteComment(ctx context.Context, id string) error {
	return r.store.DB.WithContext(ctx).Delete(&model.Comment{}, "id = ?", id).Error
}

func (r *repo) ListComments(ctx context.Context, postID string) ([]CommentRow, error) {
	var rows []CommentRow
	err := r.store.DB.WithContext(ctx).
		Table("comments").
		Select(`comments.id, comments.post_id, comments.user_id, comments.content, comments.created_at,
			p.full_name AS author_name, p.profile_pic AS author_avatar`).
		Joins("LEFT JOIN profiles p ON p.id = comments.user_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC").
		Scan(&rows).Error
	return rows, err
}
