package post

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/auth"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/model"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
)

// Blobs stores binary attachments and returns a publicly resolvable URL.
type Blobs interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Upload is an incoming attachment.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

type Service interface {
	CreatePost(ctx context.Context, sess *auth.Session, content string, image *Upload) (*model.Post, error)
	Feed(ctx context.Context) ([]PostRow, error)

	// ToggleLike flips the user's like and returns the authoritative count
	// re-read from the store after the toggle, never a local guess.
	ToggleLike(ctx context.Context, sess *auth.Session, postID string) (int64, error)

	AddComment(ctx context.Context, sess *auth.Session, postID, content string) (*model.Comment, error)
	UpdateComment(ctx context.Context, sess *auth.Session, commentID, content string) error
	DeleteComment(ctx context.Context, sess *auth.Session, commentID string) error
	Comments(ctx context.Context, postID string) ([]CommentRow, error)
}

type service struct {
	repo  Repository
	blobs Blobs
	rdb   *redis.Client
}

func NewService(repo Repository, blobs Blobs, rdb *redis.Client) Service {
	return &service{repo: repo, blobs: blobs, rdb: rdb}
}

func (s *service) CreatePost(ctx context.Context, sess *auth.Session, content string, image *Upload) (*model.Post, error) {
	if sess == nil {
		return nil, fmt.Errorf("%w: no active session", httpx.ErrUnauthorized)
	}
	if strings.TrimSpace(content) == "" && image == nil {
		return nil, fmt.Errorf("%w: empty post", httpx.ErrValidation)
	}

	var imageURL string
	if image != nil {
		key := fmt.Sprintf("post_images/%s-%d-%s", sess.UserID, time.Now().UnixMilli(), image.Name)
		url, err := s.blobs.Upload(ctx, key, image.ContentType, image.Data)
		if err != nil {
			return nil, fmt.Errorf("image upload: %w", err)
		}
		imageURL = url
	}

	p := &model.Post{
		ID:        uuid.NewString(),
		UserID:    sess.UserID,
		Content:   content,
		ImageURL:  imageURL,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreatePost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Feed(ctx context.Context) ([]PostRow, error) {
	return s.repo.ListPosts(ctx)
}

func (s *service) ToggleLike(ctx context.Context, sess *auth.Session, postID string) (int64, error) {
	if sess == nil {
		return 0, fmt.Errorf("%w: no active session", httpx.ErrUnauthorized)
	}
	if _, err := s.repo.GetPost(ctx, postID); err != nil {
		return 0, err
	}

	existing, err := s.repo.LikesFor(ctx, postID, sess.UserID)
	if err != nil {
		return 0, fmt.Errorf("check like: %w", err)
	}
	if len(existing) > 0 {
		if err := s.repo.DeleteLikes(ctx, postID, sess.UserID); err != nil {
			return 0, fmt.Errorf("unlike: %w", err)
		}
	} else {
		l := &model.Like{
			ID:        uuid.NewString(),
			PostID:    postID,
			UserID:    sess.UserID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.repo.CreateLike(ctx, l); err != nil {
			return 0, fmt.Errorf("like: %w", err)
		}
	}

	count, err := s.repo.CountLikes(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	if s.rdb != nil {
		_ = s.rdb.Set(ctx, "likes:"+postID, strconv.FormatInt(count, 10), 24*time.Hour).Err()
	}
	return count, nil
}

func (s *service) AddComment(ctx context.Context, sess *auth.Session, postID, content string) (*model.Comment, error) {
	if sess == nil {
		return nil, fmt.Errorf("%w: no active session", httpx.ErrUnauthorized)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: empty comment", httpx.ErrValidation)
	}
	if _, err := s.repo.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	c := &model.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    sess.UserID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) UpdateComment(ctx context.Context, sess *auth.Session, commentID, content string) error {
	if sess == nil {
		return fmt.Errorf("%w: no active session", httpx.ErrUnauthorized)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: empty comment", httpx.ErrValidation)
	}
	c, err := s.repo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if c.UserID != sess.UserID {
		return fmt.Errorf("%w: only the author can edit a comment", httpx.ErrForbidden)
	}
	return s.repo.UpdateComment(ctx, commentID, content)
}

// DeleteComment allows the comment author or the owning post's author.
func (s *service) DeleteComment(ctx context.Context, sess *auth.Session, commentID string) error {
	if sess == nil {
		return fmt.Errorf("%w: no active session", httpx.ErrUnauthorized)
	}
	c, err := s.repo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if c.UserID != sess.UserID {
		p, err := s.repo.GetPost(ctx, c.PostID)
		if err != nil {
			return err
		}
		if p.UserID != sess.UserID {
			return fmt.Errorf("%w: not the comment or post author", httpx.ErrForbidden)
		}
	}
	return s.repo.DeleteComment(ctx, commentID)
}

func (s *service) Comments(ctx context.Context, postID string) ([]CommentRow, error) {
	return s.repo.ListComments(ctx, postID)
}
