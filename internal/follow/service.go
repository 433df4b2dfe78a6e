package follow

import (
	"context"
	"fmt"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/auth"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
)

type Service interface {
	Follow(ctx context.Context, sess *auth.Session, userID string) error
	Unfollow(ctx context.Context, sess *auth.Session, userID string) error
	IsFollowing(ctx context.Context, sess *auth.Session, userID string) (bool, error)
	Following(ctx context.Context, sess *auth.Session) ([]FollowedProfile, error)
}

type service struct{ repo Repository }

func NewService(r Repository) Service { return &service{repo: r} }

func (s *service) Follow(ctx context.Context, sess *auth.Session, userID string) error {
	if sess == nil {
		return fmt.Errorf("%w: no active session", httpx.ErrUnauthorized)
	}
	if userID == "" || userID == sess.UserID {
		return fmt.Errorf("%w: cannot follow yourself", httpx.ErrValidation)
	}
	return s.repo.Create(ctx, sess.UserID, userID)
}

func (s *service) Unfollow(ctx context.Context, sess *auth.Session, userID string) error {
	if sess == nil {
		return fmt.Errorf("%w: no active session", httpx.ErrUnauthorized)
	}
	return s.repo.Delete(ctx, sess.UserID, userID)
}

func (s *service) IsFollowing(ctx context.Context, sess *auth.Session, userID string) (bool, error) {
	if sess == nil {
		return false, fmt.Errorf("%w: no active session", httpx.ErrUnauthorized)
	}
	return s.repo.Exists(ctx, sess.UserID, userID)
}

func (s *service) Following(ctx context.Context, sess *auth.Session) ([]FollowedProfile, error) {
	if sess == nil {
		return nil, fmt.Errorf("%w: no active session", httpx.ErrUnauthorized)
	}
	return s.repo.ListFollowing(ctx, sess.UserID)
}
