package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/auth"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/model"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
)

// Blobs stores avatar images and returns a publicly resolvable URL.
type Blobs interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type Service interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Update(ctx context.Context, sess *auth.Session, in UpdateRequest) error
	Search(ctx context.Context, query string) ([]SearchResult, error)
	UploadAvatar(ctx context.Context, sess *auth.Session, name, contentType string, data []byte) (string, error)
}

type service struct {
	repo  Repository
	blobs Blobs
}

func NewService(repo Repository, blobs Blobs) Service {
	return &service{repo: repo, blobs: blobs}
}

func (s *service) Get(ctx context.Context, userID string) (*model.Profile, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) Update(ctx context.Context, sess *auth.Session, in UpdateRequest) error {
	if sess == nil {
		return fmt.Errorf("%w: no active session", httpx.ErrUnauthorized)
	}
	fields := map[string]any{}
	if in.FullName != nil {
		if strings.TrimSpace(*in.FullName) == "" {
			return fmt.Errorf("%w: full name cannot be blank", httpx.ErrValidation)
		}
		fields["full_name"] = *in.FullName
	}
	if in.Role != nil {
		fields["role"] = *in.Role
	}
	if in.Organization != nil {
		fields["organization"] = *in.Organization
	}
	if in.Bio != nil {
		fields["bio"] = *in.Bio
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: nothing to update", httpx.ErrValidation)
	}
	return s.repo.Update(ctx, sess.UserID, fields)
}

// Search returns an empty result for a blank query without touching the
// store.
func (s *service) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []SearchResult{}, nil
	}
	return s.repo.Search(ctx, strings.TrimSpace(query))
}

func (s *service) UploadAvatar(ctx context.Context, sess *auth.Session, name, contentType string, data []byte) (string, error) {
	if sess == nil {
		return "", fmt.Errorf("%w: no active session", httpx.ErrUnauthorized)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", httpx.ErrValidation)
	}
	key := fmt.Sprintf("profile_pictures/%s-%d-%s", sess.UserID, time.Now().UnixMilli(), name)
	url, err := s.blobs.Upload(ctx, key, contentType, data)
	if err != nil {
		return "", fmt.Errorf("avatar upload: %w", err)
	}
	if err := s.repo.Update(ctx, sess.UserID, map[string]any{"profile_pic": url}); err != nil {
		return "", fmt.Errorf("profile update: %w", err)
	}
	return url, nil
}
