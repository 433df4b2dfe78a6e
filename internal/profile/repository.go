package profile

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/model"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/db"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
)

// SearchResult is the public subset of a profile returned by user search.
type SearchResult struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	ProfilePic   string `json:"profile_pic"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
}

type Repository interface {
	Get(ctx context.Context, id string) (*model.Profile, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Get(ctx context.Context, id string) (*model.Profile, error) {
	var p model.Profile
	if err := r.store.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repo) Update(ctx context.Context, id string, fields map[string]any) error {
	return r.store.DB.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repo) Search(ctx context.Context, query string) ([]SearchResult, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var out []SearchResult
	err := r.store.DB.WithContext(ctx).
		Table("profiles").
		Select("id, full_name, profile_pic, role, organization").
		Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Scan(&out).Error
	return out, err
}
