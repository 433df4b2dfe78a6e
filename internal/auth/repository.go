package auth

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/model"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/db"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
)

type Repository interface {
	Create(p *model.Profile) error
	FindByEmail(email string) (*model.Profile, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(p *model.Profile) error {
	return r.store.DB.Create(p).Error
}

func (r *repo) FindByEmail(email string) (*model.Profile, error) {
	var p model.Profile
	if err := r.store.DB.First(&p, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
