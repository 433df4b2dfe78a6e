package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/model"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
)

type Service interface {
	Register(email, password, fullName, role, organization string) (string, error)
	Login(email, password string) (string, error)
}

type service struct {
	repo   Repository
	secret string
}

func NewService(repo Repository, secret string) Service {
	return &service{repo: repo, secret: secret}
}

func (s *service) Register(email, password, fullName, role, organization string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: email and password are required", httpx.ErrValidation)
	}
	if _, err := s.repo.FindByEmail(email); err == nil {
		return "", fmt.Errorf("%w: email already registered", httpx.ErrValidation)
	} else if !errors.Is(err, httpx.ErrNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	p := &model.Profile{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Organization: organization,
	}
	if err := s.repo.Create(p); err != nil {
		return "", err
	}
	return NewToken(s.secret, Session{UserID: p.ID, Email: p.Email})
}

func (s *service) Login(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	p, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return "", httpx.ErrUnauthorized
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return "", httpx.ErrUnauthorized
	}
	return NewToken(s.secret, Session{UserID: p.ID, Email: p.Email})
}
