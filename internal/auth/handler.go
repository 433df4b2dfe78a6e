package auth

import (
	"net/http"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) error {
	in, err := httpx.Decode[RegisterRequest](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	token, err := h.svc.Register(in.Email, in.Password, in.FullName, in.Role, in.Organization)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, TokenResponse{Token: token}, http.StatusCreated)
	return nil
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	in, err := httpx.Decode[LoginRequest](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	token, err := h.svc.Login(in.Email, in.Password)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, TokenResponse{Token: token}, http.StatusOK)
	return nil
}
