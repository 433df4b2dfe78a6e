package profile

import (
	"fmt"
	"io"
	"net/http"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/auth"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
)

const maxAvatarSize = 4 << 20

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	p, err := h.svc.Get(r.Context(), r.PathValue("user_id"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) error {
	sess, err := auth.SessionFromCtx(r)
	if err != nil {
		return err
	}
	p, err := h.svc.Get(r.Context(), sess.UserID)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	sess, err := auth.SessionFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[UpdateRequest](r)
	if err != nil {
		return err
	}
	if err := h.svc.Update(r.Context(), sess, in); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"status": "updated"}, http.StatusOK)
	return nil
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) error {
	out, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"users": out}, http.StatusOK)
	return nil
}

func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) error {
	sess, err := auth.SessionFromCtx(r)
	if err != nil {
		return err
	}
	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		return fmt.Errorf("%w: avatar file is required", httpx.ErrValidation)
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxAvatarSize))
	if err != nil {
		return fmt.Errorf("read avatar: %w", err)
	}
	url, err := h.svc.UploadAvatar(r.Context(), sess, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, AvatarResponse{ProfilePic: url}, http.StatusOK)
	return nil
}
