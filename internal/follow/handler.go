package follow

import (
	"net/http"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/auth"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) error {
	sess, err := auth.SessionFromCtx(r)
	if err != nil {
		return err
	}
	if err := h.svc.Follow(r.Context(), sess, r.PathValue("user_id")); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"status": "followed"}, http.StatusOK)
	return nil
}

func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) error {
	sess, err := auth.SessionFromCtx(r)
	if err != nil {
		return err
	}
	if err := h.svc.Unfollow(r.Context(), sess, r.PathValue("user_id")); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"status": "unfollowed"}, http.StatusOK)
	return nil
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) error {
	sess, err := auth.SessionFromCtx(r)
	if err != nil {
		return err
	}
	following, err := h.svc.IsFollowing(r.Context(), sess, r.PathValue("user_id"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]bool{"following": following}, http.StatusOK)
	return nil
}

func (h *Handler) Following(w http.ResponseWriter, r *http.Request) error {
	sess, err := auth.SessionFromCtx(r)
	if err != nil {
		return err
	}
	out, err := h.svc.Following(r.Context(), sess)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"following": out}, http.StatusOK)
	return nil
}
