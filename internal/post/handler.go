package post

import (
	"fmt"
	"io"
	"net/http"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/auth"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/validate"
)

const maxImageSize = 8 << 20

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) error {
	rows, err := h.svc.Feed(r.Context())
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, FeedResponse{Posts: rows}, http.StatusOK)
	return nil
}

// Create accepts multipart form data: a "content" field and an optional
// "image" file part.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	sess, err := auth.SessionFromCtx(r)
	if err != nil {
		return err
	}
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	content := r.FormValue("content")

	var image *Upload
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		image = &Upload{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	p, err := h.svc.CreatePost(r.Context(), sess, content, image)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusCreated)
	return nil
}

func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) error {
	sess, err := auth.SessionFromCtx(r)
	if err != nil {
		return err
	}
	count, err := h.svc.ToggleLike(r.Context(), sess, r.PathValue("post_id"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, LikeResponse{PostID: r.PathValue("post_id"), LikeCount: count}, http.StatusOK)
	return nil
}

func (h *Handler) Comments(w http.ResponseWriter, r *http.Request) error {
	rows, err := h.svc.Comments(r.Context(), r.PathValue("post_id"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, CommentsResponse{Comments: rows}, http.StatusOK)
	return nil
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) error {
	sess, err := auth.SessionFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[CommentRequest](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	c, err := h.svc.AddComment(r.Context(), sess, r.PathValue("post_id"), in.Content)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, c, http.StatusCreated)
	return nil
}

func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) error {
	sess, err := auth.SessionFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[CommentRequest](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	if err := h.svc.UpdateComment(r.Context(), sess, r.PathValue("comment_id"), in.Content); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"status": "updated"}, http.StatusOK)
	return nil
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) error {
	sess, err := auth.SessionFromCtx(r)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteComment(r.Context(), sess, r.PathValue("comment_id")); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"status": "deleted"}, http.StatusOK)
	return nil
}
