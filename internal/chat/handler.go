package chat

import (
	"net/http"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/auth"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Conversations(w http.ResponseWriter, r *http.Request) error {
	sess, err := auth.SessionFromCtx(r)
	if err != nil {
		return err
	}
	out, err := h.svc.Conversations(r.Context(), sess)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, ConversationsResponse{Conversations: out}, http.StatusOK)
	return nil
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) error {
	sess, err := auth.SessionFromCtx(r)
	if err != nil {
		return err
	}
	partnerID := r.PathValue("partner_id")
	msgs, err := h.svc.History(r.Context(), sess, partnerID)
	if err != nil {
		return err
	}
	data := make([]MessageData, 0, len(msgs))
	for _, m := range msgs {
		data = append(data, toMessageData(m))
	}
	httpx.WriteJSON(w, HistoryResponse{Messages: data}, http.StatusOK)
	return nil
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) error {
	sess, err := auth.SessionFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[SendRequest](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	m, err := h.svc.Send(r.Context(), sess, r.PathValue("partner_id"), in.Content)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, toMessageData(*m), http.StatusCreated)
	return nil
}
