package chat

import (
	"time"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/model"
)

type SendRequest struct {
	Content string `json:"content" validate:"required"`
}

type MessageData struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

func toMessageData(m model.Message) MessageData {
	return MessageData{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Timestamp:  m.Timestamp,
	}
}

type HistoryResponse struct {
	Messages []MessageData `json:"messages"`
}

type ConversationsResponse struct {
	Conversations []ConversationSummary `json:"conversations"`
}
