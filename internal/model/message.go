package model

import "time"

// Message is immutable once created: no edits, no deletes. The repository
// deliberately exposes no update or delete operations for it.
type Message struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SenderID   string    `gorm:"type:varchar(36);index:idx_messages_sender;not null" json:"sender_id"`
	ReceiverID string    `gorm:"type:varchar(36);index:idx_messages_receiver;not null" json:"receiver_id"`
	Content    string    `gorm:"type:text" json:"content"`
	Timestamp  time.Time `gorm:"index" json:"timestamp"`
}

func (Message) TableName() string { return "messages" }
