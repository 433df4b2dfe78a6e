package model

import "time"

// Follow is one edge of the follow graph. The pair index keeps a repeated
// follow from inserting a second edge.
type Follow struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FollowerID  string    `gorm:"type:varchar(36);index:idx_follows_pair,unique;index:idx_follows_follower;not null" json:"follower_id"`
	FollowingID string    `gorm:"type:varchar(36);index:idx_follows_pair,unique;not null" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }
