package model

import "time"

type Profile struct {
	ID           string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FullName     string `gorm:"size:200" json:"full_name"`
	Email        string `gorm:"size:255;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"size:100" json:"-"`
	Role         string `gorm:"size:64" json:"role"`
	Organization string `gorm:"size:200" json:"organization"`
	Bio          string `gorm:"type:text" json:"bio"`
	ProfilePic   string `gorm:"size:512" json:"profile_pic"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
