package model

import "time"

type Story struct {
	ID        int       `db:"id" json:"storyId"`
	UserID    int       `db:"user_id" json:"userId"`
	Image     string    `db:"image" json:"storyImage"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`

	// Joined fields
	Username   string `db:"username" json:"userName"`
	UserAvatar string `db:"user_avatar" json:"userAvatar"`
}
