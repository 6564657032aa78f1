package model

import "time"

const DefaultAvatar = "default-avatar.png"

type User struct {
	ID           int        `db:"id" json:"userId"`
	Username     string     `db:"username" json:"userName"`
	Email        string     `db:"email" json:"userEmail"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"userFullname"`
	Avatar       string     `db:"avatar" json:"userAvatar"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}
