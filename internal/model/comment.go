package model

import "time"

type Comment struct {
	ID        int       `db:"id" json:"commentId"`
	PostID    int       `db:"post_id" json:"postId"`
	UserID    int       `db:"user_id" json:"userId"`
	Content   string    `db:"content" json:"commentContent"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Joined fields
	Username   string `db:"username" json:"userName"`
	UserAvatar string `db:"user_avatar" json:"userAvatar"`
}
