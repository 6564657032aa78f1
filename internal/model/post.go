package model

import "time"

type Post struct {
	ID        int       `db:"id" json:"postId"`
	UserID    int       `db:"user_id" json:"userId"`
	Caption   string    `db:"caption" json:"postCaption"`
	Location  string    `db:"location" json:"postLocation"`
	Image     string    `db:"image" json:"postImage"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Joined fields for feed views (not columns of posts)
	Username     string `db:"username" json:"userName"`
	UserAvatar   string `db:"user_avatar" json:"userAvatar"`
	LikeCount    int    `db:"like_count" json:"likeCount"`
	LikedByMe    bool   `db:"liked_by_me" json:"likedByMe"`
	CommentCount int    `db:"comment_count" json:"commentCount"`
}
