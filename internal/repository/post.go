package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/pixelgram/pixelgram/internal/model"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotLiked     = errors.New("post not liked")
)

type PostRepository interface {
	Create(post *model.Post) error
	Feed(callerID int) ([]*model.Post, error)
	ByUser(userID, callerID int) ([]*model.Post, error)
	ByID(postID, callerID int) (*model.Post, error)
	Delete(postID int) error
	AddLike(postID, userID int) error
	RemoveLike(postID, userID int) error
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// selectPost joins author info, like counts, and whether the caller has
// liked each post. $1 is the caller's user id.
const selectPost = `
SELECT p.id, p.user_id, p.caption, p.location, p.image, p.created_at,
       u.username AS username, u.avatar AS user_avatar,
       (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS like_count,
       EXISTS(SELECT 1 FROM post_likes pl WHERE pl.post_id = p.id AND pl.user_id = $1) AS liked_by_me,
       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
FROM posts p
JOIN users u ON u.id = p.user_id`

func (r *postRepository) Create(post *model.Post) error {
	query := `INSERT INTO posts (user_id, caption, location, image, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	return r.db.Get(&post.ID, query, post.UserID, post.Caption, post.Location, post.Image, post.CreatedAt)
}

func (r *postRepository) Feed(callerID int) ([]*model.Post, error) {
	posts := []*model.Post{}
	err := r.db.Select(&posts, selectPost+` ORDER BY p.created_at DESC`, callerID)
	return posts, err
}

func (r *postRepository) ByUser(userID, callerID int) ([]*model.Post, error) {
	posts := []*model.Post{}
	err := r.db.Select(&posts, selectPost+` WHERE p.user_id = $2 ORDER BY p.created_at DESC`, callerID, userID)
	return posts, err
}

func (r *postRepository) ByID(postID, callerID int) (*model.Post, error) {
	post := &model.Post{}
	err := r.db.Get(post, selectPost+` WHERE p.id = $2`, callerID, postID)
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}

	return post, err
}

func (r *postRepository) Delete(postID int) error {
	result, err := r.db.Exec(`DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (r *postRepository) AddLike(postID, userID int) error {
	_, err := r.db.Exec(`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`, postID, userID)
	if err != nil {
		if isUniqueViolation(err.Error()) {
			return ErrAlreadyLiked
		}
		return err
	}

	return nil
}

func (r *postRepository) RemoveLike(postID, userID int) error {
	result, err := r.db.Exec(`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotLiked
	}

	return nil
}
