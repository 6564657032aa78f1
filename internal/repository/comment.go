package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/pixelgram/pixelgram/internal/model"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	Create(comment *model.Comment) error
	ByPost(postID int) ([]*model.Comment, error)
	ByID(commentID int) (*model.Comment, error)
	UpdateContent(commentID int, content string) error
	Delete(commentID int) error
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	query := `INSERT INTO comments (post_id, user_id, content, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	return r.db.Get(&comment.ID, query, comment.PostID, comment.UserID, comment.Content, comment.CreatedAt)
}

func (r *commentRepository) ByPost(postID int) ([]*model.Comment, error) {
	comments := []*model.Comment{}
	query := `
SELECT c.id, c.post_id, c.user_id, c.content, c.created_at,
       u.username AS username, u.avatar AS user_avatar
FROM comments c
JOIN users u ON u.id = c.user_id
WHERE c.post_id = $1
ORDER BY c.created_at ASC`

	err := r.db.Select(&comments, query, postID)
	return comments, err
}

func (r *commentRepository) ByID(commentID int) (*model.Comment, error) {
	comment := &model.Comment{}
	query := `
SELECT c.id, c.post_id, c.user_id, c.content, c.created_at,
       u.username AS username, u.avatar AS user_avatar
FROM comments c
JOIN users u ON u.id = c.user_id
WHERE c.id = $1`

	err := r.db.Get(comment, query, commentID)
	if err == sql.ErrNoRows {
		return nil, ErrCommentNotFound
	}

	return comment, err
}

func (r *commentRepository) UpdateContent(commentID int, content string) error {
	result, err := r.db.Exec(`UPDATE comments SET content = $1 WHERE id = $2`, content, commentID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCommentNotFound
	}

	return nil
}

func (r *commentRepository) Delete(commentID int) error {
	result, err := r.db.Exec(`DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCommentNotFound
	}

	return nil
}
