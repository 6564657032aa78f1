package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pixelgram/pixelgram/internal/model"
)

var ErrStoryNotFound = errors.New("story not found")

type StoryRepository interface {
	Create(story *model.Story) error
	UpdateImage(storyID int, image string) error
	Active(now time.Time) ([]*model.Story, error)
	ByUser(userID int, now time.Time) ([]*model.Story, error)
	ByID(storyID int) (*model.Story, error)
	Delete(storyID int) error
	Expired(now time.Time) ([]*model.Story, error)
}

type storyRepository struct {
	db *sqlx.DB
}

func NewStoryRepository(db *sqlx.DB) StoryRepository {
	return &storyRepository{db: db}
}

const selectStory = `
SELECT s.id, s.user_id, s.image, s.created_at, s.expires_at,
       u.username AS username, u.avatar AS user_avatar
FROM stories s
JOIN users u ON u.id = s.user_id`

func (r *storyRepository) Create(story *model.Story) error {
	query := `INSERT INTO stories (user_id, image, created_at, expires_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	return r.db.Get(&story.ID, query, story.UserID, story.Image, story.CreatedAt, story.ExpiresAt)
}

func (r *storyRepository) UpdateImage(storyID int, image string) error {
	result, err := r.db.Exec(`UPDATE stories SET image = $1 WHERE id = $2`, image, storyID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrStoryNotFound
	}

	return nil
}

func (r *storyRepository) Active(now time.Time) ([]*model.Story, error) {
	stories := []*model.Story{}
	err := r.db.Select(&stories, selectStory+` WHERE s.expires_at > $1 ORDER BY s.created_at DESC`, now)
	return stories, err
}

func (r *storyRepository) ByUser(userID int, now time.Time) ([]*model.Story, error) {
	stories := []*model.Story{}
	err := r.db.Select(&stories, selectStory+` WHERE s.user_id = $1 AND s.expires_at > $2 ORDER BY s.created_at ASC`, userID, now)
	return stories, err
}

func (r *storyRepository) ByID(storyID int) (*model.Story, error) {
	story := &model.Story{}
	err := r.db.Get(story, selectStory+` WHERE s.id = $1`, storyID)
	if err == sql.ErrNoRows {
		return nil, ErrStoryNotFound
	}

	return story, err
}

func (r *storyRepository) Delete(storyID int) error {
	result, err := r.db.Exec(`DELETE FROM stories WHERE id = $1`, storyID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrStoryNotFound
	}

	return nil
}

func (r *storyRepository) Expired(now time.Time) ([]*model.Story, error) {
	stories := []*model.Story{}
	err := r.db.Select(&stories, selectStory+` WHERE s.expires_at <= $1`, now)
	return stories, err
}
