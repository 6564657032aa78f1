package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pixelgram/pixelgram/internal/model"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id int) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	ByUsername(username string) (*model.User, error)
	Search(query string) ([]*model.User, error)
	Update(user *model.User) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	// RETURNING works on both SQLite and PostgreSQL; LastInsertId does not.
	query := `INSERT INTO users (username, email, password_hash, full_name, avatar, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	err := r.db.Get(&user.ID, query, user.Username, user.Email, user.PasswordHash, user.FullName, user.Avatar, user.CreatedAt)
	if err != nil {
		// Works for both SQLite and PostgreSQL error strings
		errStr := err.Error()
		if strings.Contains(errStr, "username") && isUniqueViolation(errStr) {
			return ErrDuplicateUsername
		}
		if isUniqueViolation(errStr) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(id int) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.Get(user, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByUsername(username string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE username = $1`

	err := r.db.Get(user, query, username)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) Search(query string) ([]*model.User, error) {
	users := []*model.User{}
	q := `SELECT * FROM users WHERE username LIKE $1 OR full_name LIKE $1 ORDER BY username LIMIT 20`

	err := r.db.Select(&users, q, "%"+query+"%")
	return users, err
}

func (r *userRepository) Update(user *model.User) error {
	query := `UPDATE users SET username = $1, email = $2, full_name = $3, avatar = $4, updated_at = $5 WHERE id = $6`

	result, err := r.db.Exec(query, user.Username, user.Email, user.FullName, user.Avatar, user.UpdatedAt, user.ID)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "username") && isUniqueViolation(errStr) {
			return ErrDuplicateUsername
		}
		if isUniqueViolation(errStr) {
			return ErrDuplicateEmail
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func isUniqueViolation(errStr string) bool {
	return strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value")
}
