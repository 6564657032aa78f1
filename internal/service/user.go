package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pixelgram/pixelgram/internal/media"
	"github.com/pixelgram/pixelgram/internal/model"
	"github.com/pixelgram/pixelgram/internal/repository"
	"github.com/pixelgram/pixelgram/internal/validation"
)

var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidInput          = errors.New("invalid input")
)

type UserService struct {
	users repository.UserRepository
	media *media.Store
}

func NewUserService(users repository.UserRepository, mediaStore *media.Store) *UserService {
	return &UserService{
		users: users,
		media: mediaStore,
	}
}

func (s *UserService) SignUp(username, email, password, fullName string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	err = validation.ValidateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedBytes),
		FullName:     strings.TrimSpace(fullName),
		Avatar:       model.DefaultAvatar,
		CreatedAt:    time.Now(),
	}

	err = s.users.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user signed up", "user_id", user.ID, "username", user.Username)

	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) Login(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)

	// Hash never leaves the service
	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) ByID(userID int) (*model.User, error) {
	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) ByUsername(username string) (*model.User, error) {
	user, err := s.users.ByUsername(username)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) Search(query string) ([]*model.User, error) {
	if strings.TrimSpace(query) == "" {
		return []*model.User{}, nil
	}

	users, err := s.users.Search(query)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	for _, user := range users {
		user.PasswordHash = ""
	}
	return users, nil
}

// UpdateProfile applies partial updates and, when avatar bytes are given,
// stores the new image and removes the previous file best-effort. The old
// file being left behind is logged, never fatal.
func (s *UserService) UpdateProfile(userID int, username, email, fullName string, avatar []byte, avatarName string) (*model.User, error) {
	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}

	oldAvatar := user.Avatar

	if len(avatar) > 0 {
		avatarURL, err := s.media.SaveProfileImage(avatar, avatarName)
		if err != nil {
			return nil, fmt.Errorf("failed to store avatar: %w", err)
		}
		user.Avatar = avatarURL
	}

	if username = strings.TrimSpace(username); username != "" && username != user.Username {
		err = validation.ValidateUsername(username)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		user.Username = username
	}
	if email = strings.TrimSpace(strings.ToLower(email)); email != "" && email != user.Email {
		err = validation.ValidateEmail(email)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		user.Email = email
	}
	if fullName = strings.TrimSpace(fullName); fullName != "" {
		user.FullName = fullName
	}

	now := time.Now()
	user.UpdatedAt = &now

	err = s.users.Update(user)
	if err != nil {
		if user.Avatar != oldAvatar {
			// Roll back the freshly stored file; the record kept the old one.
			s.media.Delete(user.Avatar)
		}
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameAlreadyExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	// Replaced avatar file is orphaned now; drop it best-effort.
	if user.Avatar != oldAvatar && strings.HasPrefix(oldAvatar, "/") {
		if !s.media.Delete(oldAvatar) {
			slog.Warn("failed to delete replaced avatar", "user_id", userID, "path", oldAvatar)
		}
	}

	user.PasswordHash = ""
	return user, nil
}
