package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pixelgram/pixelgram/internal/media"
	"github.com/pixelgram/pixelgram/internal/model"
	"github.com/pixelgram/pixelgram/internal/repository"
	"github.com/pixelgram/pixelgram/internal/validation"
)

var (
	ErrImageRequired = errors.New("image is required")
	ErrNotPostOwner  = errors.New("not the post owner")
)

type PostService struct {
	posts repository.PostRepository
	media *media.Store
}

func NewPostService(posts repository.PostRepository, mediaStore *media.Store) *PostService {
	return &PostService{
		posts: posts,
		media: mediaStore,
	}
}

func (s *PostService) Feed(callerID int) ([]*model.Post, error) {
	return s.posts.Feed(callerID)
}

func (s *PostService) ByUser(userID, callerID int) ([]*model.Post, error) {
	return s.posts.ByUser(userID, callerID)
}

func (s *PostService) ByID(postID, callerID int) (*model.Post, error) {
	return s.posts.ByID(postID, callerID)
}

// Create stores the image first, then the row. A failed insert cleans the
// stored file back up so no orphan survives the request.
func (s *PostService) Create(userID int, image []byte, imageName, caption, location string) (*model.Post, error) {
	if len(image) == 0 {
		return nil, ErrImageRequired
	}

	imageURL, err := s.media.SavePostImage(image, imageName)
	if err != nil {
		return nil, fmt.Errorf("failed to store post image: %w", err)
	}

	post := &model.Post{
		UserID:    userID,
		Caption:   validation.SanitizeContent(strings.TrimSpace(caption)),
		Location:  validation.SanitizeContent(strings.TrimSpace(location)),
		Image:     imageURL,
		CreatedAt: time.Now(),
	}

	err = s.posts.Create(post)
	if err != nil {
		s.media.Delete(imageURL)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	slog.Info("post created", "post_id", post.ID, "user_id", userID)
	return post, nil
}

// Delete removes the row, then the image file best-effort. An orphaned
// file never aborts the delete.
func (s *PostService) Delete(postID, callerID int) error {
	post, err := s.posts.ByID(postID, callerID)
	if err != nil {
		return err
	}

	if post.UserID != callerID {
		return ErrNotPostOwner
	}

	err = s.posts.Delete(postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if !s.media.Delete(post.Image) {
		slog.Warn("post image not removed, may be orphaned", "post_id", postID, "path", post.Image)
	}

	slog.Info("post deleted", "post_id", postID, "user_id", callerID)
	return nil
}

func (s *PostService) Like(postID, userID int) error {
	return s.posts.AddLike(postID, userID)
}

func (s *PostService) Unlike(postID, userID int) error {
	return s.posts.RemoveLike(postID, userID)
}
