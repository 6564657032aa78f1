package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pixelgram/pixelgram/internal/model"
	"github.com/pixelgram/pixelgram/internal/repository"
	"github.com/pixelgram/pixelgram/internal/validation"
)

var (
	ErrEmptyComment    = errors.New("comment content is required")
	ErrNotCommentOwner = errors.New("not the comment owner")
)

type CommentService struct {
	comments repository.CommentRepository
}

func NewCommentService(comments repository.CommentRepository) *CommentService {
	return &CommentService{comments: comments}
}

func (s *CommentService) ByPost(postID int) ([]*model.Comment, error) {
	return s.comments.ByPost(postID)
}

func (s *CommentService) Create(postID, userID int, content string) (*model.Comment, error) {
	content = normalizeContent(content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	comment := &model.Comment{
		PostID:    postID,
		UserID:    userID,
		Content:   validation.SanitizeContent(content),
		CreatedAt: time.Now(),
	}

	err := s.comments.Create(comment)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	slog.Info("comment created", "comment_id", comment.ID, "post_id", postID, "user_id", userID)
	return comment, nil
}

func (s *CommentService) Update(commentID, callerID int, content string) error {
	content = normalizeContent(content)
	if content == "" {
		return ErrEmptyComment
	}

	comment, err := s.comments.ByID(commentID)
	if err != nil {
		return err
	}

	if comment.UserID != callerID {
		return ErrNotCommentOwner
	}

	return s.comments.UpdateContent(commentID, validation.SanitizeContent(content))
}

func (s *CommentService) Delete(commentID, callerID int) error {
	comment, err := s.comments.ByID(commentID)
	if err != nil {
		return err
	}

	if comment.UserID != callerID {
		return ErrNotCommentOwner
	}

	return s.comments.Delete(commentID)
}

// normalizeContent trims whitespace and strips one pair of wrapping
// quotes, which clients sending a raw JSON string body produce.
func normalizeContent(content string) string {
	content = strings.TrimSpace(content)
	if len(content) >= 2 && strings.HasPrefix(content, `"`) && strings.HasSuffix(content, `"`) {
		content = content[1 : len(content)-1]
	}
	return content
}
