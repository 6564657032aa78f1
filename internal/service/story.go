package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixelgram/pixelgram/internal/media"
	"github.com/pixelgram/pixelgram/internal/model"
	"github.com/pixelgram/pixelgram/internal/repository"
)

var ErrNotStoryOwner = errors.New("not the story owner")

// storyImageType is the image-type prefix for story uploads; stories carry
// a single image.
const storyImageType = "story"

type StoryService struct {
	stories repository.StoryRepository
	media   *media.Store
	ttl     time.Duration
}

func NewStoryService(stories repository.StoryRepository, mediaStore *media.Store, ttl time.Duration) *StoryService {
	return &StoryService{
		stories: stories,
		media:   mediaStore,
		ttl:     ttl,
	}
}

func (s *StoryService) Active() ([]*model.Story, error) {
	return s.stories.Active(time.Now())
}

func (s *StoryService) ByUser(userID int) ([]*model.Story, error) {
	return s.stories.ByUser(userID, time.Now())
}

// Create inserts the row first to obtain the story id, stores the image
// under that id, then records the resulting URL. If the upload fails the
// row is removed again so no imageless story survives.
func (s *StoryService) Create(userID int, image []byte, imageName string) (*model.Story, error) {
	if len(image) == 0 {
		return nil, ErrImageRequired
	}

	now := time.Now()
	story := &model.Story{
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	err := s.stories.Create(story)
	if err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	imageURL, err := s.media.SaveStoryImage(image, story.ID, storyImageType, imageName)
	if err != nil {
		if delErr := s.stories.Delete(story.ID); delErr != nil {
			slog.Error("failed to remove story after upload failure", "story_id", story.ID, "error", delErr)
		}
		return nil, fmt.Errorf("failed to store story image: %w", err)
	}

	err = s.stories.UpdateImage(story.ID, imageURL)
	if err != nil {
		s.media.Delete(imageURL)
		if delErr := s.stories.Delete(story.ID); delErr != nil {
			slog.Error("failed to remove story after image update failure", "story_id", story.ID, "error", delErr)
		}
		return nil, fmt.Errorf("failed to record story image: %w", err)
	}

	story.Image = imageURL
	slog.Info("story created", "story_id", story.ID, "user_id", userID)
	return story, nil
}

func (s *StoryService) Delete(storyID, callerID int) error {
	story, err := s.stories.ByID(storyID)
	if err != nil {
		return err
	}

	if story.UserID != callerID {
		return ErrNotStoryOwner
	}

	err = s.stories.Delete(storyID)
	if err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}

	if story.Image != "" && !s.media.Delete(story.Image) {
		slog.Warn("story image not removed, may be orphaned", "story_id", storyID, "path", story.Image)
	}

	return nil
}

// DeleteExpired purges stories past their expiry together with their
// image files. Intended for a periodic maintenance call.
func (s *StoryService) DeleteExpired() (int, error) {
	expired, err := s.stories.Expired(time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to list expired stories: %w", err)
	}

	deleted := 0
	for _, story := range expired {
		err = s.stories.Delete(story.ID)
		if err != nil {
			slog.Warn("failed to delete expired story", "story_id", story.ID, "error", err)
			continue
		}
		deleted++

		if story.Image != "" {
			s.media.Delete(story.Image)
		}
	}

	if deleted > 0 {
		slog.Info("expired stories purged", "count", deleted)
	}
	return deleted, nil
}
