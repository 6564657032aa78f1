// Package media places uploaded image bytes on local disk under one root
// directory per category and hands back a stable relative URL such as
// /profile_images/<name> or /story_images/<storyID>/<name>. The same URL
// is later reversed to an absolute path for deletion. Domain records store
// the URL verbatim as an opaque string; the hosting layer serves each root
// read-only under the matching URL prefix.
package media

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyUpload     = errors.New("upload payload is empty")
	ErrInvalidFileName = errors.New("invalid file name")
	ErrDirectoryCreate = errors.New("failed to create upload directory")
)

// Category identifies a class of uploaded media. Each category maps 1:1 to
// a configured root directory and a URL prefix "/<category>_images/".
type Category string

const (
	CategoryProfile Category = "profile"
	CategoryStory   Category = "story"
	CategoryPost    Category = "post"
)

func (c Category) urlPrefix() string {
	return "/" + string(c) + "_images/"
}

// Config supplies one filesystem root per category. Paths may be relative;
// they are resolved to absolute at construction.
type Config struct {
	ProfileDir string
	StoryDir   string
	PostDir    string
}

// Store manages category-scoped directory trees. It holds only immutable
// configuration, so it is safe for concurrent use; the filesystem is the
// only shared mutable resource. Concurrent writes to the same destination
// path race at the filesystem level and the last write wins.
type Store struct {
	roots map[Category]string
}

func New(cfg Config) (*Store, error) {
	roots := map[Category]string{
		CategoryProfile: cfg.ProfileDir,
		CategoryStory:   cfg.StoryDir,
		CategoryPost:    cfg.PostDir,
	}

	for cat, dir := range roots {
		if dir == "" {
			return nil, fmt.Errorf("missing upload directory for category %q", cat)
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve upload directory for category %q: %w", cat, err)
		}
		roots[cat] = abs
	}

	return &Store{roots: roots}, nil
}

// SaveProfileImage stores a profile image under an opaque random name so
// URLs are collision-free and not guessable. Returns the relative URL.
func (s *Store) SaveProfileImage(data []byte, originalName string) (string, error) {
	return s.saveRandom(CategoryProfile, data, originalName)
}

// SavePostImage stores a post image under an opaque random name.
func (s *Store) SavePostImage(data []byte, originalName string) (string, error) {
	return s.saveRandom(CategoryPost, data, originalName)
}

// SaveStoryImage stores a story image under the story's own subdirectory,
// keeping the caller-supplied name prefixed with the image type. Saving
// again with the same (storyID, imageType, originalName) overwrites in
// place and yields the same URL.
func (s *Store) SaveStoryImage(data []byte, storyID int, imageType, originalName string) (string, error) {
	if originalName == "" || imageType == "" {
		return "", ErrInvalidFileName
	}

	fileName := imageType + "-" + originalName
	if !safeName(fileName) {
		return "", ErrInvalidFileName
	}

	dir := filepath.Join(s.roots[CategoryStory], fmt.Sprintf("%d", storyID))
	err := s.save(CategoryStory, dir, fileName, data)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%d/%s", CategoryStory.urlPrefix(), storyID, fileName), nil
}

// Delete reverses a relative URL previously returned by a save call and
// removes the file. It never returns an error: unknown prefixes, missing
// files, traversal attempts, and I/O failures all resolve to false with a
// logged warning. Deleting an already-gone file is not a failure worth
// aborting a cascade for.
func (s *Store) Delete(relativeURL string) bool {
	if relativeURL == "" {
		slog.Warn("media delete called with empty path")
		return false
	}

	cat, ok := s.categoryFor(relativeURL)
	if !ok {
		slog.Warn("media delete: unsupported path format", "path", relativeURL)
		return false
	}

	root := s.roots[cat]
	suffix := strings.TrimPrefix(relativeURL, cat.urlPrefix())

	absolute, err := joinInside(root, suffix)
	if err != nil {
		slog.Warn("media delete: path escapes category root", "path", relativeURL, "error", err)
		return false
	}

	err = os.Remove(absolute)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("media delete: file not found", "path", absolute)
		} else {
			slog.Error("media delete failed", "path", absolute, "error", err)
		}
		return false
	}

	slog.Info("media file deleted", "path", absolute)
	return true
}

// Resolve maps a relative URL back to the absolute path it refers to,
// validating containment. Exposed for read-back paths (e.g. tests and
// maintenance jobs); serving goes through the static mounts instead.
func (s *Store) Resolve(relativeURL string) (string, error) {
	cat, ok := s.categoryFor(relativeURL)
	if !ok {
		return "", fmt.Errorf("unsupported path format: %q", relativeURL)
	}

	return joinInside(s.roots[cat], strings.TrimPrefix(relativeURL, cat.urlPrefix()))
}

func (s *Store) categoryFor(relativeURL string) (Category, bool) {
	for cat := range s.roots {
		if strings.HasPrefix(relativeURL, cat.urlPrefix()) {
			return cat, true
		}
	}
	return "", false
}

// saveRandom implements the owner-less category policy: a fresh UUID plus
// the original extension, directly under the category root. The extension
// is caller-supplied text, so it goes through the same name guard as
// story files.
func (s *Store) saveRandom(cat Category, data []byte, originalName string) (string, error) {
	fileName := uuid.New().String() + ext(originalName)
	if !safeName(fileName) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, originalName)
	}

	err := s.save(cat, s.roots[cat], fileName, data)
	if err != nil {
		return "", err
	}

	return cat.urlPrefix() + fileName, nil
}

func (s *Store) save(cat Category, dir, fileName string, data []byte) error {
	if len(data) == 0 {
		return ErrEmptyUpload
	}

	// MkdirAll is idempotent; a concurrent creator is fine. Only fail if
	// the directory still does not exist afterwards.
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
			return fmt.Errorf("%w: %s: %v", ErrDirectoryCreate, dir, err)
		}
	}

	destination := filepath.Join(dir, fileName)
	if !inside(s.roots[cat], destination) {
		return fmt.Errorf("%w: %q escapes category root", ErrInvalidFileName, fileName)
	}

	// Write to a temp file in the destination directory and rename, so a
	// crash mid-write never leaves a truncated file at the final path.
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write upload: %w", err)
	}

	err = os.Rename(tmp.Name(), destination)
	if err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to place upload at %s: %w", destination, err)
	}

	slog.Info("media file stored", "category", string(cat), "path", destination, "bytes", len(data))
	return nil
}

// joinInside joins suffix onto root and verifies the result stays strictly
// inside root. This closes the traversal gap a raw string concatenation
// would leave open for crafted ".." segments.
func joinInside(root, suffix string) (string, error) {
	joined := filepath.Join(root, filepath.FromSlash(suffix))

	if !inside(root, joined) {
		return "", fmt.Errorf("path %q escapes root %q", suffix, root)
	}

	return joined, nil
}

// inside reports whether path is strictly contained in root.
func inside(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

// safeName rejects caller-supplied names that carry path separators or
// dot-dot segments. Owner-scoped categories keep original names, so the
// name itself is the attack surface.
func safeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return true
}

// ext returns the substring from the last dot of name to its end, or ""
// when there is no usable extension. A leading dot (hidden file) does not
// count as an extension.
func ext(name string) string {
	if name == "" {
		return ""
	}
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return ""
	}
	return name[i:]
}
