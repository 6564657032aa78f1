package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/pixelgram/pixelgram/internal/ctxkeys"
	"github.com/pixelgram/pixelgram/internal/service"
)

type StoryHandler struct {
	storyService *service.StoryService
}

func NewStoryHandler(storyService *service.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

func (h *StoryHandler) Active(w http.ResponseWriter, r *http.Request) {
	stories, err := h.storyService.Active()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stories)
}

func (h *StoryHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.PathValue("userId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	stories, err := h.storyService.ByUser(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stories)
}

// Create expects a multipart form with a required storyImage part.
func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID := ctxkeys.UserID(r.Context())

	err := r.ParseMultipartForm(maxUploadSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("storyImage")
	if err != nil {
		respondError(w, http.StatusBadRequest, "storyImage is required")
		return
	}
	defer func() { _ = file.Close() }()

	image, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read image upload")
		return
	}

	story, err := h.storyService.Create(callerID, image, header.Filename)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, story)
}

func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	storyID, err := strconv.Atoi(r.PathValue("storyId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid story id")
		return
	}

	err = h.storyService.Delete(storyID, ctxkeys.UserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "story deleted"})
}
