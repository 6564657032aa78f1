package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pixelgram/pixelgram/internal/media"
	"github.com/pixelgram/pixelgram/internal/repository"
	"github.com/pixelgram/pixelgram/internal/service"
)

// maxUploadSize caps multipart form memory and upload payloads (10 MB).
const maxUploadSize = 10 << 20

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError translates domain errors to HTTP statuses: missing
// records map to 404, ownership violations to 403, caller mistakes to 400,
// and everything else to a logged 500.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrPostNotFound),
		errors.Is(err, repository.ErrCommentNotFound),
		errors.Is(err, repository.ErrStoryNotFound):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrNotPostOwner),
		errors.Is(err, service.ErrNotCommentOwner),
		errors.Is(err, service.ErrNotStoryOwner):
		respondError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrUsernameAlreadyExists),
		errors.Is(err, service.ErrImageRequired),
		errors.Is(err, service.ErrEmptyComment),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, media.ErrEmptyUpload),
		errors.Is(err, media.ErrInvalidFileName),
		errors.Is(err, repository.ErrAlreadyLiked),
		errors.Is(err, repository.ErrNotLiked):
		respondError(w, http.StatusBadRequest, err.Error())

	default:
		slog.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
