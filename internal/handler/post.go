package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/pixelgram/pixelgram/internal/ctxkeys"
	"github.com/pixelgram/pixelgram/internal/service"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.Feed(ctxkeys.UserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.PathValue("userId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	posts, err := h.postService.ByUser(userID, ctxkeys.UserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) ByID(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(r.PathValue("postId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.postService.ByID(postID, ctxkeys.UserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, post)
}

// Create expects a multipart form with a required postImage part plus
// postCaption and postLocation text fields.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID := ctxkeys.UserID(r.Context())

	err := r.ParseMultipartForm(maxUploadSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("postImage")
	if err != nil {
		respondError(w, http.StatusBadRequest, "postImage is required")
		return
	}
	defer func() { _ = file.Close() }()

	image, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read image upload")
		return
	}

	post, err := h.postService.Create(
		callerID,
		image,
		header.Filename,
		r.FormValue("postCaption"),
		r.FormValue("postLocation"),
	)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(r.PathValue("postId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	err = h.postService.Delete(postID, ctxkeys.UserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(r.PathValue("postId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	err = h.postService.Like(postID, ctxkeys.UserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "post liked"})
}

func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(r.PathValue("postId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	err = h.postService.Unlike(postID, ctxkeys.UserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "post unliked"})
}
