package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/pixelgram/pixelgram/internal/ctxkeys"
	"github.com/pixelgram/pixelgram/internal/service"
)

// maxCommentSize caps raw comment bodies well above any sane comment.
const maxCommentSize = 64 << 10

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) ByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(r.PathValue("postId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	comments, err := h.commentService.ByPost(postID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, comments)
}

// Create takes the comment text as the raw request body, matching
// clients that POST plain text rather than a JSON object.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(r.PathValue("postId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	content, err := io.ReadAll(io.LimitReader(r.Body, maxCommentSize))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	comment, err := h.commentService.Create(postID, ctxkeys.UserID(r.Context()), string(content))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	commentID, err := strconv.Atoi(r.PathValue("commentId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	content, err := io.ReadAll(io.LimitReader(r.Body, maxCommentSize))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	err = h.commentService.Update(commentID, ctxkeys.UserID(r.Context()), string(content))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "comment updated"})
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := strconv.Atoi(r.PathValue("commentId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	err = h.commentService.Delete(commentID, ctxkeys.UserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}
