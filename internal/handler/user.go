package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/pixelgram/pixelgram/internal/ctxkeys"
	"github.com/pixelgram/pixelgram/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) ByID(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.PathValue("userId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.userService.ByID(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) ByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.ByUsername(r.PathValue("userName"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.Search(r.URL.Query().Get("q"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// Update handles the multipart profile edit form. The avatar part is
// optional; text fields left empty keep their current value.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID := ctxkeys.UserID(r.Context())

	err := r.ParseMultipartForm(maxUploadSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var avatar []byte
	var avatarName string

	file, header, err := r.FormFile("avatar")
	if err == nil {
		defer func() { _ = file.Close() }()

		avatar, err = io.ReadAll(io.LimitReader(file, maxUploadSize))
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to read avatar upload")
			return
		}
		avatarName = header.Filename
	}

	user, err := h.userService.UpdateProfile(
		callerID,
		r.FormValue("userName"),
		r.FormValue("userEmail"),
		r.FormValue("userFullname"),
		avatar,
		avatarName,
	)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
