package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pixelgram/pixelgram/internal/model"
	"github.com/pixelgram/pixelgram/internal/service"
	"github.com/pixelgram/pixelgram/internal/token"
)

type AuthHandler struct {
	userService *service.UserService
	tokens      *token.Service
}

func NewAuthHandler(userService *service.UserService, tokens *token.Service) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
	}
}

type signupRequest struct {
	Username string `json:"userName"`
	Email    string `json:"userEmail"`
	Password string `json:"userPassword"`
	FullName string `json:"userFullname"`
}

type loginRequest struct {
	Email    string `json:"userEmail"`
	Password string `json:"userPassword"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.SignUp(req.Username, req.Email, req.Password, req.FullName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	tokenString, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		slog.Error("failed to issue token", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{Token: tokenString, User: user})
}
