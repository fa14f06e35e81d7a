package user

import (
	"net/http"

	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/config"
)

type Handler struct {
	service UserService
}

func NewHandler(s UserService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.WriteError(w, r, err)
		return
	}

	if _, err := h.service.Register(r.Context(), req); err != nil {
		config.WriteError(w, r, err)
		return
	}

	config.Message(w, http.StatusCreated, "User registered successfully")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.WriteError(w, r, err)
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	auth.SetTokenCookie(w, resp.AccessToken, config.App.JWTTTL)
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	resp, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var req UpdateProfileRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.WriteError(w, r, err)
		return
	}

	resp, err := h.service.UpdateProfile(r.Context(), id, req)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, users)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		config.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
