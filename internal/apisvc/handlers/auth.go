package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/cardlink/cardlink-services/internal/apisvc/service"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		h.writeError(w, http.StatusBadRequest, errors.New("email and password are required"))
		return
	}
	if len(req.Password) < 6 {
		h.writeError(w, http.StatusBadRequest, errors.New("password must be at least 6 characters"))
		return
	}

	user, err := h.userService.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			h.writeError(w, http.StatusConflict, err)
			return
		}
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token": h.issueToken(user.ID),
		"user":  user.Profile(),
	})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	user, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.writeError(w, http.StatusUnauthorized, err)
			return
		}
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": h.issueToken(user.ID),
		"user":  user.Profile(),
	})
}

func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := h.userID(r)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}

	profile, err := h.userService.Profile(r.Context(), uid)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateMeHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := h.userID(r)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	profile, err := h.userService.UpdateProfile(r.Context(), uid, req.Name, req.Avatar)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, profile)
}
