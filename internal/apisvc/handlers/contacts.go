package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cardlink/cardlink-services/internal/apisvc/models"

	"github.com/go-chi/chi"
)

func (h *Handler) ListContactsHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := h.userID(r)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}

	contacts, err := h.contactService.List(r.Context(), uid)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, contacts)
}

func (h *Handler) GetContactHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := h.userID(r)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}

	contact, err := h.contactService.Get(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, contact)
}

func (h *Handler) CreateContactHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := h.userID(r)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}

	var c models.Contact
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if c.FirstName == "" && c.LastName == "" && c.Company == "" {
		h.writeError(w, http.StatusBadRequest, errors.New("a name or company is required"))
		return
	}

	saved, err := h.contactService.Create(r.Context(), uid, c)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, saved)
}

func (h *Handler) ReplaceContactHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := h.userID(r)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}

	var c models.Contact
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	saved, err := h.contactService.Replace(r.Context(), uid, chi.URLParam(r, "id"), c)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) PatchContactHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := h.userID(r)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}

	patch, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	saved, err := h.contactService.Patch(r.Context(), uid, chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) ToggleFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := h.userID(r)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		IsFavorite bool `json:"isFavorite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	saved, err := h.contactService.SetFavorite(r.Context(), uid, chi.URLParam(r, "id"), req.IsFavorite)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) DeleteContactHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := h.userID(r)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}

	if err := h.contactService.Delete(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "contact deleted"})
}
