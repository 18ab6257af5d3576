package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

func (h *Handler) OCRHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := h.userID(r)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if !strings.HasPrefix(req.ImageURL, "http://") && !strings.HasPrefix(req.ImageURL, "https://") {
		h.writeError(w, http.StatusBadRequest, errors.New("imageUrl must be an http(s) URL"))
		return
	}

	result, err := h.ocrService.Process(r.Context(), uid, req.ImageURL)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) RecentScansHandler(w http.ResponseWriter, r *http.Request) {
	uid, err := h.userID(r)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}

	scans, err := h.ocrService.RecentScans(r.Context(), uid)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, scans)
}
