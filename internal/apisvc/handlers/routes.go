package handlers

import (
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/api", func(r chi.Router) {

		// public routes
		r.Post("/auth/signup", h.SignupHandler)
		r.Post("/auth/login", h.LoginHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/health", h.HealthHandler)

			r.Get("/auth/me", h.MeHandler)
			r.Patch("/auth/me", h.UpdateMeHandler)

			r.Get("/contacts", h.ListContactsHandler)
			r.Post("/contacts", h.CreateContactHandler)
			r.Get("/contacts/{id}", h.GetContactHandler)
			r.Put("/contacts/{id}", h.ReplaceContactHandler)
			r.Patch("/contacts/{id}", h.PatchContactHandler)
			r.Delete("/contacts/{id}", h.DeleteContactHandler)
			r.Patch("/contacts/{id}/favorite", h.ToggleFavoriteHandler)

			r.Post("/ocr", h.OCRHandler)
			r.Get("/scans", h.RecentScansHandler)
		})
	})
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)
}

// issueToken signs a week-long session token for the given user.
func (h *Handler) issueToken(userID string) string {
	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, _ := h.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"exp":     expirationTime,
	})
	return tokenString
}
