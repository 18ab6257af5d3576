package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/cardlink/cardlink-services/internal/apisvc/service"
	"github.com/cardlink/cardlink-services/internal/apisvc/store"

	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth

	userService    *service.UserService
	contactService *service.ContactService
	ocrService     *service.OCRService
}

func NewHandler(userService *service.UserService, contactService *service.ContactService,
	ocrService *service.OCRService) *Handler {
	return &Handler{
		userService:    userService,
		contactService: contactService,
		ocrService:     ocrService,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// writeJSON emits a bare entity body, the success shape the mobile
// client parses. Errors always go through CreateResponse so a
// "message" field is present.
func (h *Handler) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// writeError maps service errors onto the envelope.
func (h *Handler) writeError(w http.ResponseWriter, code int, err error) {
	if errors.Is(err, store.ErrNotFound) {
		code = http.StatusNotFound
		err = errors.New("contact not found")
	}
	h.CreateResponse(w, Response{Message: err.Error(), Code: code, Error: err.Error()})
}

// userID extracts the authenticated user from the verified JWT claims.
func (h *Handler) userID(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}
	uid, _ := claims["user_id"].(string)
	if uid == "" {
		return "", errors.New("token has no user")
	}
	return uid, nil
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "cardlink api is running at port " + os.Getenv("API_SERVICE_PORT"),
		Code:    200,
	}
	h.CreateResponse(w, rsp)
}
