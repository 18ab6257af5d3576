package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cardlink/cardlink-services/internal/apisvc/models"
	"github.com/cardlink/cardlink-services/internal/ocr"
)

// DefaultBaseURL is the hosted CardLink backend.
const DefaultBaseURL = "https://cardlink.onrender.com"

// ErrNetwork is returned when the request never reached the server.
// Callers surface it as a generic "could not connect" message and do
// not retry automatically.
var ErrNetwork = errors.New("could not connect to server")

// APIError is a non-2xx response. Message carries the server-provided
// text verbatim when present.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Code)
}

// OCRResponse is the payload of POST /api/ocr.
type OCRResponse struct {
	Parsed  ocr.Parsed `json:"parsed"`
	RawText string     `json:"rawText"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// API is a thin client for the CardLink backend. There is no ambient
// session: every authenticated call takes the bearer token explicitly.
type API struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates an API client. An empty baseURL selects the hosted backend.
func New(baseURL string) *API {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &API{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Login exchanges credentials for a bearer token.
func (a *API) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := a.do(ctx, http.MethodPost, "/api/auth/login", "", body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Signup creates an account and returns its bearer token.
func (a *API) Signup(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := a.do(ctx, http.MethodPost, "/api/auth/signup", "", body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Me fetches the caller's profile.
func (a *API) Me(ctx context.Context, token string) (*models.Profile, error) {
	var out models.Profile
	if err := a.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMe updates the caller's display name and avatar.
func (a *API) UpdateMe(ctx context.Context, token, name, avatar string) (*models.Profile, error) {
	var out models.Profile
	body := map[string]string{"name": name, "avatar": avatar}
	if err := a.do(ctx, http.MethodPatch, "/api/auth/me", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListContacts fetches the caller's full contact list.
func (a *API) ListContacts(ctx context.Context, token string) ([]models.Contact, error) {
	var out []models.Contact
	if err := a.do(ctx, http.MethodGet, "/api/contacts", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetContact fetches a single contact by id.
func (a *API) GetContact(ctx context.Context, token, id string) (*models.Contact, error) {
	var out models.Contact
	if err := a.do(ctx, http.MethodGet, "/api/contacts/"+id, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateContact saves a new contact and returns the stored record.
func (a *API) CreateContact(ctx context.Context, token string, c models.Contact) (*models.Contact, error) {
	var out models.Contact
	if err := a.do(ctx, http.MethodPost, "/api/contacts", token, c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReplaceContact fully overwrites the contact with the given id.
func (a *API) ReplaceContact(ctx context.Context, token, id string, c models.Contact) (*models.Contact, error) {
	var out models.Contact
	if err := a.do(ctx, http.MethodPut, "/api/contacts/"+id, token, c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatchContact applies a partial update.
func (a *API) PatchContact(ctx context.Context, token, id string, patch map[string]interface{}) (*models.Contact, error) {
	var out models.Contact
	if err := a.do(ctx, http.MethodPatch, "/api/contacts/"+id, token, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetFavorite flips the favorite flag through the dedicated endpoint.
func (a *API) SetFavorite(ctx context.Context, token, id string, favorite bool) (*models.Contact, error) {
	var out models.Contact
	body := map[string]bool{"isFavorite": favorite}
	if err := a.do(ctx, http.MethodPatch, "/api/contacts/"+id+"/favorite", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteContact removes the contact server-side.
func (a *API) DeleteContact(ctx context.Context, token, id string) error {
	return a.do(ctx, http.MethodDelete, "/api/contacts/"+id, token, nil, nil)
}

// RunOCR submits an uploaded card image URL for text extraction.
func (a *API) RunOCR(ctx context.Context, token, imageURL string) (*OCRResponse, error) {
	var out OCRResponse
	body := map[string]string{"imageUrl": imageURL}
	if err := a.do(ctx, http.MethodPost, "/api/ocr", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := a.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Code: res.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unexpected response body: %v", err)
	}
	return nil
}
