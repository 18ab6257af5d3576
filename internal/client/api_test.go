package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cardlink/cardlink-services/internal/apisvc/models"
)

func TestLoginReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "jane@acme.com" {
			t.Errorf("email = %q", body["email"])
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	}))
	defer srv.Close()

	api := New(srv.URL)
	token, err := api.Login(context.Background(), "jane@acme.com", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if token != "tok-123" {
		t.Fatalf("token = %q", token)
	}
}

func TestServerErrorMessageShownVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
	}))
	defer srv.Close()

	api := New(srv.URL)
	_, err := api.Login(context.Background(), "jane@acme.com", "wrong")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type %T", err)
	}
	if apiErr.Error() != "Invalid email or password" {
		t.Fatalf("message = %q", apiErr.Error())
	}
	if apiErr.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d", apiErr.Code)
	}
}

func TestNetworkFailureWrapped(t *testing.T) {
	api := New("http://127.0.0.1:1") // nothing listens here

	_, err := api.ListContacts(context.Background(), "tok")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
}

func TestAuthorizationHeaderSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode([]models.Contact{})
	}))
	defer srv.Close()

	api := New(srv.URL)
	if _, err := api.ListContacts(context.Background(), "tok-123"); err != nil {
		t.Fatal(err)
	}
}

func TestToggleFavoriteOptimisticUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/contacts/c1/favorite" || r.Method != http.MethodPatch {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.Contact{ID: "c1", FirstName: "Alice", IsFavorite: true})
	}))
	defer srv.Close()

	api := New(srv.URL)
	contacts := []models.Contact{{ID: "c1", FirstName: "Alice"}}

	contacts, err := ToggleFavorite(context.Background(), api, "tok", contacts, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if !contacts[0].IsFavorite {
		t.Fatal("favorite flag not set")
	}
}

func TestToggleFavoriteRevertsOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "boom"})
	}))
	defer srv.Close()

	api := New(srv.URL)
	contacts := []models.Contact{{ID: "c1", FirstName: "Alice", IsFavorite: false}}

	contacts, err := ToggleFavorite(context.Background(), api, "tok", contacts, "c1")
	if err == nil {
		t.Fatal("expected error")
	}
	if contacts[0].IsFavorite {
		t.Fatal("flip not reverted after failed request")
	}
}

func TestSaveContactDuplicateResolutions(t *testing.T) {
	var created, replaced int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/contacts":
			json.NewEncoder(w).Encode([]models.Contact{
				{ID: "dup", FirstName: "Old", Email: "same@acme.com"},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/contacts":
			created++
			json.NewEncoder(w).Encode(models.Contact{ID: "new"})
		case r.Method == http.MethodPut && r.URL.Path == "/api/contacts/dup":
			replaced++
			json.NewEncoder(w).Encode(models.Contact{ID: "dup"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	api := New(srv.URL)
	candidate := models.Contact{FirstName: "New", Email: "same@acme.com"}

	saved, err := SaveContact(context.Background(), api, "tok", candidate,
		func(dup models.Contact) Resolution { return ResolutionCancel })
	if err != nil || saved != nil {
		t.Fatalf("cancel: saved=%v err=%v", saved, err)
	}

	saved, err = SaveContact(context.Background(), api, "tok", candidate,
		func(dup models.Contact) Resolution { return ResolutionKeepBoth })
	if err != nil || saved == nil || saved.ID != "new" {
		t.Fatalf("keep both: saved=%v err=%v", saved, err)
	}

	saved, err = SaveContact(context.Background(), api, "tok", candidate,
		func(dup models.Contact) Resolution { return ResolutionReplace })
	if err != nil || saved == nil || saved.ID != "dup" {
		t.Fatalf("replace: saved=%v err=%v", saved, err)
	}

	if created != 1 || replaced != 1 {
		t.Fatalf("created=%d replaced=%d", created, replaced)
	}
}

func TestSaveContactNoDuplicateCreatesDirectly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode([]models.Contact{})
		case r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(models.Contact{ID: "new"})
		}
	}))
	defer srv.Close()

	api := New(srv.URL)
	saved, err := SaveContact(context.Background(), api, "tok", models.Contact{FirstName: "Solo"},
		func(dup models.Contact) Resolution {
			t.Fatal("chooser consulted without a duplicate")
			return ResolutionCancel
		})
	if err != nil || saved == nil || saved.ID != "new" {
		t.Fatalf("saved=%v err=%v", saved, err)
	}
}
