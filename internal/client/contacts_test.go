package client

import (
	"testing"
	"time"

	"github.com/cardlink/cardlink-services/internal/apisvc/models"
)

func sampleContacts() []models.Contact {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []models.Contact{
		{ID: "1", FirstName: "Alice", LastName: "Adams", Company: "Acme",
			Phone: "081-111-1111", Email: "alice@acme.com", CreatedAt: base},
		{ID: "2", FirstName: "Bob", LastName: "Brown", Company: "Beta Ltd",
			Email: "bob@beta.io", CreatedAt: base.Add(1 * time.Hour)},
		{ID: "3", FirstName: "Carol", LastName: "Clark", Company: "Acme",
			Phone: "081-333-3333", IsFavorite: true, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "4", FirstName: "Dave", LastName: "Dunn",
			Phone: "081-444-4444", CreatedAt: base.Add(3 * time.Hour)},
	}
}

func ids(contacts []models.Contact) []string {
	out := make([]string, len(contacts))
	for i, c := range contacts {
		out[i] = c.ID
	}
	return out
}

func assertOrder(t *testing.T, got []models.Contact, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v, want %v", gotIDs, want)
		}
	}
}

func TestFilterDefaultSortPinsFavorites(t *testing.T) {
	// newest first, but the favorite floats to the top
	got := Filter{}.Apply(sampleContacts())
	assertOrder(t, got, "3", "4", "2", "1")
}

func TestFilterAlphaSortKeepsFavoritesFirst(t *testing.T) {
	got := Filter{Sort: SortAlpha}.Apply(sampleContacts())
	assertOrder(t, got, "3", "1", "2", "4")
}

func TestFilterQueryMatchesAnyField(t *testing.T) {
	got := Filter{Query: "beta"}.Apply(sampleContacts())
	assertOrder(t, got, "2")

	got = Filter{Query: "081-444"}.Apply(sampleContacts())
	assertOrder(t, got, "4")
}

func TestFilterAttributeToggles(t *testing.T) {
	got := Filter{HasPhone: true, Sort: SortAlpha}.Apply(sampleContacts())
	assertOrder(t, got, "3", "1", "4")

	got = Filter{HasEmail: true, Sort: SortAlpha}.Apply(sampleContacts())
	assertOrder(t, got, "1", "2")

	got = Filter{FavoritesOnly: true}.Apply(sampleContacts())
	assertOrder(t, got, "3")
}

func TestFilterCompanyEquality(t *testing.T) {
	got := Filter{Company: "Acme", Sort: SortAlpha}.Apply(sampleContacts())
	assertOrder(t, got, "3", "1")
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := sampleContacts()
	Filter{Query: "alice"}.Apply(in)

	if in[0].ID != "1" || in[3].ID != "4" || len(in) != 4 {
		t.Fatal("Apply mutated its input slice")
	}
}

func TestCompanies(t *testing.T) {
	got := Companies(sampleContacts())

	want := []string{"Acme", "Beta Ltd"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Companies() = %v, want %v", got, want)
	}
}

func TestFindDuplicateByEmailOrPhone(t *testing.T) {
	existing := sampleContacts()

	if dup := FindDuplicate(existing, models.Contact{Email: "bob@beta.io"}); dup == nil || dup.ID != "2" {
		t.Errorf("email duplicate = %v", dup)
	}
	if dup := FindDuplicate(existing, models.Contact{Phone: "081-333-3333"}); dup == nil || dup.ID != "3" {
		t.Errorf("phone duplicate = %v", dup)
	}
	if dup := FindDuplicate(existing, models.Contact{Email: "new@x.com", Phone: "090-000-0000"}); dup != nil {
		t.Errorf("unexpected duplicate = %v", dup)
	}
	// empty fields never match other empty fields
	if dup := FindDuplicate(existing, models.Contact{}); dup != nil {
		t.Errorf("empty candidate matched %v", dup)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"081-234-5678":    "0812345678",
		"(02) 123 4567":   "021234567",
		"+66 81 234 5678": "+66812345678",
		"0812345678":      "0812345678",
	}
	for in, want := range cases {
		if got := NormalizePhone(in); got != want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDialURL(t *testing.T) {
	got, err := DialURL("081-234-5678")
	if err != nil {
		t.Fatal(err)
	}
	if got != "tel:0812345678" {
		t.Fatalf("DialURL = %q", got)
	}

	if _, err := DialURL("   "); err == nil {
		t.Fatal("expected error for empty number")
	}
}
