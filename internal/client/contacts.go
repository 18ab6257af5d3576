package client

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/cardlink/cardlink-services/internal/apisvc/models"
)

// SortMode selects the list ordering before favorites pinning.
type SortMode string

const (
	SortNewest  SortMode = "newest"
	SortAlpha   SortMode = "az"
	SortCompany SortMode = "company"
)

// Filter is the contact-list view state: text search, attribute
// toggles, a company equality filter and a sort mode.
type Filter struct {
	Query         string
	FavoritesOnly bool
	HasPhone      bool
	HasEmail      bool
	Company       string
	Sort          SortMode
}

// Apply runs the filter-then-sort pipeline over the fetched list and
// returns a new slice. Whatever the sort mode, a final stable pass
// pins favorites before non-favorites while keeping each group's
// relative order.
func (f Filter) Apply(contacts []models.Contact) []models.Contact {
	out := make([]models.Contact, len(contacts))
	copy(out, contacts)

	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		out = keep(out, func(c models.Contact) bool {
			hay := strings.ToLower(strings.Join([]string{
				c.FirstName, c.LastName, c.Company, c.Email, c.Phone,
				c.Nickname, c.Position,
			}, " "))
			return strings.Contains(hay, q)
		})
	}
	if f.FavoritesOnly {
		out = keep(out, func(c models.Contact) bool { return c.IsFavorite })
	}
	if f.HasPhone {
		out = keep(out, func(c models.Contact) bool { return strings.TrimSpace(c.Phone) != "" })
	}
	if f.HasEmail {
		out = keep(out, func(c models.Contact) bool { return strings.TrimSpace(c.Email) != "" })
	}
	if f.Company != "" {
		out = keep(out, func(c models.Contact) bool { return strings.TrimSpace(c.Company) == f.Company })
	}

	switch f.Sort {
	case SortAlpha:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].FullName()) < strings.ToLower(out[j].FullName())
		})
	case SortCompany:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Company) < strings.ToLower(out[j].Company)
		})
	default: // newest first
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	// favorites always float to the top, whatever the chosen sort
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IsFavorite && !out[j].IsFavorite
	})
	return out
}

func keep(list []models.Contact, pred func(models.Contact) bool) []models.Contact {
	out := list[:0]
	for _, c := range list {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}

// Companies returns the distinct trimmed company names present in the
// list, sorted, for the company filter choices.
func Companies(contacts []models.Contact) []string {
	set := make(map[string]struct{})
	for _, c := range contacts {
		if co := strings.TrimSpace(c.Company); co != "" {
			set[co] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for co := range set {
		out = append(out, co)
	}
	sort.Strings(out)
	return out
}

// FindDuplicate scans the fetched list for a contact sharing the
// candidate's email or phone. This is a save-time heuristic, not a
// uniqueness constraint; the server accepts duplicates.
func FindDuplicate(existing []models.Contact, candidate models.Contact) *models.Contact {
	for i := range existing {
		c := &existing[i]
		if c.Email != "" && candidate.Email != "" && c.Email == candidate.Email {
			return c
		}
		if c.Phone != "" && candidate.Phone != "" && c.Phone == candidate.Phone {
			return c
		}
	}
	return nil
}

// Resolution is the user's choice when a duplicate is found on save.
type Resolution int

const (
	ResolutionCancel Resolution = iota
	ResolutionKeepBoth
	ResolutionReplace
)

// SaveContact runs the duplicate check against the full fetched list
// and then saves according to the resolution the chooser returns. The
// chooser is only consulted when a duplicate exists.
func SaveContact(ctx context.Context, api *API, token string, c models.Contact,
	choose func(dup models.Contact) Resolution) (*models.Contact, error) {

	existing, err := api.ListContacts(ctx, token)
	if err != nil {
		return nil, err
	}

	dup := FindDuplicate(existing, c)
	if dup == nil {
		return api.CreateContact(ctx, token, c)
	}

	switch choose(*dup) {
	case ResolutionKeepBoth:
		return api.CreateContact(ctx, token, c)
	case ResolutionReplace:
		return api.ReplaceContact(ctx, token, dup.ID, c)
	default:
		return nil, nil
	}
}

// ToggleFavorite applies the optimistic two-phase favorite update to
// the local list: flip first, send the request, and on failure restore
// the snapshot taken before the flip. The returned slice is the list
// state after the operation.
func ToggleFavorite(ctx context.Context, api *API, token string,
	contacts []models.Contact, id string) ([]models.Contact, error) {

	idx := -1
	for i := range contacts {
		if contacts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return contacts, errors.New("contact not found")
	}

	snapshot := contacts[idx]
	contacts[idx].IsFavorite = !snapshot.IsFavorite

	updated, err := api.SetFavorite(ctx, token, id, contacts[idx].IsFavorite)
	if err != nil {
		contacts[idx] = snapshot
		return contacts, err
	}
	contacts[idx] = *updated
	return contacts, nil
}

// NormalizePhone strips the separators a dialer rejects.
func NormalizePhone(n string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '(', ')', '-', ' ':
			return -1
		}
		return r
	}, n)
}

// DialURL builds the tel: link for a raw number.
func DialURL(raw string) (string, error) {
	n := NormalizePhone(strings.TrimSpace(raw))
	if n == "" {
		return "", errors.New("contact has no phone number")
	}
	return "tel:" + n, nil
}
